// Package fedlearner contains the core types of the data-join visitors, which stream
// fixed-size batches of column data out of an ordered list of files while reporting
// exact row-level progress. This root package defines the types which are employed
// by callers of a Visitor, as well as those needed to plug in a new file format, and
// is a good overview of the key concepts.
package fedlearner
