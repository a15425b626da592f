// Package visitor provides the Engine, a Visitor which walks an ordered list of files one at a
// time and streams their rows as fixed-size batches, tracking exact row-level progress
// across file boundaries. File formats are plugged in through a fedlearner.FileOpener.
package visitor
