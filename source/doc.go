// Package source contains helpers shared by the file format implementations in its
// subpackages. Each subpackage provides a fedlearner.FileOpener for one format.
package source
