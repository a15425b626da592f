package errors

import (
	"fmt"
)

// FileOpenError occurs when a file cannot be opened, or its metadata cannot be read.
// It is fatal for the traversal which encountered it.
type FileOpenError struct {
	Index int64
	Path  string
	Err   error
}

// Error returns a textual representation of this FileOpenError
func (e FileOpenError) Error() string {
	return fmt.Sprintf("unable to open file %d (%s): %v", e.Index, e.Path, e.Err)
}

// Unwrap returns the underlying cause of this FileOpenError
func (e FileOpenError) Unwrap() error {
	return e.Err
}

// BatchReadError occurs when a file cannot be read after it has been opened, for example
// because it is truncated or a requested column does not exist. It is fatal for the
// traversal which encountered it.
type BatchReadError struct {
	Index    int64
	Path     string
	BatchIdx int64 // the index the failed yield would have carried
	Err      error
}

// Error returns a textual representation of this BatchReadError
func (e BatchReadError) Error() string {
	return fmt.Sprintf("unable to read batch %d from file %d (%s): %v", e.BatchIdx, e.Index, e.Path, e.Err)
}

// Unwrap returns the underlying cause of this BatchReadError
func (e BatchReadError) Unwrap() error {
	return e.Err
}

// ConfigurationError occurs when a Visitor is constructed with invalid options
type ConfigurationError struct {
	Err error
}

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid visitor configuration: %v", e.Err)
}

// Unwrap returns the underlying cause of this ConfigurationError
func (e ConfigurationError) Unwrap() error {
	return e.Err
}

// UnknownColumnError occurs when a requested column does not exist in a file
type UnknownColumnError struct{ Name string }

// Error returns a textual representation of this UnknownColumnError
func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("column %s does not exist", e.Name)
}

// NoMoreBatchesError occurs when there are no more batches in a Visitor
type NoMoreBatchesError struct{}

// Error returns a textual representation of this NoMoreBatchesError
func (e NoMoreBatchesError) Error() string {
	return "No more batches"
}
