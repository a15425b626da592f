package fedlearner

// Visitor is a single-pass, forward-only iterator producing BatchGroups from an ordered
// list of files. Next returns errors.NoMoreBatchesError once every file has been consumed.
type Visitor interface {
	HasNext() bool                        // HasNext returns false once the traversal has ended. A true result does not guarantee that Next will produce another group.
	Next() (BatchGroup, BatchInfo, error) // Next blocks until the next group is read, the traversal ends, or an error occurs
	Metadata() *FileMetadata              // Metadata describes the file currently being read, or nil if none is open
	OnEnd(onEnd func())                   // OnEnd registers a listener which fires when the traversal runs out of files
	Close() error                         // Close releases the currently open file, if any
}
