package fedlearner

// FileOpener opens files of a particular format. Implementations return an error from Open
// when a file is missing or its metadata cannot be read; failures which occur later, while
// reading batches, are returned by BatchReader.NextBatch instead.
type FileOpener interface {
	// Open prepares a file to be read in batches of batchSize rows. If columns is non-empty,
	// only those columns are materialized. Column names are not validated by Open.
	Open(file FileDescriptor, batchSize int, columns []string) (BatchReader, error)
}

// BatchReader reads the batches of a single open file, in order
type BatchReader interface {
	Metadata() FileMetadata          // Metadata describes the open file
	NextBatch() (ColumnBatch, error) // NextBatch returns the next batch, or io.EOF when the file has no more rows
	Close() error                    // Close releases the underlying file handle
}
