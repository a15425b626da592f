package fedlearner

// ColumnBatch is a batch of consecutive rows read from a single file, accessible by column
type ColumnBatch interface {
	NumRows() int                              // NumRows returns the number of rows in this batch
	ColumnNames() []string                     // ColumnNames returns the names of the materialized columns, in order
	Column(name string) ([]interface{}, error) // Column returns the values of a column, one per row. Null values are nil.
}

// BatchGroup is the unit handed to a caller for each yield of a Visitor. It contains
// a single ColumnBatch, or two consecutive ColumnBatches from the same file when a
// trailing remainder batch has been merged into the last full-sized one.
type BatchGroup []ColumnBatch

// NumRows returns the total number of rows across all batches in this group
func (g BatchGroup) NumRows() int {
	n := 0
	for _, b := range g {
		n += b.NumRows()
	}
	return n
}

// BatchInfo reports traversal progress alongside each BatchGroup. Its three fields are
// keyed off by the data-join coordinator to decide shard completion.
type BatchInfo struct {
	Finished bool  // Finished is true only on the yield which completes the current file
	FileIdx  int64 // FileIdx is the caller-assigned index of the file the group was read from
	BatchIdx int64 // BatchIdx counts yields across the whole traversal, starting at 1
}
