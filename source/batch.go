package source

import (
	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
)

var _ fedlearner.ColumnBatch = (*Batch)(nil)

// Batch is a ColumnBatch whose columns are materialized as slices of Go values
type Batch struct {
	names   []string
	columns map[string][]interface{}
	numRows int
}

// CreateBatch creates an empty Batch of numRows rows with the given columns. More
// columns may be added later by Set.
func CreateBatch(numRows int, names ...string) *Batch {
	b := &Batch{
		names:   make([]string, 0, len(names)),
		columns: make(map[string][]interface{}, len(names)),
		numRows: numRows,
	}
	for _, name := range names {
		b.addColumn(name)
	}
	return b
}

// Set stores a value for a row of a column, adding the column if necessary
func (b *Batch) Set(name string, row int, value interface{}) {
	col, ok := b.columns[name]
	if !ok {
		col = b.addColumn(name)
	}
	col[row] = value
}

// NumRows returns the number of rows in this Batch
func (b *Batch) NumRows() int {
	return b.numRows
}

// ColumnNames returns the names of the columns in this Batch, in the order they were added
func (b *Batch) ColumnNames() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// Column returns the values of a column, or an UnknownColumnError
func (b *Batch) Column(name string) ([]interface{}, error) {
	col, ok := b.columns[name]
	if !ok {
		return nil, errors.UnknownColumnError{Name: name}
	}
	return col, nil
}

func (b *Batch) addColumn(name string) []interface{} {
	col := make([]interface{}, b.numRows)
	b.names = append(b.names, name)
	b.columns[name] = col
	return col
}
