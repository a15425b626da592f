package memory

import (
	"fmt"
	"io"

	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/source"
)

type batchReader struct {
	table     Table
	numRows   int
	batchSize int
	columns   []string
	next      int
	closed    bool
}

// Metadata describes the Table being read
func (r *batchReader) Metadata() fedlearner.FileMetadata {
	return fedlearner.FileMetadata{NumRows: int64(r.numRows)}
}

// NextBatch returns up to batchSize rows, or io.EOF
func (r *batchReader) NextBatch() (fedlearner.ColumnBatch, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}
	if r.next >= r.numRows {
		return nil, io.EOF
	}
	end := r.next + r.batchSize
	if end > r.numRows {
		end = r.numRows
	}
	b := source.CreateBatch(end-r.next, r.columns...)
	for _, name := range r.columns {
		col, ok := r.table[name]
		if !ok {
			return nil, errors.UnknownColumnError{Name: name}
		}
		for i := r.next; i < end; i++ {
			b.Set(name, i-r.next, col[i])
		}
	}
	r.next = end
	return b, nil
}

// Close marks this reader as closed
func (r *batchReader) Close() error {
	r.closed = true
	return nil
}
