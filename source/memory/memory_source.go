// Package memory provides a FileOpener which reads in-memory tables, addressed by path.
// It is primarily useful for tests, and for feeding data which is already resident.
package memory

import (
	"fmt"
	"sort"

	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/visitor"
)

// Table is the in-memory equivalent of a file: named columns of equal length
type Table map[string][]interface{}

// NumRows returns the number of rows in this Table, or an error if its columns differ in length
func (t Table) NumRows() (int, error) {
	numRows := -1
	for name, col := range t {
		if numRows >= 0 && len(col) != numRows {
			return 0, fmt.Errorf("column %s has %d rows, expected %d", name, len(col), numRows)
		}
		numRows = len(col)
	}
	if numRows < 0 {
		return 0, nil
	}
	return numRows, nil
}

// Source is a FileOpener over a fixed set of Tables
type Source struct {
	tables map[string]Table
}

// CreateSource is a factory for Sources. Tables are keyed by the path which FileDescriptors use to refer to them.
func CreateSource(tables map[string]Table) *Source {
	return &Source{tables: tables}
}

// CreateVisitor returns a Visitor over the given files, read from tables
func CreateVisitor(tables map[string]Table, files *filelist.List, conf *visitor.Conf) (*visitor.Engine, error) {
	return visitor.Create(files, CreateSource(tables), conf)
}

// Open prepares a Table for reading in batches
func (s *Source) Open(file fedlearner.FileDescriptor, batchSize int, columns []string) (fedlearner.BatchReader, error) {
	table, ok := s.tables[file.Path]
	if !ok {
		return nil, fmt.Errorf("no table at %s", file.Path)
	}
	numRows, err := table.NumRows()
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		for name := range table {
			columns = append(columns, name)
		}
		sort.Strings(columns)
	}
	return &batchReader{
		table:     table,
		numRows:   numRows,
		batchSize: batchSize,
		columns:   columns,
	}, nil
}
