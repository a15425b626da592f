package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/source"
)

type batchReader struct {
	source    *Source
	file      *os.File
	scanner   *bufio.Scanner
	numRows   int64
	batchSize int
	columns   []string
	line      int
}

// Metadata reports the number of rows counted when the file was opened
func (r *batchReader) Metadata() fedlearner.FileMetadata {
	return fedlearner.FileMetadata{NumRows: r.numRows}
}

// NextBatch parses up to batchSize rows, or returns io.EOF
func (r *batchReader) NextBatch() (fedlearner.ColumnBatch, error) {
	rows := make([]string, 0, r.batchSize)
	for len(rows) < r.batchSize && r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if r.source.skip(text) {
			continue
		}
		if !gjson.Valid(text) {
			return nil, fmt.Errorf("line %d is not valid JSON", r.line)
		}
		rows = append(rows, text)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}

	b := source.CreateBatch(len(rows), r.columns...)
	for i, row := range rows {
		if err := parseRow(r.columns, row, i, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Close releases the file
func (r *batchReader) Close() error {
	return r.file.Close()
}

// parseRow copies the requested columns of a row into a batch. Without requested columns,
// every top-level field of the row is copied.
func parseRow(columns []string, row string, i int, b *source.Batch) error {
	if len(columns) == 0 {
		gjson.Parse(row).ForEach(func(key, value gjson.Result) bool {
			b.Set(key.String(), i, value.Value())
			return true
		})
		return nil
	}
	for _, name := range columns {
		value := gjson.Get(row, name)
		if !value.Exists() {
			return errors.UnknownColumnError{Name: name}
		}
		b.Set(name, i, value.Value())
	}
	return nil
}
