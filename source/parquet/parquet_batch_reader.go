package parquet

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	pq "github.com/parquet-go/parquet-go"
	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/source"
)

// leaf is a projected leaf column of the file schema
type leaf struct {
	name     string
	repeated bool
}

type batchReader struct {
	file       *os.File
	pf         *pq.File
	rows       *pq.Reader // created on the first NextBatch, over the projected schema
	batchSize  int
	columns    []string
	projection map[int]leaf // leaf column index -> column
	names      []string
	buf        []pq.Row
	eof        bool
}

// Metadata reports the row count recorded in the file footer
func (r *batchReader) Metadata() fedlearner.FileMetadata {
	return fedlearner.FileMetadata{NumRows: r.pf.NumRows()}
}

// NextBatch reads up to batchSize rows, or returns io.EOF
func (r *batchReader) NextBatch() (fedlearner.ColumnBatch, error) {
	if r.projection == nil {
		if err := r.resolveColumns(); err != nil {
			return nil, err
		}
		r.buf = make([]pq.Row, r.batchSize)
	}
	n := 0
	for n < r.batchSize && !r.eof {
		read, err := r.rows.ReadRows(r.buf[n:])
		n += read
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return nil, err
		} else if read == 0 {
			return nil, io.ErrNoProgress
		}
	}
	if n == 0 {
		return nil, io.EOF
	}

	b := source.CreateBatch(n, r.names...)
	for i, row := range r.buf[:n] {
		for _, v := range row {
			l, ok := r.projection[v.Column()]
			if !ok {
				continue
			}
			if !l.repeated {
				b.Set(l.name, i, valueOf(v))
				continue
			}
			// repeated leaves collect every value of the row into a list
			col, _ := b.Column(l.name)
			list, _ := col[i].([]interface{})
			if list == nil {
				list = []interface{}{}
			}
			if !v.IsNull() {
				list = append(list, valueOf(v))
			}
			b.Set(l.name, i, list)
		}
	}
	return b, nil
}

// Close releases the file
func (r *batchReader) Close() error {
	var errs *multierror.Error
	if r.rows != nil {
		if err := r.rows.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// resolveColumns maps the requested column names, or every leaf column if none were
// requested, to leaf column indexes and opens the row reader. Nested columns are named by
// their dotted path. With a projection the reader is opened over a schema holding only the
// top-level fields of the requested columns, so other column chunks are never read.
func (r *batchReader) resolveColumns() error {
	schema := r.pf.Schema()
	if len(r.columns) == 0 {
		r.project(schema, schema.Columns())
		r.rows = pq.NewReader(r.pf)
		return nil
	}

	fields := make(map[string]pq.Field, len(schema.Fields()))
	for _, f := range schema.Fields() {
		fields[f.Name()] = f
	}
	group := pq.Group{}
	paths := make([][]string, len(r.columns))
	for i, name := range r.columns {
		paths[i] = strings.Split(name, ".")
		if _, ok := schema.Lookup(paths[i]...); !ok {
			return errors.UnknownColumnError{Name: name}
		}
		group[paths[i][0]] = fields[paths[i][0]]
	}
	projected := pq.NewSchema(schema.Name(), group)
	r.project(projected, paths)
	r.rows = pq.NewReader(r.pf, projected)
	return nil
}

// project maps each leaf path of schema to its column index
func (r *batchReader) project(schema *pq.Schema, paths [][]string) {
	r.projection = make(map[int]leaf, len(paths))
	r.names = r.names[:0]
	for _, path := range paths {
		lc, ok := schema.Lookup(path...)
		if !ok {
			continue
		}
		name := strings.Join(path, ".")
		r.names = append(r.names, name)
		r.projection[lc.ColumnIndex] = leaf{name: name, repeated: lc.MaxRepetitionLevel > 0}
	}
}

// valueOf converts a Parquet value to a Go value. Byte arrays are copied, since
// their backing memory is reused by the reader.
func valueOf(v pq.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case pq.Boolean:
		return v.Boolean()
	case pq.Int32:
		return v.Int32()
	case pq.Int64:
		return v.Int64()
	case pq.Int96:
		return v.Int96()
	case pq.Float:
		return v.Float()
	case pq.Double:
		return v.Double()
	case pq.ByteArray, pq.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return nil
	}
}
