package jsonl

import (
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/require"
	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/visitor"
)

func jsonLines(first int, n int) string {
	var sb strings.Builder
	for i := first; i < first+n; i++ {
		fmt.Fprintf(&sb, "{\"example_id\": \"ex-%d\", \"meta\": {\"index\": %d}, \"y\": %d}\n", i, i, i%2)
	}
	return sb.String()
}

func writeLZ4(t *testing.T, path string, data string) {
	f, err := os.Create(path)
	require.Nil(t, err)
	w := lz4.NewWriter(f)
	_, err = w.Write([]byte(data))
	require.Nil(t, err)
	require.Nil(t, w.Close())
	require.Nil(t, f.Close())
}

func TestJSONLOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part-0.jsonl")
	data := "# header comment\n" + jsonLines(0, 3) + "\n\n" + jsonLines(3, 2)
	require.Nil(t, os.WriteFile(path, []byte(data), 0600))

	r, err := CreateSource(&SourceConf{Comment: '#'}).Open(fedlearner.FileDescriptor{Path: path}, 4, []string{"example_id", "meta.index"})
	require.Nil(t, err)
	defer r.Close()
	require.Equal(t, int64(5), r.Metadata().NumRows)

	b, err := r.NextBatch()
	require.Nil(t, err)
	require.Equal(t, 4, b.NumRows())
	require.Equal(t, []string{"example_id", "meta.index"}, b.ColumnNames())
	idx, err := b.Column("meta.index")
	require.Nil(t, err)
	require.Equal(t, []interface{}{float64(0), float64(1), float64(2), float64(3)}, idx)

	b, err = r.NextBatch()
	require.Nil(t, err)
	require.Equal(t, 1, b.NumRows())
	ids, err := b.Column("example_id")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"ex-4"}, ids)
}

func TestJSONLAllColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part-0.jsonl")
	require.Nil(t, os.WriteFile(path, []byte("{\"a\": 1}\n{\"a\": 2, \"b\": true}\n"), 0600))
	r, err := CreateSource(nil).Open(fedlearner.FileDescriptor{Path: path}, 10, nil)
	require.Nil(t, err)
	defer r.Close()
	b, err := r.NextBatch()
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, b.ColumnNames())
	col, err := b.Column("b")
	require.Nil(t, err)
	require.Equal(t, []interface{}{nil, true}, col)
}

func TestJSONLVisitorWithLZ4(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "part-0.jsonl"), []byte(jsonLines(0, 7)), 0600))
	writeLZ4(t, filepath.Join(dir, "part-1.jsonl.lz4"), jsonLines(7, 3))
	files := filelist.FromPaths([]string{filepath.Join(dir, "part-0.jsonl"), filepath.Join(dir, "part-1.jsonl.lz4")}, 0)

	v, err := CreateVisitor(files, nil, &visitor.Conf{BatchSize: 3, ConsumeRemainder: true, Columns: []string{"example_id"}})
	require.Nil(t, err)
	var sizes []int
	var infos []fedlearner.BatchInfo
	err = visitor.ForEach(v, func(group fedlearner.BatchGroup, info fedlearner.BatchInfo) error {
		sizes = append(sizes, group.NumRows())
		infos = append(infos, info)
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, []int{3, 4, 3}, sizes)
	require.Equal(t, []fedlearner.BatchInfo{
		{Finished: false, FileIdx: 0, BatchIdx: 1},
		{Finished: true, FileIdx: 0, BatchIdx: 2},
		{Finished: true, FileIdx: 1, BatchIdx: 3},
	}, infos)
}

func TestJSONLReadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jsonl")
	require.Nil(t, os.WriteFile(corrupt, []byte(jsonLines(0, 2)+"{not json\n"), 0600))
	v, err := CreateVisitor(filelist.FromPaths([]string{corrupt}, 0), nil, &visitor.Conf{BatchSize: 2})
	require.Nil(t, err)
	_, info, err := v.Next()
	require.Nil(t, err)
	require.False(t, info.Finished)
	_, _, err = v.Next()
	var readErr errors.BatchReadError
	require.True(t, goerrors.As(err, &readErr))
	require.Equal(t, int64(2), readErr.BatchIdx)

	good := filepath.Join(dir, "good.jsonl")
	require.Nil(t, os.WriteFile(good, []byte(jsonLines(0, 2)), 0600))
	v, err = CreateVisitor(filelist.FromPaths([]string{good}, 0), nil, &visitor.Conf{BatchSize: 2, Columns: []string{"meta.missing"}})
	require.Nil(t, err)
	_, _, err = v.Next()
	var colErr errors.UnknownColumnError
	require.True(t, goerrors.As(err, &colErr))
	require.Equal(t, "meta.missing", colErr.Name)
}
