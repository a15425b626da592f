package source

import (
	"testing"

	"github.com/stretchr/testify/require"
	errors "github.com/zeuson0/fedlearner/errors"
)

func TestBatch(t *testing.T) {
	b := CreateBatch(2, "x", "y")
	require.Equal(t, 2, b.NumRows())
	b.Set("x", 0, int64(1))
	b.Set("z", 1, "added")
	require.Equal(t, []string{"x", "y", "z"}, b.ColumnNames())

	x, err := b.Column("x")
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(1), nil}, x)
	z, err := b.Column("z")
	require.Nil(t, err)
	require.Equal(t, []interface{}{nil, "added"}, z)

	_, err = b.Column("missing")
	require.NotNil(t, err)
	_, ok := err.(errors.UnknownColumnError)
	require.True(t, ok)
}
