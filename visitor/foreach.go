package visitor

import (
	goerrors "errors"

	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
)

// ForEach drains v, calling fn for every BatchGroup in order. It stops at the first error
// returned by v or fn, and returns nil once v reports the end of the traversal.
func ForEach(v fedlearner.Visitor, fn func(group fedlearner.BatchGroup, info fedlearner.BatchInfo) error) error {
	for v.HasNext() {
		group, info, err := v.Next()
		if IsEnd(err) {
			return nil
		} else if err != nil {
			return err
		}
		if err := fn(group, info); err != nil {
			return err
		}
	}
	return nil
}

// IsEnd returns true iff err reports the end of a traversal
func IsEnd(err error) bool {
	return goerrors.As(err, &errors.NoMoreBatchesError{})
}
