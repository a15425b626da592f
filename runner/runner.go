// Package runner drives several Visitors in parallel, one per disjoint shard of a file
// list. Each Visitor is still consumed from a single goroutine.
package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/visitor"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// BuildFunc creates the Visitor for one shard
type BuildFunc func(shard int, files *filelist.List) (fedlearner.Visitor, error)

// ConsumeFunc receives every BatchGroup of a shard, in order. Calls for different shards may be concurrent.
type ConsumeFunc func(shard int, group fedlearner.BatchGroup, info fedlearner.BatchInfo) error

// Run visits every shard, running at most parallelism Visitors at a time. It returns the first
// error encountered, combined with any error from closing Visitors, and stops the remaining
// shards between batches once ctx is cancelled or a shard has failed.
func Run(ctx context.Context, shards []*filelist.List, parallelism int, build BuildFunc, consume ConsumeFunc) error {
	if parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, was %d", parallelism)
	}
	sem := semaphore.NewWeighted(int64(parallelism))
	g, gctx := errgroup.WithContext(ctx)
	var closeErrs *multierror.Error
	var closeLock sync.Mutex

	for i, files := range shards {
		shard := i
		files := files
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			v, err := build(shard, files)
			if err != nil {
				return err
			}
			defer func() {
				if err := v.Close(); err != nil {
					closeLock.Lock()
					closeErrs = multierror.Append(closeErrs, fmt.Errorf("shard %d: %w", shard, err))
					closeLock.Unlock()
				}
			}()
			return visitor.ForEach(v, func(group fedlearner.BatchGroup, info fedlearner.BatchInfo) error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return consume(shard, group, info)
			})
		})
	}
	err := g.Wait()
	if closeErrs != nil {
		return multierror.Append(err, closeErrs.Errors...).ErrorOrNil()
	}
	return err
}
