package runner

import (
	"sync"

	"github.com/zeuson0/fedlearner"
)

// Summary totals the progress of a traversal
type Summary struct {
	Batches       int64 // number of BatchGroups yielded
	Rows          int64 // number of rows yielded
	FinishedFiles int64 // number of files completed
	MergedGroups  int64 // number of BatchGroups holding a merged remainder
}

// Tally accumulates a Summary. It is safe for concurrent use.
type Tally struct {
	lock    sync.Mutex
	summary Summary
}

// Add records one BatchGroup
func (t *Tally) Add(group fedlearner.BatchGroup, info fedlearner.BatchInfo) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.summary.Batches++
	t.summary.Rows += int64(group.NumRows())
	if info.Finished {
		t.summary.FinishedFiles++
	}
	if len(group) > 1 {
		t.summary.MergedGroups++
	}
}

// Summary returns the totals recorded so far
func (t *Tally) Summary() Summary {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.summary
}
