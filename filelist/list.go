package filelist

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/zeuson0/fedlearner"
)

// List is an ordered list of FileDescriptors. It is never modified after construction.
type List struct {
	files []fedlearner.FileDescriptor
}

// Create builds a List from descriptors, preserving their order
func Create(files ...fedlearner.FileDescriptor) *List {
	copied := make([]fedlearner.FileDescriptor, len(files))
	copy(copied, files)
	return &List{files: copied}
}

// FromPaths builds a List from paths, assigning consecutive indices beginning at firstIndex
func FromPaths(paths []string, firstIndex int64) *List {
	files := make([]fedlearner.FileDescriptor, len(paths))
	for i, path := range paths {
		files[i] = fedlearner.FileDescriptor{Index: firstIndex + int64(i), Path: path}
	}
	return &List{files: files}
}

// FromGlob builds a List from the files matching glob, in lexical order, assigning
// consecutive indices beginning at firstIndex
func FromGlob(glob string, firstIndex int64) (*List, error) {
	return FromGlobs([]string{glob}, firstIndex)
}

// FromGlobs builds a List from the files matching each glob in turn. Matches of a single
// glob are in lexical order. Indices are consecutive, beginning at firstIndex.
func FromGlobs(globs []string, firstIndex int64) (*List, error) {
	var paths []string
	for _, glob := range globs {
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %s produced 0 files", glob)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return FromPaths(paths, firstIndex), nil
}

// Len returns the number of files in this List
func (l *List) Len() int {
	return len(l.files)
}

// At returns the i-th file of this List
func (l *List) At(i int) fedlearner.FileDescriptor {
	return l.files[i]
}

// Files returns a copy of the descriptors in this List
func (l *List) Files() []fedlearner.FileDescriptor {
	copied := make([]fedlearner.FileDescriptor, len(l.files))
	copy(copied, l.files)
	return copied
}

// Paths returns the path of every file, in order
func (l *List) Paths() []string {
	paths := make([]string, len(l.files))
	for i, f := range l.files {
		paths[i] = f.Path
	}
	return paths
}

// Indices returns the index of every file, in order
func (l *List) Indices() []int64 {
	indices := make([]int64, len(l.files))
	for i, f := range l.files {
		indices[i] = f.Index
	}
	return indices
}

// Cursor returns a fresh Cursor positioned before the first file of this List
func (l *List) Cursor() *Cursor {
	return &Cursor{list: l}
}

// Shard splits this List into n disjoint Lists, assigning files round-robin. Relative
// order and file indices are preserved within each shard. Shards may be empty.
func (l *List) Shard(n int) ([]*List, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot split file list into %d shards", n)
	}
	shards := make([]*List, n)
	for i := range shards {
		shards[i] = &List{files: []fedlearner.FileDescriptor{}}
	}
	for i, f := range l.files {
		shard := shards[i%n]
		shard.files = append(shard.files, f)
	}
	return shards, nil
}

// Fingerprint hashes the (index, path) pairs of this List, in order. Two parties can compare
// fingerprints to verify that they are about to walk the same files.
func (l *List) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 20)
	for _, f := range l.files {
		buf = strconv.AppendInt(buf[:0], f.Index, 10)
		buf = append(buf, 0)
		d.Write(buf)
		d.WriteString(f.Path)
		d.Write([]byte{0})
	}
	return d.Sum64()
}
