package filelist

import "github.com/zeuson0/fedlearner"

// Cursor is a forward-only iterator over the files of a List
type Cursor struct {
	list *List
	next int
}

// HasNext returns true iff there is another file remaining
func (c *Cursor) HasNext() bool {
	return c.next < len(c.list.files)
}

// Next returns the next file and advances the Cursor. It panics if there is none.
func (c *Cursor) Next() fedlearner.FileDescriptor {
	f := c.list.files[c.next]
	c.next++
	return f
}

// Position returns the number of files already returned by Next
func (c *Cursor) Position() int {
	return c.next
}
