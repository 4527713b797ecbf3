package session

import "errors"

// ErrEmpty is returned by Cursor.Current when there are no items.
var ErrEmpty = errors.New("session: no items")

// Cursor walks a fixed-length ordered list of items.
type Cursor[T any] struct {
	items     []T
	index     int
	exhausted bool
}

// NewCursor creates a cursor over a copy of items.
func NewCursor[T any](items []T) *Cursor[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &Cursor[T]{items: cp}
}

// Len returns the number of items.
func (c *Cursor[T]) Len() int {
	return len(c.items)
}

// Index returns the cursor position.
func (c *Cursor[T]) Index() int {
	return c.index
}

// Items returns a copy of the underlying items.
func (c *Cursor[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Exhausted reports whether the last item has been passed.
func (c *Cursor[T]) Exhausted() bool {
	return c.exhausted
}

// Current returns the item under the cursor.
func (c *Cursor[T]) Current() (T, error) {
	if len(c.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return c.items[c.index], nil
}

// At returns the item at i, clamped into range.
func (c *Cursor[T]) At(i int) (T, error) {
	if len(c.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return c.items[c.clamp(i)], nil
}

// Advance moves to the next item, saturating on the last one. It reports
// true exactly once: on the call made while the cursor sits on the last
// item. Later calls return false until Reset.
func (c *Cursor[T]) Advance() (wasLast bool) {
	if len(c.items) == 0 || c.exhausted {
		return false
	}
	if c.index == len(c.items)-1 {
		c.exhausted = true
		return true
	}
	c.index++
	return false
}

// Seek moves the cursor to i clamped into [0, Len-1] and returns the new
// position. It does not change the exhausted state.
func (c *Cursor[T]) Seek(i int) int {
	if len(c.items) == 0 {
		return 0
	}
	c.index = c.clamp(i)
	return c.index
}

// Reset rewinds to the first item and clears the exhausted state.
func (c *Cursor[T]) Reset() {
	c.index = 0
	c.exhausted = false
}

func (c *Cursor[T]) clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i > len(c.items)-1:
		return len(c.items) - 1
	}
	return i
}
