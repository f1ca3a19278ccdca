// Package cow provides a reference-counted copy-on-write handle.
//
// Handles that were produced from one another by Share point at the same
// cell. A write through any of them first detaches that handle onto a
// private clone when the cell has more than one reference. There is no
// back-pointer between handles and no locking: callers serialise writers.
package cow

// cell is the shared slot. refs counts the handles pointing at it.
type cell[T any] struct {
	val  T
	refs int
}

// Handle is one owner of a possibly shared value.
type Handle[T any] struct {
	c     *cell[T]
	clone func(T) T
}

// New returns a handle that exclusively owns v. clone must return an
// independent deep copy.
func New[T any](v T, clone func(T) T) *Handle[T] {
	return &Handle[T]{c: &cell[T]{val: v, refs: 1}, clone: clone}
}

// Share returns a second handle aliasing the same value. Both handles are
// shared afterwards.
func (h *Handle[T]) Share() *Handle[T] {
	h.c.refs++
	return &Handle[T]{c: h.c, clone: h.clone}
}

// Shared reports whether another handle may observe the value.
func (h *Handle[T]) Shared() bool { return h.c.refs > 1 }

// Load returns the current value for reading.
func (h *Handle[T]) Load() T { return h.c.val }

// Acquire returns a value that only h can observe, cloning it first when it
// is shared. copied reports whether a clone was made.
func (h *Handle[T]) Acquire() (v T, copied bool) {
	if h.c.refs > 1 {
		h.detach(h.clone(h.c.val))
		return h.c.val, true
	}
	return h.c.val, false
}

// Store replaces the value seen through h. A shared handle detaches without
// cloning since the old value is discarded anyway.
func (h *Handle[T]) Store(v T) {
	if h.c.refs > 1 {
		h.detach(v)
		return
	}
	h.c.val = v
}

func (h *Handle[T]) detach(v T) {
	h.c.refs--
	h.c = &cell[T]{val: v, refs: 1}
}
