// Package queue provides the bounded FIFO used by the keyboard and pointer
// state machines.
package queue

// DefaultCapacity is the number of entries a queue holds when no capacity
// is configured.
const DefaultCapacity = 16

// Ring is a fixed-capacity FIFO. Pushing onto a full ring evicts the single
// oldest entry. Ring is not safe for concurrent use.
type Ring[T any] struct {
	buf     []T
	head    int
	n       int
	dropped uint64
}

// New creates a ring with the given capacity.
// A capacity of zero or less falls back to DefaultCapacity.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v at the back. It reports whether the oldest entry was
// evicted to make room.
func (r *Ring[T]) Push(v T) bool {
	evicted := false
	if r.n == len(r.buf) {
		var zero T
		r.buf[r.head] = zero
		r.head = (r.head + 1) % len(r.buf)
		r.n--
		r.dropped++
		evicted = true
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
	return evicted
}

// Pop removes and returns the oldest entry.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return v, true
}

// Len returns the number of queued entries.
func (r *Ring[T]) Len() int {
	return r.n
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Empty reports whether the ring holds no entries.
func (r *Ring[T]) Empty() bool {
	return r.n == 0
}

// Clear drops all entries. The eviction counter is preserved.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head = 0
	r.n = 0
}

// Dropped returns how many entries have been evicted since construction.
func (r *Ring[T]) Dropped() uint64 {
	return r.dropped
}
