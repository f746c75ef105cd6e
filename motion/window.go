// Package motion smooths and corrects pointer velocities before they drive
// a fling.
package motion

// DefaultCapacity is the number of samples a Tracker keeps per axis.
const DefaultCapacity = 10

// Window is a fixed-capacity FIFO. Pushing beyond capacity evicts the oldest
// element, so Len() never exceeds Cap().
type Window[T any] struct {
	data []T
	pos  int // next write index
	full bool
}

// NewWindow creates a window with the given capacity (minimum 1).
func NewWindow[T any](capacity int) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Window[T]{data: make([]T, capacity)}
}

// Push appends v, evicting the oldest element when full.
func (w *Window[T]) Push(v T) {
	w.data[w.pos] = v
	w.pos++
	if w.pos >= len(w.data) {
		w.pos = 0
		w.full = true
	}
}

// Len returns the number of stored elements.
func (w *Window[T]) Len() int {
	if w.full {
		return len(w.data)
	}
	return w.pos
}

// Cap returns the capacity.
func (w *Window[T]) Cap() int {
	return len(w.data)
}

// At returns the i-th element in insertion order (0 = oldest).
// Panics if i is out of range.
func (w *Window[T]) At(i int) T {
	n := w.Len()
	if i < 0 || i >= n {
		panic("motion: window index out of range")
	}
	if !w.full {
		return w.data[i]
	}
	return w.data[(w.pos+i)%len(w.data)]
}

// Last returns the most recently pushed element and false if empty.
func (w *Window[T]) Last() (T, bool) {
	n := w.Len()
	if n == 0 {
		var zero T
		return zero, false
	}
	return w.At(n - 1), true
}

// Slice returns a copy of the contents in insertion order.
func (w *Window[T]) Slice() []T {
	n := w.Len()
	out := make([]T, n)
	if w.full {
		copy(out, w.data[w.pos:])
		copy(out[len(w.data)-w.pos:], w.data[:w.pos])
	} else {
		copy(out, w.data[:w.pos])
	}
	return out
}

// Clear drops all elements, keeping capacity.
func (w *Window[T]) Clear() {
	var zero T
	for i := range w.data {
		w.data[i] = zero
	}
	w.pos = 0
	w.full = false
}
