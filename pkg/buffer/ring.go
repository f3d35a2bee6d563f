package buffer

import "sync"

// Ring is a thread-safe fixed-size window that overwrites the oldest element
// when full. Unlike Queue it never blocks and never grows, making it suitable
// for "most recent N" feedback data where stale elements are worthless.
type Ring[T any] struct {
	mu     sync.Mutex
	buf    []T
	pos    int
	filled int
}

// NewRing creates a Ring holding at most n elements. n must be positive.
func NewRing[T any](n int) *Ring[T] {
	if n <= 0 {
		panic("buffer: ring size must be positive")
	}
	return &Ring[T]{buf: make([]T, n)}
}

// Push adds an element, overwriting the oldest one when the window is full.
func (r *Ring[T]) Push(t T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.pos] = t
	r.pos = (r.pos + 1) % len(r.buf)
	if r.filled < len(r.buf) {
		r.filled++
	}
}

// Snapshot returns the window contents in oldest-to-newest order.
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, r.filled)
	start := (r.pos - r.filled + len(r.buf)) % len(r.buf)
	for i := 0; i < r.filled; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of elements currently in the window.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filled
}

// Reset clears the window.
func (r *Ring[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	r.filled = 0
}
