package buffer

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrQueueDone is returned by Next when the queue is closed for writing and
// every queued element has been consumed.
var ErrQueueDone = errors.New("buffer: queue done")

// Queue is a thread-safe unbounded FIFO queue.
//
// Elements are appended by Add and popped in strict arrival order by Next.
// When the queue is empty, Next blocks until an element is added or the
// queue is closed. CloseWrite prevents further Adds but lets Next drain the
// remaining elements; once empty, Next returns ErrQueueDone. CloseWithError
// tears down both ends immediately and unblocks all waiters.
type Queue[T any] struct {
	addNotify chan struct{}

	mu         sync.Mutex
	closeWrite bool
	closeErr   error
	elems      []T
}

// NewQueue creates a Queue with the given initial capacity hint. The queue
// grows beyond the hint as needed.
func NewQueue[T any](n int) *Queue[T] {
	return &Queue[T]{
		addNotify: make(chan struct{}, 1),
		elems:     make([]T, 0, n),
	}
}

// Add appends an element to the queue and wakes one waiting consumer.
// Returns an error if the queue has been closed for writing.
func (q *Queue[T]) Add(t T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return fmt.Errorf("buffer: add to closed queue: %w", q.closeErr)
	}
	if q.closeWrite {
		return fmt.Errorf("buffer: add to closed queue: %w", io.ErrClosedPipe)
	}
	q.elems = append(q.elems, t)
	select {
	case q.addNotify <- struct{}{}:
	default:
	}
	return nil
}

// Next removes and returns the oldest element. It blocks while the queue is
// empty and open. After CloseWrite it keeps returning queued elements until
// the queue is empty, then returns ErrQueueDone.
func (q *Queue[T]) Next() (t T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		err = fmt.Errorf("buffer: next from closed queue: %w", q.closeErr)
		return
	}
	for len(q.elems) == 0 {
		if q.closeWrite {
			err = ErrQueueDone
			return
		}
		q.mu.Unlock()
		<-q.addNotify
		q.mu.Lock()
		if q.closeErr != nil {
			err = fmt.Errorf("buffer: next from closed queue: %w", q.closeErr)
			return
		}
	}
	t = q.elems[0]
	// Shift rather than re-slice so the backing array gets reused once the
	// queue drains to empty.
	copy(q.elems, q.elems[1:])
	q.elems = q.elems[:len(q.elems)-1]
	return
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.elems)
}

// CloseWrite closes the intake side of the queue. Queued elements remain
// consumable; once drained, Next returns ErrQueueDone. Idempotent.
func (q *Queue[T]) CloseWrite() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeWrite {
		return nil
	}
	q.closeWrite = true
	close(q.addNotify)
	return nil
}

// CloseWithError closes both ends of the queue immediately. Queued elements
// are discarded and all pending operations return the given error. If err is
// nil, io.ErrClosedPipe is used.
func (q *Queue[T]) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return nil
	}
	q.closeErr = err
	q.elems = nil
	if !q.closeWrite {
		q.closeWrite = true
		close(q.addNotify)
	}
	return nil
}

// Err returns the error the queue was closed with, if any.
func (q *Queue[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closeErr
}
