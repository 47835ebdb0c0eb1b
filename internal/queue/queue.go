// Package queue implements the Work Channel: an unbounded multi-producer,
// multi-consumer FIFO queue. Producers never block on Put. Consumers block on
// Take until an item arrives or until end-of-work is signalled.
//
// End-of-work can be signalled in two ways:
//
//   - Close the queue once all producers are done. Every consumer drains the
//     remaining items and then observes end-of-work. Close is idempotent.
//   - Put one end-of-work sentinel per consumer with PutEndOfWork. A consumer
//     that dequeues a sentinel must stop taking.
//
// In both cases Take reports end-of-work as ok == false and returns no record,
// so a consumer can never read payload fields of the signal.
package queue

import (
	"sync"

	"github.com/mimecast/webgrep/internal/errors"
)

// compactThreshold is the number of consumed slots after which the backing
// slice gets compacted.
const compactThreshold = 1024

// item is either a value or an end-of-work sentinel.
type item[T any] struct {
	value T
	end   bool
}

// Unbounded is a mutex guarded FIFO queue without capacity limit.
type Unbounded[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []item[T]
	head   int
	closed bool
}

// NewUnbounded returns an empty open queue.
func NewUnbounded[T any]() *Unbounded[T] {
	q := &Unbounded[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends a value. It never blocks on capacity. It returns
// errors.ErrQueueClosed when the queue was closed already.
func (q *Unbounded[T]) Put(v T) error {
	return q.put(item[T]{value: v})
}

// PutEndOfWork appends one end-of-work sentinel.
func (q *Unbounded[T]) PutEndOfWork() error {
	return q.put(item[T]{end: true})
}

func (q *Unbounded[T]) put(it item[T]) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.ErrQueueClosed
	}
	q.items = append(q.items, it)
	q.mu.Unlock()
	q.cond.Signal()
	return nil
}

// Take removes and returns the oldest value. It blocks while the queue is
// empty and open. ok is false when the consumer dequeued an end-of-work
// sentinel or when the queue is closed and drained.
func (q *Unbounded[T]) Take() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) && !q.closed {
		q.cond.Wait()
	}
	if q.head == len(q.items) {
		return v, false
	}

	it := q.items[q.head]
	q.items[q.head] = item[T]{}
	q.head++
	q.compact()

	if it.end {
		return v, false
	}
	return it.value, true
}

// compact releases consumed slots. Must be called with mu held.
func (q *Unbounded[T]) compact() {
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		for i := n; i < len(q.items); i++ {
			q.items[i] = item[T]{}
		}
		q.items = q.items[:n]
		q.head = 0
	}
}

// Close marks the queue as closed and wakes up all waiting consumers.
// Items already queued can still be taken.
func (q *Unbounded[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Closed reports whether Close was called.
func (q *Unbounded[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued entries, sentinels included.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
