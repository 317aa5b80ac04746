// Package events provides the application's central event queue.
package events

import "sync"

// Queue is an unbounded FIFO. Producers never block; a single consumer
// waits on Ready and drains in bounded batches.
type Queue[E any] struct {
	mu    sync.Mutex
	items []E
	ready chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue[E any]() *Queue[E] {
	return &Queue[E]{ready: make(chan struct{}, 1)}
}

// Send appends e and wakes the consumer.
func (q *Queue[E]) Send(e E) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()
	q.signal()
}

// Ready receives a value whenever items may be pending.
func (q *Queue[E]) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns up to limit items in order. If items remain,
// Ready is signaled again.
func (q *Queue[E]) Drain(limit int) []E {
	q.mu.Lock()
	n := min(limit, len(q.items))
	batch := make([]E, n)
	copy(batch, q.items[:n])
	clear(q.items[:n])
	q.items = q.items[n:]
	if len(q.items) == 0 {
		q.items = nil
	}
	remaining := len(q.items)
	q.mu.Unlock()

	if remaining > 0 {
		q.signal()
	}
	return batch
}

// Len returns the number of pending items.
func (q *Queue[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue[E]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
