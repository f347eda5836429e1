package mcrcon

import (
	"time"
)

// waiter is a registered intent to observe the next event of one kind.
type waiter struct {
	id       uint64
	kind     EventKind
	deadline time.Time
	result   *Deferred[string]
	timer    *time.Timer
}

// waiterQueue holds pending waiters for one event kind in registration
// order. It is not safe for concurrent use; the Correlator guards it.
type waiterQueue struct {
	items []*waiter
}

func (q *waiterQueue) push(w *waiter) {
	q.items = append(q.items, w)
}

// pop removes and returns the oldest waiter, or nil if the queue is empty.
func (q *waiterQueue) pop() *waiter {
	if len(q.items) == 0 {
		return nil
	}
	w := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return w
}

// remove deletes w from the queue. Returns false if w was not queued,
// which means it has already been popped and settled.
func (q *waiterQueue) remove(w *waiter) bool {
	for i, item := range q.items {
		if item == w {
			copy(q.items[i:], q.items[i+1:])
			q.items[len(q.items)-1] = nil
			q.items = q.items[:len(q.items)-1]
			return true
		}
	}
	return false
}

// drain removes and returns every queued waiter.
func (q *waiterQueue) drain() []*waiter {
	items := q.items
	q.items = nil
	return items
}

func (q *waiterQueue) len() int {
	return len(q.items)
}
