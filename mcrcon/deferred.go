package mcrcon

import (
	"context"
	"sync/atomic"
)

// Deferred is a single-assignment result settled by a party other than
// the one waiting on it. The first Resolve or Reject wins; later calls
// report false and change nothing.
type Deferred[T any] struct {
	settled atomic.Bool
	done    chan struct{}
	value   T
	err     error
}

// NewDeferred creates an unsettled Deferred.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolve settles d with value. Returns false if d was already settled.
func (d *Deferred[T]) Resolve(value T) bool {
	if !d.settled.CompareAndSwap(false, true) {
		return false
	}
	d.value = value
	close(d.done)
	return true
}

// Reject settles d with err. Returns false if d was already settled.
func (d *Deferred[T]) Reject(err error) bool {
	if !d.settled.CompareAndSwap(false, true) {
		return false
	}
	d.err = err
	close(d.done)
	return true
}

// Done is closed once d is settled.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether Resolve or Reject has been called.
func (d *Deferred[T]) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Wait blocks until d is settled or ctx is done.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
