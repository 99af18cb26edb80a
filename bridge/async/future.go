package async

import (
	"context"
	"sync"
)

// Future is a single-assignment value settled by Resolve or Reject. The first
// settlement wins; later ones are ignored.
type Future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

// NewFuture returns an unsettled future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve settles the future with a value.
func (f *Future) Resolve(value any) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

// Reject settles the future with a failure.
func (f *Future) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future settles.
func (f *Future) Done() <-chan struct{} { return f.done }

// Settled reports whether Resolve or Reject has been called.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the future settles or ctx is done. A done context stops
// the wait only; whatever operation settles the future keeps running.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
