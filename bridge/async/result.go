package async

import "context"

// Result is either Ready(value), Failed(err) or Pending(future).
type Result struct {
	value  any
	err    error
	future *Future
}

// Ready wraps an already available value.
func Ready(value any) Result { return Result{value: value} }

// Failed wraps a failure that is known up front.
func Failed(err error) Result { return Result{err: err} }

// Pending wraps a future that settles later. A nil future is Ready(nil).
func Pending(future *Future) Result { return Result{future: future} }

// Resolved returns a Pending result over an already resolved future.
func Resolved(value any) Result {
	f := NewFuture()
	f.Resolve(value)
	return Pending(f)
}

// IsPending reports whether the result still depends on a future.
func (r Result) IsPending() bool { return r.future != nil && !r.future.Settled() }

// Err returns the up-front failure, if any. Failures of a pending future are
// only visible through Await.
func (r Result) Err() error { return r.err }

// Await yields the unwrapped value.
func (r Result) Await(ctx context.Context) (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.future == nil {
		return r.value, nil
	}
	return r.future.Await(ctx)
}

// Then chains fn over the settled value. fn runs on the awaiting goroutine.
func (r Result) Then(ctx context.Context, fn func(any) (any, error)) (any, error) {
	value, err := r.Await(ctx)
	if err != nil {
		return nil, err
	}
	return fn(value)
}
