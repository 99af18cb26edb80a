package bridge

import (
	"context"

	"github.com/viant/agentbridge/bridge/async"
)

// Function is a remote callable. The boundary implementation decides whether
// the outcome is Ready, Failed or Pending.
type Function func(ctx context.Context, args ...any) async.Result

// Handle is an opaque, externally owned reference to a remote object. Names
// passed to a Handle are already in the remote convention.
type Handle interface {
	// Get reads a property; ok is false when the property is absent.
	Get(name string) (value any, ok bool)
	// Method resolves a callable member; ok is false when the member is absent
	// or not callable.
	Method(name string) (fn Function, ok bool)
}

// Materializer is implemented by remote values that can convert themselves
// into local containers.
type Materializer interface {
	Materialize() any
}

// Callback is a Go function handed to the remote runtime, for example a tool
// handler registered on a remote tool host.
type Callback func(ctx context.Context, args ...any) (any, error)
