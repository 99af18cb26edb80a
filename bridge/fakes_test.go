package bridge

import (
	"context"
	"sync"

	"github.com/viant/agentbridge/bridge/async"
)

// remoteObject and remoteArray stand in for native values of a remote runtime.
type remoteObject struct{ entries map[string]any }

type remoteArray struct{ items []any }

func (o *remoteObject) Materialize() any {
	out := make(map[string]any, len(o.entries))
	for k, v := range o.entries {
		out[k] = materialize(v)
	}
	return out
}

func (a *remoteArray) Materialize() any {
	out := make([]any, len(a.items))
	for i, v := range a.items {
		out[i] = materialize(v)
	}
	return out
}

func materialize(v any) any {
	if m, ok := v.(Materializer); ok {
		return m.Materialize()
	}
	return v
}

type fakeEncoder struct{}

func (fakeEncoder) EncodeObject(entries map[string]any) any { return &remoteObject{entries: entries} }
func (fakeEncoder) EncodeArray(items []any) any             { return &remoteArray{items: items} }

// fakeAgent mimics a remote agent: camelCase methods, merge-style setState
// returning a promise-like pending result.
type fakeAgent struct {
	mu         sync.Mutex
	properties map[string]any
	methods    map[string]Function
	calls      []fakeCall
}

type fakeCall struct {
	name string
	args []any
}

func newFakeAgent() *fakeAgent {
	a := &fakeAgent{properties: map[string]any{"state": map[string]any{}}}
	a.methods = map[string]Function{
		"setState": func(ctx context.Context, args ...any) async.Result {
			a.record("setState", args)
			a.mu.Lock()
			defer a.mu.Unlock()
			state := a.properties["state"].(map[string]any)
			merged := map[string]any{}
			for k, v := range state {
				merged[k] = v
			}
			for k, v := range toMap(args[0]) {
				merged[k] = v
			}
			a.properties["state"] = merged
			return async.Resolved(merged)
		},
		"getMcpServers": func(ctx context.Context, args ...any) async.Result {
			a.record("getMcpServers", args)
			return async.Ready(map[string]any{"servers": []any{}})
		},
		"notRealMethod": func(ctx context.Context, args ...any) async.Result {
			a.record("notRealMethod", args)
			return async.Ready("reached")
		},
		"custom": func(ctx context.Context, args ...any) async.Result {
			a.record("custom", args)
			return async.Ready(len(args))
		},
	}
	for _, name := range DefaultAllowList {
		if _, ok := a.methods[name]; ok {
			continue
		}
		op := name
		a.methods[op] = func(ctx context.Context, args ...any) async.Result {
			a.record(op, args)
			return async.Ready(op)
		}
	}
	return a
}

func (a *fakeAgent) record(name string, args []any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, fakeCall{name: name, args: args})
}

func (a *fakeAgent) lastCall() fakeCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.calls) == 0 {
		return fakeCall{}
	}
	return a.calls[len(a.calls)-1]
}

func (a *fakeAgent) Get(name string) (any, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.properties[name]
	return v, ok
}

func (a *fakeAgent) Method(name string) (Function, bool) {
	fn, ok := a.methods[name]
	return fn, ok
}

func toMap(v any) map[string]any {
	switch actual := v.(type) {
	case map[string]any:
		return actual
	case *remoteObject:
		return actual.entries
	}
	return nil
}
