package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge/async"
	"github.com/viant/agentbridge/internal/logging"
)

func TestProxy_Call(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name       string
		marshaller *Marshaller
	}{
		{name: "identity marshaller", marshaller: NewMarshaller(nil)},
		{name: "remote marshaller", marshaller: NewMarshaller(fakeEncoder{})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agent := newFakeAgent()
			proxy := New(agent, WithMarshaller(tc.marshaller), WithLogger(logging.Discard()))

			actual, err := proxy.Call(ctx, "set_state", map[string]any{"count": 2})
			require.NoError(t, err)
			state, ok := actual.(map[string]any)
			require.True(t, ok)
			assert.EqualValues(t, 2, state["count"])
			assert.EqualValues(t, "setState", agent.lastCall().name)

			_, err = proxy.Call(ctx, "set_state", map[string]any{"label": "x"})
			require.NoError(t, err)
			assert.EqualValues(t, map[string]any{"count": 2, "label": "x"}, proxy.State())
		})
	}
}

func TestProxy_CallWithOptions(t *testing.T) {
	ctx := context.Background()
	agent := newFakeAgent()
	proxy := New(agent, WithLogger(logging.Discard()))

	actual, err := proxy.CallWithOptions(ctx, "custom", map[string]any{"retry": true}, "a", "b")
	require.NoError(t, err)
	assert.EqualValues(t, 3, actual)
	call := agent.lastCall()
	assert.EqualValues(t, []any{"a", "b", map[string]any{"retry": true}}, call.args)

	actual, err = proxy.CallWithOptions(ctx, "custom", nil, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, actual)
}

func TestProxy_NotFound(t *testing.T) {
	ctx := context.Background()

	strict := New(newFakeAgent(), WithPolicy(Strict), WithLogger(logging.Discard()))
	_, err := strict.Call(ctx, "not_real_method")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = strict.Invoke(ctx, "custom")
	assert.ErrorIs(t, err, ErrNotFound)

	actual, err := strict.Call(ctx, "get_mcp_servers")
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{"servers": []any{}}, actual)

	passThrough := New(newFakeAgent(), WithLogger(logging.Discard()))
	actual, err = passThrough.Call(ctx, "not_real_method")
	require.NoError(t, err)
	assert.EqualValues(t, "reached", actual)
	_, err = passThrough.Call(ctx, "missing_method")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.EqualValues(t, "missing_method", notFound.Name)

	extended := New(newFakeAgent(), WithPolicy(Strict, "custom"), WithLogger(logging.Discard()))
	actual, err = extended.Invoke(ctx, "custom", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, actual)
}

func TestProxy_Property(t *testing.T) {
	agent := newFakeAgent()
	agent.properties["currentState"] = "idle"
	proxy := New(agent, WithPolicy(Strict), WithLogger(logging.Discard()))

	state, err := proxy.Property("state")
	require.NoError(t, err)
	assert.EqualValues(t, map[string]any{}, state)

	_, err = proxy.Property("env")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, proxy.Env())
	assert.Nil(t, proxy.Ctx())

	_, err = proxy.Property("current_state")
	assert.ErrorIs(t, err, ErrNotFound, "strict policy hides undeclared properties")

	loose := New(agent, WithLogger(logging.Discard()))
	actual, err := loose.Property("current_state")
	require.NoError(t, err)
	assert.EqualValues(t, "idle", actual)
}

func TestProxy_NilHandle(t *testing.T) {
	ctx := context.Background()
	proxy := New(nil, WithLogger(logging.Discard()))

	assert.NotPanics(t, func() {
		assert.Nil(t, proxy.State())
		assert.Nil(t, proxy.Env())
		assert.Nil(t, proxy.Ctx())
	})
	_, err := proxy.Property("state")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = proxy.Call(ctx, "set_state", map[string]any{"count": 1})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = proxy.Invoke(ctx, "custom")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProxy_Async(t *testing.T) {
	ctx := context.Background()
	agent := newFakeAgent()
	cause := map[string]any{"message": "quota exceeded"}
	agent.methods["rejects"] = func(ctx context.Context, args ...any) async.Result {
		f := async.NewFuture()
		go f.Reject(&RejectionError{Reason: cause})
		return async.Pending(f)
	}
	agent.methods["later"] = func(ctx context.Context, args ...any) async.Result {
		f := async.NewFuture()
		go func() {
			time.Sleep(5 * time.Millisecond)
			f.Resolve(args[0])
		}()
		return async.Pending(f)
	}
	proxy := New(agent, WithLogger(logging.Discard()))

	actual, err := proxy.Call(ctx, "later", "v")
	require.NoError(t, err)
	assert.EqualValues(t, "v", actual)

	_, err = proxy.Call(ctx, "rejects")
	var rejection *RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.EqualValues(t, cause, rejection.Reason)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	_, err := Create(ctx, nil, AgentOptions{Name: "counter"})
	assert.ErrorIs(t, err, ErrBridgeUnavailable)

	var received any
	agent := newFakeAgent()
	factory := func(ctx context.Context, args ...any) async.Result {
		received = args[0]
		return async.Ready(agent)
	}
	proxy, err := Create(ctx, factory, AgentOptions{Name: "counter", InitialState: map[string]any{"count": 0}}, WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Same(t, agent, proxy.Raw())
	assert.EqualValues(t, map[string]any{"name": "counter", "initialState": map[string]any{"count": 0}}, received)

	_, err = Create(ctx, func(ctx context.Context, args ...any) async.Result { return async.Ready("nope") }, Params{})
	assert.Error(t, err)
}

func TestRecords(t *testing.T) {
	assert.EqualValues(t, map[string]any{"name": "a"}, AgentOptions{Name: "a"}.Record())
	assert.EqualValues(t, map[string]any{"state": map[string]any{}}, McpAgentOptions{}.Record())
	assert.EqualValues(t, map[string]any{"state": map[string]any{"k": 1}, "env": "E"}, McpAgentOptions{State: map[string]any{"k": 1}, Env: "E"}.Record())
	assert.EqualValues(t, map[string]any{}, Params(nil).Record())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("strict")
	require.NoError(t, err)
	assert.EqualValues(t, Strict, p)
	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.EqualValues(t, PassThrough, p)
	_, err = ParsePolicy("open")
	assert.Error(t, err)
}
