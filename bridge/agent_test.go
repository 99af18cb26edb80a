package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge/async"
	"github.com/viant/agentbridge/internal/logging"
)

func TestAgent_TypedOperations(t *testing.T) {
	ctx := context.Background()
	remote := newFakeAgent()
	agent := NewAgent(remote, WithPolicy(Strict), WithLogger(logging.Discard()))

	testCases := []struct {
		name       string
		call       func() (any, error)
		remoteName string
		args       []any
	}{
		{name: "schedule", call: func() (any, error) { return agent.Schedule(ctx, 10, "tick", nil) }, remoteName: "schedule", args: []any{10, "tick", map[string]any{}}},
		{name: "schedule every", call: func() (any, error) { return agent.ScheduleEvery(ctx, "*/5 * * * *", "tick", map[string]any{"n": 1}) }, remoteName: "scheduleEvery", args: []any{"*/5 * * * *", "tick", map[string]any{"n": 1}}},
		{name: "get schedules", call: func() (any, error) { return agent.GetSchedules(ctx) }, remoteName: "getSchedules"},
		{name: "cancel schedule", call: func() (any, error) { return agent.CancelSchedule(ctx, "s1") }, remoteName: "cancelSchedule", args: []any{"s1"}},
		{name: "queue", call: func() (any, error) { return agent.Queue(ctx, "work", nil) }, remoteName: "queue", args: []any{"work", map[string]any{}}},
		{name: "dequeue", call: func() (any, error) { return agent.Dequeue(ctx) }, remoteName: "dequeue"},
		{name: "dequeue all", call: func() (any, error) { return agent.DequeueAll(ctx) }, remoteName: "dequeueAll"},
		{name: "get queue", call: func() (any, error) { return agent.GetQueue(ctx) }, remoteName: "getQueue"},
		{name: "broadcast", call: func() (any, error) { return agent.Broadcast(ctx, "hi") }, remoteName: "broadcast", args: []any{"hi"}},
		{name: "run workflow", call: func() (any, error) { return agent.RunWorkflow(ctx, "onboard", nil) }, remoteName: "runWorkflow", args: []any{"onboard", map[string]any{}}},
		{name: "wait for approval", call: func() (any, error) { return agent.WaitForApproval(ctx, "k", nil) }, remoteName: "waitForApproval", args: []any{"k", map[string]any{}}},
		{name: "add mcp server", call: func() (any, error) { return agent.AddMcpServer(ctx, "docs", map[string]any{"url": "u"}) }, remoteName: "addMcpServer", args: []any{"docs", map[string]any{"url": "u"}}},
		{name: "remove mcp server", call: func() (any, error) { return agent.RemoveMcpServer(ctx, "docs") }, remoteName: "removeMcpServer", args: []any{"docs"}},
		{name: "reply to email", call: func() (any, error) { return agent.ReplyToEmail(ctx, "m") }, remoteName: "replyToEmail", args: []any{"m"}},
		{name: "on request", call: func() (any, error) { return agent.OnRequest(ctx, "r") }, remoteName: "onRequest", args: []any{"r"}},
		{name: "on connect", call: func() (any, error) { return agent.OnConnect(ctx, "c", "x") }, remoteName: "onConnect", args: []any{"c", "x"}},
		{name: "on message", call: func() (any, error) { return agent.OnMessage(ctx, "c", "m") }, remoteName: "onMessage", args: []any{"c", "m"}},
		{name: "on error", call: func() (any, error) { return agent.OnError(ctx, "c", "e") }, remoteName: "onError", args: []any{"c", "e"}},
		{name: "on close", call: func() (any, error) { return agent.OnClose(ctx, "c", 1000, "bye", true) }, remoteName: "onClose", args: []any{"c", 1000, "bye", true}},
		{name: "on email", call: func() (any, error) { return agent.OnEmail(ctx, "e") }, remoteName: "onEmail", args: []any{"e"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.call()
			require.NoError(t, err)
			call := remote.lastCall()
			assert.EqualValues(t, tc.remoteName, call.name)
			if tc.args == nil {
				assert.Empty(t, call.args)
				return
			}
			assert.EqualValues(t, tc.args, call.args)
		})
	}

	state, err := agent.SetState(ctx, map[string]any{"count": 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, state.(map[string]any)["count"])

	_, err = agent.Call(ctx, "not_real_method")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSDK(t *testing.T) {
	ctx := context.Background()
	remote := newFakeAgent()
	sdkHandle := newFakeAgent()
	var created any
	sdkHandle.methods["createAgent"] = func(ctx context.Context, args ...any) async.Result {
		created = args[0]
		return async.Ready(remote)
	}
	sdkHandle.methods["getAgentByName"] = func(ctx context.Context, args ...any) async.Result {
		if args[0] == "counter" {
			return async.Resolved(remote)
		}
		return async.Ready(nil)
	}
	sdkHandle.methods["getAgent"] = func(ctx context.Context, args ...any) async.Result { return async.Ready(remote) }
	sdkHandle.methods["routeAgentRequest"] = func(ctx context.Context, args ...any) async.Result { return async.Ready("routed") }
	sdkHandle.methods["createMcpAgent"] = func(ctx context.Context, args ...any) async.Result {
		created = args[0]
		return async.Ready(remote)
	}

	_, err := NewSDK(nil)
	assert.ErrorIs(t, err, ErrBridgeUnavailable)

	sdk, err := NewSDK(sdkHandle, WithLogger(logging.Discard()))
	require.NoError(t, err)

	agent, err := sdk.CreateAgent(ctx, AgentOptions{Name: "counter", Props: map[string]any{"p": 1}})
	require.NoError(t, err)
	assert.Same(t, remote, agent.Raw())
	assert.EqualValues(t, map[string]any{"name": "counter", "props": map[string]any{"p": 1}}, created)

	_, err = sdk.CreateAgent(ctx, AgentOptions{})
	assert.Error(t, err)

	mcpAgent, err := sdk.CreateMcpAgent(ctx, McpAgentOptions{Env: "E"})
	require.NoError(t, err)
	assert.Same(t, remote, mcpAgent.Raw())
	assert.EqualValues(t, map[string]any{"state": map[string]any{}, "env": "E"}, created)

	_, err = sdk.CreateAgentWorkflow(ctx, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	byName, err := sdk.GetAgentByName(ctx, "counter")
	require.NoError(t, err)
	assert.Same(t, remote, byName.Raw())

	_, err = sdk.GetAgentByName(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := sdk.GetAgentByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Same(t, remote, byID.Raw())

	routed, err := sdk.RouteAgentRequests(ctx, "req")
	require.NoError(t, err)
	assert.EqualValues(t, "routed", routed)

	_, err = sdk.RouteAgentEmail(ctx, "mail")
	assert.ErrorIs(t, err, ErrNotFound)
}
