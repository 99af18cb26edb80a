package bridge

import (
	"context"
	"fmt"
)

// Agent is the typed tier over a remote agent object. Every operation maps to
// one remote method; Call and Invoke from the embedded Proxy remain available
// for anything not listed here.
type Agent struct {
	*Proxy
}

// NewAgent wraps an existing remote agent handle.
func NewAgent(handle Handle, opts ...Option) *Agent {
	return &Agent{Proxy: New(handle, opts...)}
}

// CreateAgent builds a remote agent through a createAgent-style factory.
func CreateAgent(ctx context.Context, factory Function, options AgentOptions, opts ...Option) (*Agent, error) {
	if options.Name == "" {
		return nil, fmt.Errorf("create agent: name was empty")
	}
	proxy, err := Create(ctx, factory, options, opts...)
	if err != nil {
		return nil, err
	}
	return &Agent{Proxy: proxy}, nil
}

func payloadOrEmpty(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	return payload
}

func (a *Agent) SetState(ctx context.Context, state map[string]any) (any, error) {
	return a.Call(ctx, "set_state", payloadOrEmpty(state))
}

// Schedule runs callback at when (a date, delay in seconds or cron string,
// as understood by the remote runtime).
func (a *Agent) Schedule(ctx context.Context, when any, callback string, payload map[string]any) (any, error) {
	return a.Call(ctx, "schedule", when, callback, payloadOrEmpty(payload))
}

func (a *Agent) ScheduleEvery(ctx context.Context, schedule string, callback string, payload map[string]any) (any, error) {
	return a.Call(ctx, "schedule_every", schedule, callback, payloadOrEmpty(payload))
}

func (a *Agent) GetSchedules(ctx context.Context) (any, error) {
	return a.Call(ctx, "get_schedules")
}

func (a *Agent) CancelSchedule(ctx context.Context, scheduleID string) (any, error) {
	return a.Call(ctx, "cancel_schedule", scheduleID)
}

func (a *Agent) Queue(ctx context.Context, callback string, payload map[string]any) (any, error) {
	return a.Call(ctx, "queue", callback, payloadOrEmpty(payload))
}

func (a *Agent) Dequeue(ctx context.Context) (any, error) {
	return a.Call(ctx, "dequeue")
}

func (a *Agent) DequeueAll(ctx context.Context) (any, error) {
	return a.Call(ctx, "dequeue_all")
}

func (a *Agent) GetQueue(ctx context.Context) (any, error) {
	return a.Call(ctx, "get_queue")
}

func (a *Agent) Broadcast(ctx context.Context, message any) (any, error) {
	return a.Call(ctx, "broadcast", message)
}

func (a *Agent) RunWorkflow(ctx context.Context, workflow string, payload map[string]any) (any, error) {
	return a.Call(ctx, "run_workflow", workflow, payloadOrEmpty(payload))
}

func (a *Agent) WaitForApproval(ctx context.Context, key string, payload map[string]any) (any, error) {
	return a.Call(ctx, "wait_for_approval", key, payloadOrEmpty(payload))
}

func (a *Agent) AddMcpServer(ctx context.Context, name string, config map[string]any) (any, error) {
	return a.Call(ctx, "add_mcp_server", name, payloadOrEmpty(config))
}

func (a *Agent) RemoveMcpServer(ctx context.Context, name string) (any, error) {
	return a.Call(ctx, "remove_mcp_server", name)
}

func (a *Agent) GetMcpServers(ctx context.Context) (any, error) {
	return a.Call(ctx, "get_mcp_servers")
}

func (a *Agent) ReplyToEmail(ctx context.Context, message any) (any, error) {
	return a.Call(ctx, "reply_to_email", message)
}

// ------------------------------------------------------------------
// Lifecycle hooks
// ------------------------------------------------------------------

func (a *Agent) OnRequest(ctx context.Context, request any) (any, error) {
	return a.Call(ctx, "on_request", request)
}

func (a *Agent) OnConnect(ctx context.Context, connection any, connCtx any) (any, error) {
	return a.Call(ctx, "on_connect", connection, connCtx)
}

func (a *Agent) OnMessage(ctx context.Context, connection any, message any) (any, error) {
	return a.Call(ctx, "on_message", connection, message)
}

func (a *Agent) OnError(ctx context.Context, connection any, failure any) (any, error) {
	return a.Call(ctx, "on_error", connection, failure)
}

func (a *Agent) OnClose(ctx context.Context, connection any, code int, reason string, wasClean bool) (any, error) {
	return a.Call(ctx, "on_close", connection, code, reason, wasClean)
}

func (a *Agent) OnEmail(ctx context.Context, email any) (any, error) {
	return a.Call(ctx, "on_email", email)
}
