package bridge

import (
	"context"
	"fmt"
)

// SDK wraps the global object a remote runtime publishes for agent
// construction and routing.
type SDK struct {
	handle Handle
	opts   []Option
	proxy  *Proxy
}

// NewSDK wraps the SDK handle. opts apply to the SDK calls and to every proxy
// the SDK creates.
func NewSDK(handle Handle, opts ...Option) (*SDK, error) {
	if handle == nil {
		return nil, fmt.Errorf("agents sdk: %w", ErrBridgeUnavailable)
	}
	return &SDK{handle: handle, opts: opts, proxy: New(handle, opts...)}, nil
}

// Raw returns the SDK handle.
func (s *SDK) Raw() Handle { return s.handle }

func (s *SDK) factory(name string) Function {
	fn, ok := s.handle.Method(name)
	if !ok {
		return nil
	}
	return fn
}

// call resolves an SDK function by name, translating snake_case names, and
// forwards positional arguments. SDK functions are not subject to the agent
// allow-list.
func (s *SDK) call(ctx context.Context, method string, args ...any) (any, error) {
	remote := remoteName(method)
	fn, ok := s.handle.Method(remote)
	if !ok {
		return nil, NewNotFound("sdk function", method)
	}
	remoteArgs := make([]any, len(args))
	for i, arg := range args {
		remoteArgs[i] = s.proxy.marshaller.ToRemote(arg)
	}
	value, err := fn(ctx, remoteArgs...).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", remote, err)
	}
	return value, nil
}

// CreateAgent calls createAgent({name, initialState?, props?}).
func (s *SDK) CreateAgent(ctx context.Context, options AgentOptions) (*Agent, error) {
	fn := s.factory("createAgent")
	if fn == nil {
		return nil, NewNotFound("sdk function", "createAgent")
	}
	return CreateAgent(ctx, fn, options, s.opts...)
}

// CreateMcpAgent calls createMcpAgent({state, env?, ctx?}).
func (s *SDK) CreateMcpAgent(ctx context.Context, options McpAgentOptions) (*Proxy, error) {
	fn := s.factory("createMcpAgent")
	if fn == nil {
		return nil, NewNotFound("sdk function", "createMcpAgent")
	}
	return Create(ctx, fn, options, s.opts...)
}

// CreateAgentWorkflow calls createAgentWorkflow(init).
func (s *SDK) CreateAgentWorkflow(ctx context.Context, init Params) (*Proxy, error) {
	fn := s.factory("createAgentWorkflow")
	if fn == nil {
		return nil, NewNotFound("sdk function", "createAgentWorkflow")
	}
	return Create(ctx, fn, init, s.opts...)
}

// LoadAgent calls a named global factory and wraps the result as an Agent.
func (s *SDK) LoadAgent(ctx context.Context, factory string, args ...any) (*Agent, error) {
	value, err := s.call(ctx, factory, args...)
	if err != nil {
		return nil, err
	}
	return s.wrapAgent(factory, value)
}

func (s *SDK) CreateMcpHandler(ctx context.Context, args ...any) (any, error) {
	return s.call(ctx, "create_mcp_handler", args...)
}

func (s *SDK) RouteAgentRequest(ctx context.Context, args ...any) (any, error) {
	return s.call(ctx, "route_agent_request", args...)
}

// RouteAgentRequests is an alias of RouteAgentRequest.
func (s *SDK) RouteAgentRequests(ctx context.Context, args ...any) (any, error) {
	return s.RouteAgentRequest(ctx, args...)
}

func (s *SDK) RouteAgentEmail(ctx context.Context, args ...any) (any, error) {
	return s.call(ctx, "route_agent_email", args...)
}

func (s *SDK) CreateAddressBasedEmailResolver(ctx context.Context, args ...any) (any, error) {
	return s.call(ctx, "create_address_based_email_resolver", args...)
}

// GetAgentByName looks an agent up by name and wraps it.
func (s *SDK) GetAgentByName(ctx context.Context, args ...any) (*Agent, error) {
	value, err := s.call(ctx, "get_agent_by_name", args...)
	if err != nil {
		return nil, err
	}
	return s.wrapAgent("getAgentByName", value)
}

// GetAgentByID looks an agent up by id (remote getAgent) and wraps it.
func (s *SDK) GetAgentByID(ctx context.Context, args ...any) (*Agent, error) {
	value, err := s.call(ctx, "get_agent", args...)
	if err != nil {
		return nil, err
	}
	return s.wrapAgent("getAgent", value)
}

func (s *SDK) wrapAgent(source string, value any) (*Agent, error) {
	handle, ok := value.(Handle)
	if !ok {
		if value == nil {
			return nil, NewNotFound("agent", source)
		}
		return nil, fmt.Errorf("%s returned %T, expected a remote handle", source, value)
	}
	return NewAgent(handle, s.opts...), nil
}
