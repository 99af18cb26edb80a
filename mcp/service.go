package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/jsvm"
	"github.com/viant/agentbridge/internal/logging"
	"github.com/viant/agentbridge/internal/syncmap"
	"github.com/viant/agentbridge/mcp/config"
	"github.com/viant/agentbridge/mcp/tool"
	"github.com/viant/fluxor"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/x"

	protocolclient "github.com/viant/mcp-protocol/client"
)

// Service bundles configuration, the JS runtime with its default agent, the
// fluxor workflow engine and the remote endpoints. Bootstrap lives in
// bootstrap.go.
type Service struct {
	Workflow
	started int32
	client  protocolclient.Handler
	config  *config.Config
	logger  *slog.Logger

	runtime   *jsvm.Runtime
	sdk       *bridge.SDK
	agent     *bridge.Agent
	instances []instance
	remotes   *syncmap.Map[string, *remote]
}

type Workflow struct {
	Options        []fluxor.Option
	Runtime        *fluxor.Runtime
	Service        *fluxor.Service
	Extensions     []types.Service
	ExtensionTypes []*x.Type `json:"-"`
}

type instance struct {
	name  string
	value any
}

// remote is a connected MCP endpoint: the fluxor service and the proxy over
// its tools.
type remote struct {
	service *tool.Proxy
	proxy   *bridge.Proxy
}

// WorkflowRuntime returns the underlying fluxor runtime.
func (s *Service) WorkflowRuntime() *fluxor.Runtime { return s.Workflow.Runtime }

// WorkflowService returns the fluxor service exposing all actions.
func (s *Service) WorkflowService() *fluxor.Service { return s.Workflow.Service }

// Config returns the effective configuration. Callers must treat it as
// read-only.
func (s *Service) Config() *config.Config { return s.config }

// JSRuntime returns the JS runtime hosting the agents.
func (s *Service) JSRuntime() *jsvm.Runtime { return s.runtime }

// SDK returns the agents SDK of the JS runtime.
func (s *Service) SDK() *bridge.SDK { return s.sdk }

// Agent returns the default agent.
func (s *Service) Agent() *bridge.Agent { return s.agent }

// Remote returns the proxy over a connected MCP endpoint.
func (s *Service) Remote(name string) (*bridge.Proxy, error) {
	if r, ok := s.remotes.Get(name); ok {
		return r.proxy, nil
	}
	return nil, &bridge.NotFoundError{Kind: "remote", Name: name, Available: s.RemoteNames()}
}

// RemoteNames returns the connected endpoint names, sorted.
func (s *Service) RemoteNames() []string {
	names := s.remotes.Keys()
	sort.Strings(names)
	return names
}

// Instances returns the registered capability instances by service name.
func (s *Service) Instances() map[string]any {
	ret := make(map[string]any, len(s.instances))
	for _, item := range s.instances {
		ret[item.name] = item.value
	}
	return ret
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets the configuration. When omitted a zero value config is
// assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithInstance registers a capability instance as the fluxor service name.
// Its tools are published as "<name>-<tool>".
func WithInstance(name string, value any) Option {
	return func(s *Service) {
		s.instances = append(s.instances, instance{name: name, value: value})
	}
}

// WithRuntime uses rt instead of a runtime built from the configuration.
// Configured scripts are still loaded into it.
func WithRuntime(rt *jsvm.Runtime) Option {
	return func(s *Service) {
		s.runtime = rt
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithWorkflowOptions appends fluxor options used when the workflow engine
// gets instantiated.
func WithWorkflowOptions(opts ...fluxor.Option) Option {
	return func(s *Service) {
		s.Workflow.Options = append(s.Workflow.Options, opts...)
	}
}

// WithExtensions registers custom fluxor services in addition to the
// capability instances.
func WithExtensions(ext ...types.Service) Option {
	return func(s *Service) {
		s.Workflow.Extensions = append(s.Workflow.Extensions, ext...)
	}
}

// WithClient overrides the handler used for outgoing MCP client connections.
func WithClient(impl protocolclient.Handler) Option {
	return func(s *Service) {
		s.client = impl
	}
}

// New constructs and bootstraps a service.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{remotes: syncmap.New[string, *remote]()}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig is New with a configuration followed by other options.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Start launches the fluxor runtime. Subsequent calls are ignored.
func (s *Service) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return nil
	}
	return s.Workflow.Runtime.Start(ctx)
}

// Shutdown terminates the fluxor runtime. Calls after the first have no
// effect.
func (s *Service) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 1, 2) {
		return nil
	}
	return s.Workflow.Runtime.Shutdown(ctx)
}

// validServiceName rejects names that would not survive the tool name round
// trip: "-" separates service and tool, "_" stands for "/".
func validServiceName(name string) error {
	if name == "" {
		return fmt.Errorf("service name was empty")
	}
	if strings.ContainsAny(name, "-_") {
		return fmt.Errorf("service name %q: '-' and '_' are reserved in tool names", name)
	}
	return nil
}

func (s *Service) defaultLogger() *slog.Logger {
	if s.logger == nil {
		s.logger = logging.For("service")
	}
	return s.logger
}
