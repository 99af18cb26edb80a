package mcp

import (
	"context"
	"fmt"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/jsvm"
	"github.com/viant/agentbridge/internal/logging"
	"github.com/viant/agentbridge/mcp/action"
	"github.com/viant/agentbridge/mcp/config"
	"github.com/viant/fluxor"
	"github.com/viant/fluxor/model/types"
)

// DefaultAgent is the agent name used when the configuration names none.
const DefaultAgent = "default"

// init orchestrates the bootstrap steps once all options have been applied.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.initRuntime(ctx); err != nil {
		return fmt.Errorf("init runtime: %w", err)
	}
	if err := s.initAgent(ctx); err != nil {
		return fmt.Errorf("init agent: %w", err)
	}
	if err := s.initWorkflowService(); err != nil {
		return err
	}
	// Remote tools become dynamic fluxor services consumed like native actions.
	if err := s.registerRemotes(ctx); err != nil {
		return fmt.Errorf("register remotes: %w", err)
	}
	return s.Start(ctx)
}

func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if len(s.config.Builtins) == 0 {
		s.config.Builtins = append(s.config.Builtins, "*")
	}
	s.defaultLogger()
}

// agentOptions returns the proxy options applied to every agent proxy.
func (s *Service) agentOptions() []bridge.Option {
	policy, allow := s.config.Policy()
	return []bridge.Option{bridge.WithPolicy(policy, allow...), bridge.WithLogger(logging.For("proxy"))}
}

// initRuntime loads the configured scripts, or the reference SDK when there
// are none, and binds the agents SDK.
func (s *Service) initRuntime(ctx context.Context) error {
	if s.runtime == nil {
		s.runtime = jsvm.New(jsvm.WithGlobal(s.config.Global()), jsvm.WithLogger(logging.For("jsvm")))
	}
	scripts := s.config.Scripts()
	for _, URL := range scripts {
		if err := s.runtime.LoadURL(ctx, URL); err != nil {
			return err
		}
	}
	if len(scripts) == 0 {
		if _, ok := s.runtime.Global(s.runtime.GlobalName()); !ok {
			if err := s.runtime.LoadSDK(); err != nil {
				return err
			}
		}
	}
	sdk, err := s.runtime.SDK(s.agentOptions()...)
	if err != nil {
		return err
	}
	s.sdk = sdk
	return nil
}

func (s *Service) initAgent(ctx context.Context) error {
	options := bridge.AgentOptions{Name: DefaultAgent}
	if configured := s.config.Agent(); configured != nil {
		options = *configured
	}
	agent, err := s.sdk.CreateAgent(ctx, options)
	if err != nil {
		return err
	}
	s.agent = agent
	s.logger.Info("agent created", "agent", options.Name)
	return nil
}

// initWorkflowService assembles the fluxor options and instantiates the
// engine. Capability instances and built-in providers become extension
// services.
func (s *Service) initWorkflowService() error {
	opts := append([]fluxor.Option{}, s.config.Options...)
	if len(s.config.ExtensionTypes) > 0 {
		opts = append(opts, fluxor.WithExtensionTypes(s.config.ExtensionTypes...))
	}
	if len(s.config.Extensions) > 0 {
		opts = append(opts, fluxor.WithExtensionServices(s.config.Extensions...))
	}

	var extensions []types.Service
	builtins, err := s.resolveBuiltinServices(s.config.Builtins)
	if err != nil {
		return err
	}
	extensions = append(extensions, builtins...)
	for _, item := range s.instances {
		if err := validServiceName(item.name); err != nil {
			return err
		}
		svc, err := action.New(item.name, item.value)
		if err != nil {
			return err
		}
		s.logger.Info("instance registered", "service", item.name, "methods", len(svc.Methods()))
		extensions = append(extensions, svc)
	}
	s.Workflow.Extensions = append(extensions, s.Workflow.Extensions...)
	if len(s.Workflow.Extensions) > 0 {
		opts = append(opts, fluxor.WithExtensionServices(s.Workflow.Extensions...))
	}
	opts = append(opts, s.Workflow.Options...)

	s.Workflow.Service = fluxor.New(opts...)
	s.Workflow.Runtime = s.Workflow.Service.Runtime()
	return nil
}
