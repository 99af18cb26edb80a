package toolhost

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/capability"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/internal/logging"
)

// Registrar registers discovered tools with a Host.
type Registrar struct {
	marshaller *bridge.Marshaller
	logger     *slog.Logger
	namer      func(exposed string) string
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*Registrar)

// WithMarshaller sets the marshaller applied to structured schemas and to
// handler results; use the remote runtime's marshaller when the host lives
// there.
func WithMarshaller(marshaller *bridge.Marshaller) RegistrarOption {
	return func(r *Registrar) { r.marshaller = marshaller }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RegistrarOption {
	return func(r *Registrar) { r.logger = logger }
}

// WithNamer maps exposed tool names to registered names.
func WithNamer(namer func(exposed string) string) RegistrarOption {
	return func(r *Registrar) { r.namer = namer }
}

// NewRegistrar creates a registrar.
func NewRegistrar(opts ...RegistrarOption) *Registrar {
	r := &Registrar{}
	for _, opt := range opts {
		opt(r)
	}
	if r.marshaller == nil {
		r.marshaller = bridge.NewMarshaller(nil)
	}
	if r.logger == nil {
		r.logger = logging.For("toolhost")
	}
	if r.namer == nil {
		r.namer = func(exposed string) string { return exposed }
	}
	return r
}

// RegisterAll discovers the tools of instance and registers each with host.
// It returns the registered names in discovery order.
func (r *Registrar) RegisterAll(ctx context.Context, host Host, instance any) ([]string, error) {
	set, err := capability.Tools(instance)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, set.Len())
	for _, binding := range set.Bindings() {
		name := r.namer(binding.Name)
		if describer, ok := host.(Describer); ok && binding.Description != "" {
			describer.DescribeTool(name, binding.Description)
		}
		handler := r.handler(binding)
		if binding.Schema == nil {
			err = host.Tool(ctx, name, handler)
		} else {
			schema := binding.Schema
			if conv.Structured(schema) {
				schema = r.marshaller.ToRemote(schema)
			}
			err = host.ToolWithSchema(ctx, name, schema, handler)
		}
		if err != nil {
			return names, fmt.Errorf("register tool %v: %w", name, err)
		}
		r.logger.Debug("tool registered", "tool", name, "owner", binding.Owner(), "schema", binding.Schema != nil)
		names = append(names, name)
	}
	return names, nil
}

// handler keeps a reference to the bound method so the registered tool calls
// the very method discovered at registration time.
func (r *Registrar) handler(binding *capability.Binding) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		value, err := binding.CallNamed(ctx, args).Await(ctx)
		if err != nil {
			r.logger.Debug("tool failed", "tool", binding.Name, "error", err)
			return nil, err
		}
		return r.marshaller.ToRemote(value), nil
	}
}
