package toolhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/conv"
)

// RemoteHost registers tools with a remote tool host exposing
// tool(name, handler), tool(name, schema, handler) and
// tool(name, description, schema, handler).
type RemoteHost struct {
	proxy        *bridge.Proxy
	mu           sync.Mutex
	descriptions map[string]string
}

// NewRemoteHost wraps a proxy over the remote tool host.
func NewRemoteHost(proxy *bridge.Proxy) *RemoteHost {
	return &RemoteHost{proxy: proxy, descriptions: map[string]string{}}
}

// DescribeTool implements Describer.
func (h *RemoteHost) DescribeTool(name, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.descriptions[name] = description
}

// Tool implements Host.
func (h *RemoteHost) Tool(ctx context.Context, name string, handler Handler) error {
	if description, ok := h.description(name); ok {
		return h.register(ctx, name, description, nil, callback(handler))
	}
	return h.register(ctx, name, callback(handler))
}

// ToolWithSchema implements Host. The schema is expected in remote form.
func (h *RemoteHost) ToolWithSchema(ctx context.Context, name string, schema any, handler Handler) error {
	if description, ok := h.description(name); ok {
		return h.register(ctx, name, description, schema, callback(handler))
	}
	return h.register(ctx, name, schema, callback(handler))
}

func (h *RemoteHost) register(ctx context.Context, name string, args ...any) error {
	if _, err := h.proxy.Invoke(ctx, "tool", append([]any{name}, args...)...); err != nil {
		return fmt.Errorf("remote tool host: %w", err)
	}
	return nil
}

func (h *RemoteHost) description(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	description, ok := h.descriptions[name]
	return description, ok
}

// callback adapts a Handler to the single-record calling convention of
// remote tool hosts.
func callback(handler Handler) bridge.Callback {
	return func(ctx context.Context, args ...any) (any, error) {
		record := map[string]any{}
		if len(args) > 0 && args[0] != nil {
			switch actual := args[0].(type) {
			case map[string]any:
				record = actual
			default:
				converted, err := conv.ToMap(actual)
				if err != nil {
					return nil, fmt.Errorf("tool arguments: %w", err)
				}
				record = converted
			}
		}
		return handler(ctx, record)
	}
}
