// Package mcptool collects capability tools as viant mcp-protocol tool entries
// so they can be served by any serverproto handler.
package mcptool

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/mcp/tool/conversion"
	"github.com/viant/agentbridge/toolhost"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Host implements toolhost.Host over serverproto.ToolEntry values.
type Host struct {
	mu           sync.RWMutex
	entries      map[string]*serverproto.ToolEntry
	order        []string
	descriptions map[string]string
}

// New creates an empty host.
func New() *Host {
	return &Host{entries: map[string]*serverproto.ToolEntry{}, descriptions: map[string]string{}}
}

// DescribeTool records the description used by the next registration of name.
func (h *Host) DescribeTool(name, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.descriptions[name] = description
}

// Tool registers a tool that accepts any arguments record.
func (h *Host) Tool(ctx context.Context, name string, handler toolhost.Handler) error {
	return h.ToolWithSchema(ctx, name, nil, handler)
}

// ToolWithSchema registers a tool with a declared input schema.
func (h *Host) ToolWithSchema(ctx context.Context, name string, schema any, handler toolhost.Handler) error {
	record, err := toolhost.InputSchema(schema)
	if err != nil {
		return err
	}
	inputSchema, err := conversion.InputSchema(record)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.entries[name]; ok {
		return &bridge.DuplicateNameError{Kind: "tool", Name: name, First: name, Second: name}
	}
	metadata := mcpschema.Tool{Name: name, InputSchema: inputSchema}
	if description, ok := h.descriptions[name]; ok {
		metadata.Description = conv.Pointer(description)
	}
	h.entries[name] = &serverproto.ToolEntry{Metadata: metadata, Handler: entryHandler(handler)}
	h.order = append(h.order, name)
	return nil
}

// Lookup returns the entry registered under name.
func (h *Host) Lookup(name string) (*serverproto.ToolEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.entries[name]
	return entry, ok
}

// Names returns the registered tool names, sorted.
func (h *Host) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ret := append([]string(nil), h.order...)
	sort.Strings(ret)
	return ret
}

// Entries returns the entries in registration order.
func (h *Host) Entries() serverproto.Tools {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ret := make(serverproto.Tools, 0, len(h.order))
	for _, name := range h.order {
		ret = append(ret, h.entries[name])
	}
	return ret
}

// Install hands every entry to register, typically the Registry.RegisterTool
// of a serverproto handler.
func (h *Host) Install(register func(entry *serverproto.ToolEntry)) {
	for _, entry := range h.Entries() {
		register(entry)
	}
}

func entryHandler(handler toolhost.Handler) func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		args := map[string]any{}
		for k, v := range request.Params.Arguments {
			args[k] = v
		}
		return Result(handler(ctx, args)), nil
	}
}

// Result converts a handler outcome into a tool result. Errors are reported
// in the result with IsError set rather than as protocol errors.
func Result(value any, err error) *mcpschema.CallToolResult {
	res := &mcpschema.CallToolResult{}
	if err != nil {
		res.IsError = conv.Pointer(true)
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{Type: "text", Text: err.Error()})
		return res
	}
	res.Content = append(res.Content, mcpschema.CallToolResultContentElem{Type: "text", Text: toolhost.Text(value)})
	return res
}
