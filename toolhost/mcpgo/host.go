// Package mcpgo registers capability tools on a mark3labs MCP server.
package mcpgo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/toolhost"
)

// Host implements toolhost.Host over server.MCPServer.
type Host struct {
	server       *server.MCPServer
	mu           sync.Mutex
	registered   map[string]bool
	descriptions map[string]string
}

// New wraps srv.
func New(srv *server.MCPServer) *Host {
	return &Host{server: srv, registered: map[string]bool{}, descriptions: map[string]string{}}
}

// Server returns the wrapped server.
func (h *Host) Server() *server.MCPServer { return h.server }

func (h *Host) DescribeTool(name, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.descriptions[name] = description
}

func (h *Host) Tool(ctx context.Context, name string, handler toolhost.Handler) error {
	return h.ToolWithSchema(ctx, name, nil, handler)
}

func (h *Host) ToolWithSchema(ctx context.Context, name string, schema any, handler toolhost.Handler) error {
	record, err := toolhost.InputSchema(schema)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	h.mu.Lock()
	if h.registered[name] {
		h.mu.Unlock()
		return &bridge.DuplicateNameError{Kind: "tool", Name: name, First: name, Second: name}
	}
	h.registered[name] = true
	description := h.descriptions[name]
	h.mu.Unlock()
	h.server.AddTool(mcp.NewToolWithRawSchema(name, description, raw), toolHandler(handler))
	return nil
}

func toolHandler(handler toolhost.Handler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := handler(ctx, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(toolhost.Text(value)), nil
	}
}
