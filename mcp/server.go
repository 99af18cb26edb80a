package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/toolhost/mcpgo"
	"github.com/viant/jsonrpc/transport"
	protocolclient "github.com/viant/mcp-protocol/client"
	"github.com/viant/mcp-protocol/logger"
	serverproto "github.com/viant/mcp-protocol/server"
)

// NewHandler returns an MCP server handler publishing the exposed tools.
// Tools are rebuilt from the action registry on each connection so remotes
// added later are included.
func (s *Service) NewHandler(ctx context.Context, notifier transport.Notifier, l logger.Logger, cli protocolclient.Operations) (serverproto.Handler, error) {
	impl := serverproto.NewDefaultHandler(notifier, l, cli)
	for _, entry := range s.ExposedTools() {
		impl.Registry.RegisterTool(entry)
	}
	return impl, nil
}

// MCPServer returns a mark3labs MCP server publishing the exposed tools,
// used for the stdio transport.
func (s *Service) MCPServer(ctx context.Context, name, version string) (*server.MCPServer, error) {
	host := mcpgo.New(server.NewMCPServer(name, version, server.WithToolCapabilities(false)))
	for _, entry := range s.ExposedTools() {
		toolName := entry.Metadata.Name
		if description := conv.Dereference(entry.Metadata.Description); description != "" {
			host.DescribeTool(toolName, description)
		}
		schema, err := conv.ToMap(entry.Metadata.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %v schema: %w", toolName, err)
		}
		handler := func(ctx context.Context, args map[string]any) (any, error) {
			return s.CallTool(ctx, toolName, args)
		}
		if err := host.ToolWithSchema(ctx, toolName, schema, handler); err != nil {
			return nil, err
		}
	}
	return host.Server(), nil
}
