package mcpgo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/capability"
	"github.com/viant/agentbridge/toolhost"
)

type lookup struct{}

func (l *lookup) FindOrder(ctx context.Context, orderID string) (map[string]any, error) {
	if orderID == "0" {
		return nil, errors.New("order not found")
	}
	return map[string]any{"id": orderID, "status": "shipped"}, nil
}

func init() {
	capability.MustDeclare[lookup](
		capability.Tool("FindOrder",
			capability.WithSchema(map[string]any{"order_id": "string"}),
			capability.WithParams("order_id"),
			capability.WithDescription("find an order")),
	)
}

func call(t *testing.T, srv *server.MCPServer, name string, args map[string]any) string {
	t.Helper()
	request, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	require.NoError(t, err)
	response := srv.HandleMessage(context.Background(), request)
	data, err := json.Marshal(response)
	require.NoError(t, err)
	return string(data)
}

func TestHost(t *testing.T) {
	srv := server.NewMCPServer("test", "0.0.1")
	host := New(srv)
	names, err := toolhost.NewRegistrar().RegisterAll(context.Background(), host, &lookup{})
	require.NoError(t, err)
	assert.Equal(t, []string{"find_order"}, names)

	found := call(t, srv, "find_order", map[string]any{"order_id": "42"})
	assert.Contains(t, found, `shipped`)
	assert.NotContains(t, found, `"isError":true`)

	missing := call(t, srv, "find_order", map[string]any{"order_id": "0"})
	assert.Contains(t, missing, "order not found")
	assert.Contains(t, missing, `"isError":true`)

	err = host.Tool(context.Background(), "find_order", func(ctx context.Context, args map[string]any) (any, error) { return nil, nil })
	assert.True(t, errors.Is(err, bridge.ErrDuplicateName))
}
