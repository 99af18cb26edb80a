package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/jsvm"
	"github.com/viant/agentbridge/mcp/config"
	"github.com/viant/jsonrpc"
	transport "github.com/viant/jsonrpc/transport"
	mcp "github.com/viant/mcp"
	protocolclient "github.com/viant/mcp-protocol/client"
	mcpLogger "github.com/viant/mcp-protocol/logger"
	mcpschema "github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
	mcpclient "github.com/viant/mcp/client"
)

func echoHandler(_ context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	msg, _ := req.Params.Arguments["message"].(string)
	return &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{{Type: "text", Text: msg}}}, nil
}

func newDocsClient(t *testing.T) mcpclient.Interface {
	t.Helper()
	newImpl := func(ctx context.Context, notifier transport.Notifier, l mcpLogger.Logger, cli protocolclient.Operations) (protoserver.Handler, error) {
		impl := protoserver.NewDefaultHandler(notifier, l, cli)
		inputSchema := mcpschema.ToolInputSchema{
			Type:       "object",
			Properties: map[string]map[string]interface{}{"message": {"type": "string"}},
			Required:   []string{"message"},
		}
		impl.RegisterToolWithSchema("echo", "echo message back", inputSchema, nil, echoHandler)
		return impl, nil
	}
	srv, err := mcp.NewServer(newImpl, nil)
	require.NoError(t, err)
	return initializedClient(t, srv.AsClient(context.Background()))
}

// initializedClient runs the MCP handshake on an in-process client.
func initializedClient(t *testing.T, cli mcpclient.Interface) mcpclient.Interface {
	t.Helper()
	_, err := cli.Initialize(context.Background())
	require.NoError(t, err)
	return cli
}

func TestService_Remote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	require.NoError(t, svc.AddRemoteClient(ctx, "docs", newDocsClient(t)))

	err := svc.AddRemoteClient(ctx, "docs", newDocsClient(t))
	assert.True(t, errors.Is(err, bridge.ErrDuplicateName))

	assert.Equal(t, []string{"docs"}, svc.RemoteNames())
	assert.Contains(t, svc.ToolNames(), "docs-echo")

	out, err := svc.CallTool(ctx, "docs-echo", map[string]interface{}{"message": "hi"})
	require.NoError(t, err)
	assert.EqualValues(t, "hi", out)

	docs, err := svc.Remote("docs")
	require.NoError(t, err)
	out, err = docs.Call(ctx, "echo", map[string]any{"message": "proxied"})
	require.NoError(t, err)
	assert.EqualValues(t, "proxied", out)

	_, err = svc.Remote("billing")
	assert.True(t, errors.Is(err, bridge.ErrNotFound))
}

func TestService_MCPServer(t *testing.T) {
	ctx := context.Background()
	svc, desk := newService(t)
	srv, err := svc.MCPServer(ctx, "agentbridge", "test")
	require.NoError(t, err)

	request, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": "helpdesk-open", "arguments": map[string]any{"subject": "laptop"}},
	})
	require.NoError(t, err)
	data, err := json.Marshal(srv.HandleMessage(ctx, request))
	require.NoError(t, err)
	assert.Contains(t, string(data), "T-laptop")
	assert.Equal(t, []string{"laptop"}, desk.opened)
}

func TestService_Handler(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	srv, err := mcp.NewServer(svc.NewHandler, nil)
	require.NoError(t, err)
	cli := initializedClient(t, srv.AsClient(ctx))

	listed, err := cli.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, aTool := range listed.Tools {
		names = append(names, aTool.Name)
	}
	assert.Contains(t, names, "helpdesk-assign")
	assert.Contains(t, names, "helpdesk-open")

	res, err := cli.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      "helpdesk-assign",
		Arguments: mcpschema.CallToolRequestParamsArguments{"ticket_id": "T-9", "owner": "ops"},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "T-9@ops", res.Content[0].Text)

	res, err = cli.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      "helpdesk-open",
		Arguments: mcpschema.CallToolRequestParamsArguments{},
	})
	require.NoError(t, err)
	require.NotNil(t, res.IsError)
	assert.True(t, *res.IsError)
}

func TestService_Runtime(t *testing.T) {
	ctx := context.Background()
	rt := jsvm.New(jsvm.WithGlobal("__AGENTS"))
	svc, err := New(ctx,
		WithRuntime(rt),
		WithConfig(&config.Config{
			Builtins: []string{"agent"},
			Runtime: &config.Runtime{
				Global: "__AGENTS",
				Policy: "strict",
				Agent:  &bridge.AgentOptions{Name: "support", InitialState: map[string]any{"open": 1}},
			},
		}))
	require.NoError(t, err)
	defer svc.Shutdown(ctx)

	assert.Same(t, rt, svc.JSRuntime())
	assert.Equal(t, bridge.Strict, svc.Agent().Policy())
	state, ok := svc.Agent().State().(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, state["open"])

	_, err = svc.Agent().Call(ctx, "approve", "k")
	assert.True(t, errors.Is(err, bridge.ErrNotFound))

	agent, err := svc.SDK().GetAgentByName(ctx, "support")
	require.NoError(t, err)
	assert.NotNil(t, agent)
}
