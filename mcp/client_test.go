package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/jsonrpc"
	protoclient "github.com/viant/mcp-protocol/client"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

func TestDefaultClient(t *testing.T) {
	var handler protoclient.Handler = &defaultClient{}
	assert.False(t, handler.Implements(mcpschema.MethodRootsList))

	handler.Init(context.Background(), &mcpschema.ClientCapabilities{
		Roots:       &mcpschema.ClientCapabilitiesRoots{},
		Elicitation: map[string]interface{}{},
	})
	assert.True(t, handler.Implements(mcpschema.MethodRootsList))
	assert.True(t, handler.Implements(mcpschema.MethodElicitationCreate))
	assert.False(t, handler.Implements(mcpschema.MethodSamplingCreateMessage))

	_, rpcErr := handler.ListRoots(context.Background(), &mcpschema.ListRootsRequestParams{})
	if assert.NotNil(t, rpcErr) {
		assert.EqualValues(t, jsonrpc.MethodNotFound, rpcErr.Code)
	}
}
