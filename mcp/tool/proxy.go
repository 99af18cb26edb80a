package tool

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/async"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/mcp/tool/conversion"
	"github.com/viant/fluxor/model/types"
	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"
)

// Proxy fronts one remote MCP endpoint. It is a fluxor service whose methods
// are the endpoint's tools, and a bridge.Handle so the endpoint can be driven
// through a bridge.Proxy like any other remote object.
type Proxy struct {
	name    string
	client  mcpclient.Interface
	methods map[string]*mcpschema.Tool
	sigs    types.Signatures
}

// NewProxy lists the endpoint tools (following pagination) and builds the
// service signatures from their schemas.
func NewProxy(ctx context.Context, name string, cli mcpclient.Interface) (*Proxy, error) {
	tools := make([]mcpschema.Tool, 0)
	var cursor *string
	for {
		res, err := cli.ListTools(ctx, cursor)
		if err != nil {
			return nil, err
		}
		tools = append(tools, res.Tools...)
		if res.NextCursor == nil || *res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}

	methods := make(map[string]*mcpschema.Tool, len(tools))
	sigs := make(types.Signatures, 0, len(tools))
	for i := range tools {
		aTool := &tools[i]
		methods[aTool.Name] = aTool
		sigs = append(sigs, types.Signature{
			Name:        aTool.Name,
			Description: conv.Dereference[string](aTool.Description),
			Input:       inputType(aTool),
			Output:      outputType(aTool),
		})
	}
	return &Proxy{name: name, client: cli, methods: methods, sigs: sigs}, nil
}

// inputType falls back to a generic map when the schema cannot be converted.
func inputType(aTool *mcpschema.Tool) reflect.Type {
	if aTool.InputSchema.Type == "" && len(aTool.InputSchema.Properties) == 0 {
		return reflect.TypeOf(map[string]interface{}{})
	}
	t, err := conversion.TypeFromInputSchema(aTool.InputSchema)
	if err != nil {
		return reflect.TypeOf(map[string]interface{}{})
	}
	return t
}

// outputType is an empty struct when the endpoint declares no output schema.
func outputType(aTool *mcpschema.Tool) reflect.Type {
	if aTool.OutputSchema == nil {
		return reflect.StructOf(nil)
	}
	t, err := conversion.TypeFromOutputSchema(*aTool.OutputSchema)
	if err != nil {
		return reflect.TypeOf(map[string]interface{}{})
	}
	return t
}

func (r *Proxy) Name() string {
	return r.name
}

func (r *Proxy) Methods() types.Signatures {
	return r.sigs
}

// ToolNames returns the endpoint tool names, sorted.
func (r *Proxy) ToolNames() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Method implements types.Service.
func (r *Proxy) Method(name string) (types.Executable, error) {
	aTool, ok := r.methods[name]
	if !ok {
		return nil, types.NewMethodNotFoundError(name)
	}
	return func(ctx context.Context, input, output interface{}) error {
		args, _ := conv.ToMap(input)
		res, err := r.callTool(ctx, aTool.Name, args)
		if err != nil {
			return err
		}
		if output == nil {
			return nil
		}
		switch v := output.(type) {
		case *string:
			*v = text(res)
		case **mcpschema.CallToolResult:
			*v = res
		case *interface{}:
			*v = decode(res)
		default:
			if data, err := json.Marshal(decode(res)); err == nil {
				_ = json.Unmarshal(data, v)
			}
		}
		return nil
	}, nil
}

func (r *Proxy) callTool(ctx context.Context, name string, args map[string]interface{}) (*mcpschema.CallToolResult, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	return r.client.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      name,
		Arguments: mcpschema.CallToolRequestParamsArguments(args),
	})
}

// Get implements bridge.Handle: "name" is the endpoint name and "tools" the
// sorted tool names.
func (r *Proxy) Get(name string) (any, bool) {
	switch name {
	case "name":
		return r.name, true
	case "tools":
		names := r.ToolNames()
		ret := make([]any, len(names))
		for i, n := range names {
			ret[i] = n
		}
		return ret, true
	}
	return nil, false
}

// lookup matches a tool by exact name, then by its snake_case spelling, as
// bridge proxies translate method names to camelCase.
func (r *Proxy) lookup(name string) (*mcpschema.Tool, bool) {
	if aTool, ok := r.methods[name]; ok {
		return aTool, true
	}
	aTool, ok := r.methods[bridge.ToLocal(name)]
	return aTool, ok
}

// Function returns a bridge.Function calling the named tool. The first
// argument, when present, is the arguments record.
func (r *Proxy) Function(name string) (bridge.Function, bool) {
	aTool, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, args ...any) async.Result {
		var record map[string]interface{}
		if len(args) > 0 && args[0] != nil {
			var err error
			if record, err = conv.ToMap(args[0]); err != nil {
				return async.Failed(&bridge.ArgumentError{Name: aTool.Name, Reason: "arguments record", Err: err})
			}
		}
		res, err := r.callTool(ctx, aTool.Name, record)
		if err != nil {
			return async.Failed(err)
		}
		if res.IsError != nil && *res.IsError {
			return async.Failed(&bridge.RejectionError{Reason: text(res)})
		}
		return async.Ready(decode(res))
	}, true
}

// Handle adapts the proxy to bridge.Handle; Method is taken by types.Service.
func (r *Proxy) Handle() bridge.Handle { return handle{r} }

type handle struct{ *Proxy }

func (h handle) Method(name string) (bridge.Function, bool) { return h.Function(name) }

func text(res *mcpschema.CallToolResult) string {
	if len(res.Content) == 1 && res.Content[0].Type == "text" {
		return res.Content[0].Text
	}
	var parts []string
	for _, elem := range res.Content {
		if elem.Text != "" {
			parts = append(parts, elem.Text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	data, _ := json.Marshal(res.Content)
	return string(data)
}

// decode returns structured content for JSON text payloads and plain text
// otherwise.
func decode(res *mcpschema.CallToolResult) any {
	value := text(res)
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var ret any
		if err := json.Unmarshal([]byte(trimmed), &ret); err == nil {
			return ret
		}
	}
	return value
}

var _ bridge.Handle = handle{}
