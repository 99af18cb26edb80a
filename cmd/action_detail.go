package cmd

import (
	"fmt"
	"reflect"

	"github.com/viant/agentbridge/mcp/action"
	"github.com/viant/agentbridge/mcp/tool"
	"github.com/viant/agentbridge/mcp/tool/conversion"
	"github.com/viant/fluxor/model/types"
)

// ActionCmd shows how one fluxor action is bound: the capability behind it,
// whether it is published as a tool and the schema it accepts. The name may
// be written as service/method, service.method or as the tool name.
type ActionCmd struct {
	Name string `short:"n" long:"name" description:"service/method, service.method or tool name" positional-arg-name:"name" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

type actionInfo struct {
	Service     string      `json:"service"`
	Method      string      `json:"method"`
	Kind        string      `json:"kind"`
	Tool        string      `json:"tool,omitempty"`
	Owner       string      `json:"owner,omitempty"`
	Params      []string    `json:"params,omitempty"`
	Description string      `json:"description,omitempty"`
	Input       string      `json:"input"`
	InputSchema interface{} `json:"inputSchema,omitempty"`
}

func (c *ActionCmd) Execute(_ []string) error {
	name := tool.Name(tool.Canonical(c.Name))
	if name.Method() == "" {
		return fmt.Errorf("invalid action name %q, expected service/method", c.Name)
	}
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	service := svc.WorkflowService().Actions().Lookup(name.Service())
	if service == nil {
		return fmt.Errorf("service %q not found", name.Service())
	}
	sig := service.Methods().Lookup(name.Method())
	if sig == nil {
		return fmt.Errorf("method %q not found in service %q", name.Method(), name.Service())
	}

	info := describeAction(service, sig, name)
	if c.JSON {
		return printJSON(info)
	}
	fmt.Printf("Action : %s/%s (%s)\n", info.Service, info.Method, info.Kind)
	if info.Owner != "" {
		fmt.Printf("Owner  : %s %v\n", info.Owner, info.Params)
	}
	if info.Tool != "" {
		fmt.Printf("Tool   : %s\n", info.Tool)
	} else {
		fmt.Printf("Tool   : - (callable, reachable from workflows only)\n")
	}
	fmt.Printf("Desc   : %s\n", info.Description)
	fmt.Printf("Input  : %s\n", info.Input)
	if info.InputSchema != nil {
		fmt.Println("InputSchema:")
		return printJSON(info.InputSchema)
	}
	return nil
}

func describeAction(service types.Service, sig *types.Signature, name tool.Name) actionInfo {
	info := actionInfo{
		Service:     service.Name(),
		Method:      sig.Name,
		Kind:        "remote",
		Description: sig.Description,
		Input:       typeName(sig.Input),
	}
	if capabilities, ok := service.(*action.Service); ok {
		if binding, ok := capabilities.Binding(sig.Name); ok {
			info.Kind = binding.Kind.String()
			info.Owner = binding.Owner()
			info.Params = binding.Params
		}
	}
	if !action.Hidden(service, sig) {
		info.Tool = name.String()
		if schema, err := conversion.BuildSchema(sig); err == nil {
			info.InputSchema = schema.InputSchema
		}
	}
	return info
}

// typeName prints named types as-is and anonymous structs by field count;
// schema-generated inputs are anonymous.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<none>"
	}
	prefix := ""
	if t.Kind() == reflect.Pointer {
		prefix, t = "*", t.Elem()
	}
	if t.Name() == "" && t.Kind() == reflect.Struct {
		return fmt.Sprintf("%sstruct{%d fields}", prefix, t.NumField())
	}
	return prefix + t.String()
}
