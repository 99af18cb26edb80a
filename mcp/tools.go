package mcp

import (
	"context"
	"sort"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/mcp/action"
	"github.com/viant/agentbridge/mcp/matcher"
	"github.com/viant/agentbridge/mcp/tool"
	"github.com/viant/agentbridge/mcp/tool/conversion"
	"github.com/viant/agentbridge/toolhost/mcptool"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Tools returns a tool entry for every public action method, sorted by name.
// Internal signatures (callables) are not tools.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	actions := s.Workflow.Service.Actions()
	for _, name := range actions.Services() {
		service := actions.Lookup(name)
		if service == nil {
			continue
		}
		for _, method := range service.Methods() {
			if action.Hidden(service, &method) {
				continue
			}
			toolName := tool.NewName(name, method.Name)
			aTool, err := s.LookupTool(toolName.String())
			if err != nil {
				s.logger.Warn("tool skipped", "tool", toolName, "error", err)
				continue
			}
			result = append(result, aTool)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Metadata.Name < result[j].Metadata.Name })
	return result
}

// ExposedTools returns the tools selected by the expose patterns, or every
// tool when none are configured.
func (s *Service) ExposedTools() serverproto.Tools {
	if len(s.config.Expose) == 0 {
		return s.Tools()
	}
	var result serverproto.Tools
	for _, entry := range s.Tools() {
		for _, pattern := range s.config.Expose {
			if matcher.MatchTool(pattern, entry.Metadata.Name) {
				result = append(result, entry)
				break
			}
		}
	}
	return result
}

// MatchTools returns the tools matching pattern; see matcher.MatchTool.
func (s *Service) MatchTools(pattern string) serverproto.Tools {
	var result serverproto.Tools
	for _, entry := range s.Tools() {
		if matcher.MatchTool(pattern, entry.Metadata.Name) {
			result = append(result, entry)
		}
	}
	return result
}

// ToolNames returns all tool names, sorted.
func (s *Service) ToolNames() []string {
	tools := s.Tools()
	names := make([]string, len(tools))
	for i, entry := range tools {
		names[i] = entry.Metadata.Name
	}
	return names
}

// ToolMetadata returns the description and input schema of a tool.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	entry, err := s.LookupTool(name)
	if err != nil {
		return "", nil, false
	}
	return conv.Dereference(entry.Metadata.Description), entry.Metadata.InputSchema, true
}

// LookupTool builds the tool entry for a name; "svc/method" and
// "svc.method" spellings are accepted.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	toolName := tool.Name(tool.Canonical(name))
	service, sig, err := s.lookupMethod(toolName)
	if err != nil {
		return nil, err
	}
	meta := &types.Signature{
		Name:        toolName.String(),
		Description: sig.Description,
		Input:       sig.Input,
		Output:      sig.Output,
	}
	entry := &serverproto.ToolEntry{}
	if entry.Metadata, err = conversion.BuildSchema(meta); err != nil {
		return nil, err
	}
	if _, ok := service.(*tool.Proxy); ok {
		// remote tools declare no output schema we can rely on
		entry.Metadata.OutputSchema = nil
	}
	entry.Handler = func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		args := map[string]interface{}{}
		for k, v := range request.Params.Arguments {
			args[k] = v
		}
		return mcptool.Result(s.CallTool(ctx, toolName.String(), args)), nil
	}
	return entry, nil
}

func (s *Service) lookupMethod(toolName tool.Name) (types.Service, *types.Signature, error) {
	actions := s.Workflow.Service.Actions()
	service := actions.Lookup(toolName.Service())
	if service == nil {
		return nil, nil, &bridge.NotFoundError{Kind: "tool", Name: toolName.String(), Available: s.serviceNames()}
	}
	for i, method := range service.Methods() {
		if method.Name != toolName.Method() {
			continue
		}
		sig := &service.Methods()[i]
		if action.Hidden(service, sig) {
			break
		}
		return service, sig, nil
	}
	return nil, nil, &bridge.NotFoundError{Kind: "tool", Name: toolName.String(), Available: methodNames(service)}
}

func (s *Service) serviceNames() []string {
	names := append([]string(nil), s.Workflow.Service.Actions().Services()...)
	sort.Strings(names)
	return names
}

func methodNames(service types.Service) []string {
	var names []string
	for _, method := range service.Methods() {
		if !action.Hidden(service, &method) {
			names = append(names, method.Name)
		}
	}
	sort.Strings(names)
	return names
}
