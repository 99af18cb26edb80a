package mcp

import (
	"context"
	"sort"
	"strings"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/capability"
	"github.com/viant/agentbridge/mcp/action"
	"github.com/viant/fluxor/model/types"

	nop "github.com/viant/fluxor/service/action/nop"
	printer "github.com/viant/fluxor/service/action/printer"
	exec "github.com/viant/fluxor/service/action/system/exec"
	secret "github.com/viant/fluxor/service/action/system/secret"
	storage "github.com/viant/fluxor/service/action/system/storage"
)

// AgentTools exposes the default agent as tools of the "agent" provider.
type AgentTools struct {
	agent *bridge.Agent
}

func (a *AgentTools) GetState() any { return a.agent.State() }

func (a *AgentTools) SetState(ctx context.Context, state map[string]any) (any, error) {
	return a.agent.SetState(ctx, state)
}

func (a *AgentTools) Call(ctx context.Context, method string, args []any) (any, error) {
	return a.agent.Call(ctx, method, args...)
}

func init() {
	capability.MustDeclare[AgentTools](
		capability.Tool("GetState", capability.WithDescription("returns the default agent state")),
		capability.Tool("SetState",
			capability.WithParams("state"),
			capability.WithDescription("merges a patch into the default agent state")),
		capability.Tool("Call",
			capability.WithParams("method", "args"),
			capability.WithDescription("calls a method of the default agent with positional args")),
	)
}

// builtinFactories lists the providers selectable with the builtins patterns.
// Keys match the service names so pattern matching is intuitive.
var builtinFactories = map[string]func(s *Service) (types.Service, error){
	"agent": func(s *Service) (types.Service, error) {
		return action.New("agent", &AgentTools{agent: s.agent})
	},
	"nop":            func(*Service) (types.Service, error) { return nop.New(), nil },
	"printer":        func(*Service) (types.Service, error) { return printer.New(), nil },
	"system/exec":    func(*Service) (types.Service, error) { return exec.New(), nil },
	"system/storage": func(*Service) (types.Service, error) { return storage.New(), nil },
	"system/secret":  func(*Service) (types.Service, error) { return secret.New(), nil },
}

// builtinNames converts patterns ("*" for all, a "/" suffixed prefix or an
// exact name) into sorted provider names.
func builtinNames(patterns []string) []string {
	selected := make(map[string]bool)
	for _, p := range patterns {
		isPrefix := strings.HasSuffix(p, "/")
		for name := range builtinFactories {
			if p == "*" || (isPrefix && strings.HasPrefix(name, p)) || (!isPrefix && name == p) {
				selected[name] = true
			}
		}
	}
	ret := make([]string, 0, len(selected))
	for name := range selected {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func (s *Service) resolveBuiltinServices(patterns []string) ([]types.Service, error) {
	names := builtinNames(patterns)
	ret := make([]types.Service, 0, len(names))
	for _, name := range names {
		svc, err := builtinFactories[name](s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, svc)
	}
	return ret, nil
}
