package mcp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/mcp/action"
	"github.com/viant/agentbridge/mcp/tool"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/fluxor/runtime/execution"
)

// CallTool runs a tool in-process: the action executor is invoked directly,
// without scheduling a workflow execution.
func (s *Service) CallTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	toolName := tool.Name(tool.Canonical(name))
	service, sig, err := s.lookupMethod(toolName)
	if err != nil {
		return nil, err
	}
	exec, err := service.Method(sig.Name)
	if err != nil {
		return nil, err
	}
	var input interface{}
	if sig.Input != nil {
		input = reflect.New(elem(sig.Input)).Interface()
		if len(args) > 0 {
			if err := conv.Convert(args, input); err != nil {
				return nil, fmt.Errorf("%v: invalid arguments: %w", toolName, err)
			}
		}
	}
	output := newOutput(service, sig)
	s.logger.Debug("tool call", "tool", toolName.String())
	if err := exec(ctx, input, output); err != nil {
		return nil, err
	}
	return outputValue(output), nil
}

// ExecuteTool schedules the tool as an ad-hoc fluxor execution and waits up to
// timeout for it to finish.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}, timeout time.Duration) (interface{}, error) {
	toolName := tool.Name(tool.Canonical(name))
	if _, _, err := s.lookupMethod(toolName); err != nil {
		return nil, err
	}
	exec, err := execution.NewAtHocExecution(toolName.Service(), toolName.Method(), args)
	if err != nil {
		return nil, err
	}
	waitFn, err := s.Workflow.Runtime.ScheduleExecution(ctx, exec)
	if err != nil {
		return nil, err
	}
	anExec, err := waitFn(timeout)
	if err != nil {
		return nil, err
	}
	if anExec.Error != "" {
		return nil, errors.New(anExec.Error)
	}
	if output, ok := anExec.Output.(*action.Output); ok {
		return output.Result, nil
	}
	return anExec.Output, nil
}

func elem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// newOutput picks the output holder: capability actions and remote tools
// fill an untyped value, fluxor built-ins need their declared type.
func newOutput(service types.Service, sig *types.Signature) interface{} {
	switch service.(type) {
	case *action.Service, *tool.Proxy:
		return new(interface{})
	}
	if sig.Output == nil {
		return nil
	}
	return reflect.New(elem(sig.Output)).Interface()
}

func outputValue(output interface{}) interface{} {
	switch actual := output.(type) {
	case nil:
		return nil
	case *interface{}:
		return *actual
	}
	return reflect.ValueOf(output).Elem().Interface()
}
