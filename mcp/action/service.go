package action

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/capability"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/mcp/tool/conversion"
	"github.com/viant/agentbridge/toolhost"
	"github.com/viant/fluxor/model/types"
)

// Output is the result envelope of every capability action.
type Output struct {
	Result interface{} `json:"result,omitempty"`
}

// Args is the input of callable actions.
type Args struct {
	Args []interface{} `json:"args,omitempty" description:"positional arguments"`
}

var (
	outputType = reflect.TypeOf(&Output{})
	argsType   = reflect.TypeOf(&Args{})
	mapType    = reflect.TypeOf(map[string]interface{}{})
)

// Service adapts a capability instance to types.Service. Tools keep their
// keyword calling shape; callables take an Args record and are flagged
// internal so they stay out of the MCP tool list.
type Service struct {
	name      string
	instance  any
	sigs      types.Signatures
	executors map[string]types.Executable
	internal  map[string]bool
	bindings  map[string]*capability.Binding
}

// New discovers the tools and callables of instance.
func New(name string, instance any) (*Service, error) {
	tools, err := capability.Tools(instance)
	if err != nil {
		return nil, fmt.Errorf("action %v: %w", name, err)
	}
	callables, err := capability.Callables(instance)
	if err != nil {
		return nil, fmt.Errorf("action %v: %w", name, err)
	}
	s := &Service{name: name, instance: instance, executors: map[string]types.Executable{}, internal: map[string]bool{}, bindings: map[string]*capability.Binding{}}
	owners := map[string]string{}
	for _, binding := range tools.Bindings() {
		input, err := toolInput(binding)
		if err != nil {
			return nil, fmt.Errorf("action %v.%v: %w", name, binding.Name, err)
		}
		s.add(binding, input, false, toolExecutor(binding))
		owners[binding.Name] = binding.Owner()
	}
	for _, binding := range callables.Bindings() {
		if owner, ok := owners[binding.Name]; ok {
			return nil, &bridge.DuplicateNameError{Kind: "action", Name: binding.Name, First: owner, Second: binding.Owner()}
		}
		s.add(binding, argsType, true, callableExecutor(binding))
	}
	return s, nil
}

func (s *Service) add(binding *capability.Binding, input reflect.Type, internal bool, exec types.Executable) {
	description := binding.Description
	if description == "" {
		description = fmt.Sprintf("%v %v", binding.Kind, binding.Owner())
	}
	sig := types.Signature{
		Name:        binding.Name,
		Description: description,
		Input:       input,
		Output:      outputType,
	}
	if internal {
		setInternalFlag(&sig)
		s.internal[binding.Name] = true
	}
	s.sigs = append(s.sigs, sig)
	s.executors[binding.Name] = exec
	s.bindings[binding.Name] = binding
}

func (s *Service) Name() string { return s.name }

func (s *Service) Methods() types.Signatures { return s.sigs }

func (s *Service) Method(name string) (types.Executable, error) {
	if exec, ok := s.executors[name]; ok {
		return exec, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

// Internal reports whether the method is a callable rather than a tool.
func (s *Service) Internal(name string) bool { return s.internal[name] }

// Binding returns the capability binding behind a method.
func (s *Service) Binding(name string) (*capability.Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Instance returns the capability instance.
func (s *Service) Instance() any { return s.instance }

// toolInput picks the action input type: the declared schema when present,
// otherwise the record parameter or a struct built from named parameters.
func toolInput(binding *capability.Binding) (reflect.Type, error) {
	if binding.Schema != nil {
		record, err := toolhost.InputSchema(binding.Schema)
		if err != nil {
			return nil, err
		}
		inputSchema, err := conversion.InputSchema(record)
		if err != nil {
			return nil, err
		}
		return conversion.TypeFromInputSchema(inputSchema)
	}
	in := binding.In()
	switch {
	case len(in) == 0:
		return reflect.StructOf(nil), nil
	case len(binding.Params) == len(in):
		fields := make([]reflect.StructField, len(in))
		for i, t := range in {
			fields[i] = reflect.StructField{
				Name: fmt.Sprintf("P%d", i),
				Type: t,
				Tag:  reflect.StructTag(fmt.Sprintf(`json:"%s,omitempty"`, binding.Params[i])),
			}
		}
		return reflect.StructOf(fields), nil
	case len(in) == 1:
		return in[0], nil
	}
	return mapType, nil
}

func toolExecutor(binding *capability.Binding) types.Executable {
	return func(ctx context.Context, input, output interface{}) error {
		var args map[string]interface{}
		if input != nil {
			var err error
			if args, err = conv.ToMap(input); err != nil {
				return fmt.Errorf("%v: %w", binding.Name, err)
			}
		}
		value, err := binding.CallNamed(ctx, args).Await(ctx)
		if err != nil {
			return err
		}
		return assign(output, value)
	}
}

func callableExecutor(binding *capability.Binding) types.Executable {
	return func(ctx context.Context, input, output interface{}) error {
		args := &Args{}
		if input != nil {
			if err := conv.Convert(input, args); err != nil {
				return fmt.Errorf("%v: %w", binding.Name, err)
			}
		}
		value, err := binding.Call(ctx, args.Args...).Await(ctx)
		if err != nil {
			return err
		}
		return assign(output, value)
	}
}

func assign(output interface{}, value interface{}) error {
	switch out := output.(type) {
	case nil:
		return nil
	case *Output:
		out.Result = value
	case *interface{}:
		*out = value
	default:
		return conv.Convert(&Output{Result: value}, output)
	}
	return nil
}

// setInternalFlag sets Signature.Internal when the fluxor version has it.
func setInternalFlag(sig *types.Signature) {
	v := reflect.ValueOf(sig).Elem()
	f := v.FieldByName("Internal")
	if f.IsValid() && f.CanSet() && f.Kind() == reflect.Bool {
		f.SetBool(true)
	}
}

// IsInternal reports whether the signature is flagged internal.
func IsInternal(sig *types.Signature) bool {
	v := reflect.ValueOf(sig).Elem()
	f := v.FieldByName("Internal")
	return f.IsValid() && f.Kind() == reflect.Bool && f.Bool()
}

// Hidden reports whether a method of service must not be published as a tool.
func Hidden(service types.Service, sig *types.Signature) bool {
	if IsInternal(sig) {
		return true
	}
	if actual, ok := service.(*Service); ok {
		return actual.Internal(sig.Name)
	}
	return false
}
