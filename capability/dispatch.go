package capability

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/async"
	"github.com/viant/agentbridge/internal/conv"
)

var validate = validator.New()

// Dispatch discovers callables on instance and invokes name with positional
// arguments. A missing name fails with bridge.ErrNotFound.
func Dispatch(ctx context.Context, instance any, name string, args ...any) async.Result {
	set, err := Callables(instance)
	if err != nil {
		return async.Failed(err)
	}
	binding, ok := set.Lookup(name)
	if !ok {
		return async.Failed(set.notFound(name))
	}
	return binding.Call(ctx, args...)
}

// DispatchNamed invokes a callable with one keyword arguments record.
func DispatchNamed(ctx context.Context, instance any, name string, args map[string]any) async.Result {
	set, err := Callables(instance)
	if err != nil {
		return async.Failed(err)
	}
	binding, ok := set.Lookup(name)
	if !ok {
		return async.Failed(set.notFound(name))
	}
	return binding.CallNamed(ctx, args)
}

// CallTool invokes a tool with its arguments record.
func CallTool(ctx context.Context, instance any, name string, args map[string]any) async.Result {
	set, err := Tools(instance)
	if err != nil {
		return async.Failed(err)
	}
	binding, ok := set.Lookup(name)
	if !ok {
		return async.Failed(set.notFound(name))
	}
	return binding.CallNamed(ctx, args)
}

// Call invokes the binding with positional arguments, converting each one to
// the parameter type.
func (b *Binding) Call(ctx context.Context, args ...any) async.Result {
	in := b.sig.in
	if !b.sig.variadic && len(args) != len(in) {
		return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("expects %d arguments, got %d", len(in), len(args))})
	}
	if b.sig.variadic && len(args) < len(in)-1 {
		return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("expects at least %d arguments, got %d", len(in)-1, len(args))})
	}
	values := make([]reflect.Value, 0, len(args))
	for i, arg := range args {
		target := b.paramType(i)
		value, err := conv.ConvertValue(arg, target)
		if err != nil {
			return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("argument %d", i), Err: err})
		}
		values = append(values, value)
	}
	return b.invoke(ctx, values)
}

func (b *Binding) paramType(i int) reflect.Type {
	in := b.sig.in
	if b.sig.variadic && i >= len(in)-1 {
		return in[len(in)-1].Elem()
	}
	return in[i]
}

// CallNamed invokes the binding with a keyword arguments record. Parameters
// named with WithParams are bound by key; otherwise a single struct or map
// parameter receives the whole record and structs are validated.
func (b *Binding) CallNamed(ctx context.Context, args map[string]any) async.Result {
	in := b.sig.in
	switch {
	case len(in) == 0:
		if len(args) > 0 {
			return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("takes no arguments, got %v", keys(args))})
		}
		return b.invoke(ctx, nil)
	case len(b.Params) > 0:
		return b.callParams(ctx, args)
	case len(in) == 1 && isRecord(in[0]):
		value, err := conv.ConvertValue(emptyIfNil(args), in[0])
		if err != nil {
			return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: "arguments record", Err: err})
		}
		if isStruct(in[0]) && !(value.Kind() == reflect.Pointer && value.IsNil()) {
			if err := validate.Struct(value.Interface()); err != nil {
				return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: "validation failed", Err: err})
			}
		}
		return b.invoke(ctx, []reflect.Value{value})
	}
	return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: "keyword arguments need parameter names or a single record parameter"})
}

func (b *Binding) callParams(ctx context.Context, args map[string]any) async.Result {
	known := make(map[string]bool, len(b.Params))
	values := make([]reflect.Value, len(b.Params))
	for i, name := range b.Params {
		known[name] = true
		value, err := conv.ConvertValue(args[name], b.sig.in[i])
		if err != nil {
			return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("argument %q", name), Err: err})
		}
		values[i] = value
	}
	for key := range args {
		if !known[key] {
			return async.Failed(&bridge.ArgumentError{Name: b.Name, Reason: fmt.Sprintf("unexpected argument %q", key)})
		}
	}
	if b.sig.variadic {
		return b.invokeSlice(ctx, values)
	}
	return b.invoke(ctx, values)
}

func (b *Binding) invoke(ctx context.Context, values []reflect.Value) async.Result {
	return b.run(ctx, values, b.fn.Call)
}

func (b *Binding) invokeSlice(ctx context.Context, values []reflect.Value) async.Result {
	return b.run(ctx, values, b.fn.CallSlice)
}

func (b *Binding) run(ctx context.Context, values []reflect.Value, call func([]reflect.Value) []reflect.Value) (result async.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = async.Failed(fmt.Errorf("%v %v panicked: %v", b.Kind, b.Name, r))
		}
	}()
	if b.sig.context {
		if ctx == nil {
			ctx = context.Background()
		}
		values = append([]reflect.Value{reflect.ValueOf(ctx)}, values...)
	}
	return b.sig.result(call(values))
}

func isRecord(t reflect.Type) bool {
	return isStruct(t) || t.Kind() == reflect.Map
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func emptyIfNil(args map[string]any) map[string]any {
	if args == nil {
		return map[string]any{}
	}
	return args
}

func keys(args map[string]any) []string {
	ret := make([]string, 0, len(args))
	for k := range args {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
