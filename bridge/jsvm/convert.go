package jsvm

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/async"
)

const (
	classObject = "Object"
	classArray  = "Array"
	classError  = "Error"
)

// call must be invoked without the lock held.
func (r *Runtime) call(ctx context.Context, fn goja.Callable, this goja.Value, args []any) async.Result {
	var result async.Result
	_ = r.Do(func(vm *goja.Runtime) error {
		jsArgs := make([]goja.Value, len(args))
		for i, arg := range args {
			jsArgs[i] = r.toJS(ctx, arg)
		}
		value, err := fn(this, jsArgs...)
		if err != nil {
			result = async.Failed(r.rejection(err))
			return nil
		}
		result = r.settle(value)
		return nil
	})
	return result
}

// settle turns a JS return value into a Result. Pending promises get then
// reactions that settle a Future; reactions run while the runtime lock is
// held by whoever resolves the promise.
func (r *Runtime) settle(value goja.Value) async.Result {
	obj, ok := value.(*goja.Object)
	if !ok {
		return async.Ready(r.fromJS(value))
	}
	promise, ok := obj.Export().(*goja.Promise)
	if !ok {
		return async.Ready(r.fromJS(value))
	}
	switch promise.State() {
	case goja.PromiseStateFulfilled:
		return async.Ready(r.fromJS(promise.Result()))
	case goja.PromiseStateRejected:
		return async.Failed(&bridge.RejectionError{Reason: r.reason(promise.Result())})
	}
	future := async.NewFuture()
	then, ok := goja.AssertFunction(obj.Get("then"))
	if !ok {
		return async.Failed(fmt.Errorf("promise without then"))
	}
	onFulfilled := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		future.Resolve(r.fromJS(call.Argument(0)))
		return goja.Undefined()
	})
	onRejected := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		future.Reject(&bridge.RejectionError{Reason: r.reason(call.Argument(0))})
		return goja.Undefined()
	})
	if _, err := then(obj, onFulfilled, onRejected); err != nil {
		return async.Failed(r.rejection(err))
	}
	return async.Pending(future)
}

// rejection converts an error raised by a JS call.
func (r *Runtime) rejection(err error) error {
	if ex, ok := err.(*goja.Exception); ok {
		return &bridge.RejectionError{Reason: r.reason(ex.Value())}
	}
	return err
}

// exception keeps the JS message of script errors readable.
func (r *Runtime) exception(err error) error {
	if ex, ok := err.(*goja.Exception); ok {
		return fmt.Errorf("%s", ex.Error())
	}
	return err
}

// reason converts a rejection payload. Go errors thrown from callbacks are
// unwrapped, JS errors become {name, message} records.
func (r *Runtime) reason(value goja.Value) any {
	obj, ok := value.(*goja.Object)
	if !ok {
		return r.fromJS(value)
	}
	if obj.ClassName() != classError {
		return r.materialize(obj, map[*goja.Object]bool{})
	}
	if inner := obj.Get("value"); inner != nil {
		if err, ok := inner.Export().(error); ok {
			return err
		}
	}
	ret := map[string]any{}
	if name := obj.Get("name"); name != nil && !goja.IsUndefined(name) {
		ret["name"] = name.String()
	}
	if message := obj.Get("message"); message != nil && !goja.IsUndefined(message) {
		ret["message"] = message.String()
	}
	return ret
}

// fromJS keeps objects remote; primitives are exported (integers as int64).
func (r *Runtime) fromJS(value goja.Value) any {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil
	}
	if obj, ok := value.(*goja.Object); ok {
		return &Object{rt: r, obj: obj}
	}
	return value.Export()
}

// toJS must be called with the lock held.
func (r *Runtime) toJS(ctx context.Context, value any) goja.Value {
	switch actual := value.(type) {
	case nil:
		return goja.Null()
	case goja.Value:
		return actual
	case *Object:
		return actual.obj
	case bridge.Callback:
		return r.callback(ctx, actual)
	case func(ctx context.Context, args ...any) (any, error):
		return r.callback(ctx, actual)
	case bridge.Function:
		return r.callback(ctx, func(ctx context.Context, args ...any) (any, error) {
			return actual(ctx, args...).Await(ctx)
		})
	case map[string]any:
		return r.object(actual)
	case []any:
		return r.array(actual)
	}
	return r.vm.ToValue(value)
}

func (r *Runtime) object(entries map[string]any) *goja.Object {
	obj := r.vm.NewObject()
	for k, v := range entries {
		_ = obj.Set(k, r.toJS(r.ctx, v))
	}
	return obj
}

func (r *Runtime) array(items []any) *goja.Object {
	values := make([]interface{}, len(items))
	for i, item := range items {
		values[i] = r.toJS(r.ctx, item)
	}
	return r.vm.NewArray(values...)
}

// callback exposes a Go function to JS. Each call returns a promise that is
// settled from a goroutine once handler completes, so JS may await it and
// the handler is free to call back into the runtime.
func (r *Runtime) callback(ctx context.Context, handler bridge.Callback) goja.Value {
	if ctx == nil {
		ctx = r.ctx
	}
	return r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		args := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = r.fromJS(arg)
		}
		promise, resolve, reject := r.vm.NewPromise()
		go func() {
			value, err := r.invoke(ctx, handler, args)
			if err == nil {
				value = r.marshaller.ToRemote(value)
			}
			_ = r.Do(func(vm *goja.Runtime) error {
				if err != nil {
					return reject(vm.NewGoError(err))
				}
				return resolve(r.toJS(ctx, value))
			})
		}()
		return r.vm.ToValue(promise)
	})
}

func (r *Runtime) invoke(ctx context.Context, handler bridge.Callback, args []any) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("callback panic: %v", p)
		}
	}()
	for i, arg := range args {
		args[i] = r.marshaller.ToLocal(arg)
	}
	return handler(ctx, args...)
}
