package jsvm

import (
	"context"
	"strconv"

	"github.com/dop251/goja"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/bridge/async"
)

// Object is a handle to a JS object owned by a Runtime. It implements
// bridge.Handle and bridge.Materializer.
type Object struct {
	rt  *Runtime
	obj *goja.Object
}

// Value returns the underlying goja object. Use it only inside Runtime.Do.
func (o *Object) Value() *goja.Object { return o.obj }

// ClassName returns the JS class name, for example "Object" or "Promise".
func (o *Object) ClassName() string {
	var name string
	_ = o.rt.Do(func(*goja.Runtime) error {
		name = o.obj.ClassName()
		return nil
	})
	return name
}

// Get implements bridge.Handle. An undefined property is reported absent;
// a null property is present with a nil value.
func (o *Object) Get(name string) (any, bool) {
	var (
		ret   any
		found bool
	)
	_ = o.rt.Do(func(vm *goja.Runtime) error {
		var value goja.Value
		if ex := vm.Try(func() { value = o.obj.Get(name) }); ex != nil {
			o.rt.logger.Debug("property getter threw", "name", name, "error", ex.Error())
			return nil
		}
		if value == nil || goja.IsUndefined(value) {
			return nil
		}
		ret, found = o.rt.fromJS(value), true
		return nil
	})
	return ret, found
}

// Method implements bridge.Handle. The returned function calls the member
// with this object as receiver.
func (o *Object) Method(name string) (bridge.Function, bool) {
	var fn goja.Callable
	_ = o.rt.Do(func(vm *goja.Runtime) error {
		var value goja.Value
		if ex := vm.Try(func() { value = o.obj.Get(name) }); ex != nil {
			return nil
		}
		fn, _ = goja.AssertFunction(value)
		return nil
	})
	if fn == nil {
		return nil, false
	}
	return func(ctx context.Context, args ...any) async.Result {
		return o.rt.call(ctx, fn, o.obj, args)
	}, true
}

// Call invokes the object itself when it is a function, with an undefined
// receiver.
func (o *Object) Call(ctx context.Context, args ...any) async.Result {
	fn, ok := goja.AssertFunction(o.obj)
	if !ok {
		return async.Failed(bridge.NewNotFound("function", o.ClassName()))
	}
	return o.rt.call(ctx, fn, goja.Undefined(), args)
}

// Materialize implements bridge.Materializer. Arrays become []any, plain
// objects become map[string]any (recursively); other objects stay remote.
func (o *Object) Materialize() any {
	var ret any
	_ = o.rt.Do(func(*goja.Runtime) error {
		ret = o.rt.materialize(o.obj, map[*goja.Object]bool{})
		return nil
	})
	return ret
}

// Export returns the goja export of the object.
func (o *Object) Export() any {
	var ret any
	_ = o.rt.Do(func(*goja.Runtime) error {
		ret = o.obj.Export()
		return nil
	})
	return ret
}

func (r *Runtime) materialize(obj *goja.Object, seen map[*goja.Object]bool) any {
	if seen[obj] {
		return &Object{rt: r, obj: obj}
	}
	switch {
	case obj.ClassName() == classArray:
		seen[obj] = true
		defer delete(seen, obj)
		length := int(obj.Get("length").ToInteger())
		items := make([]any, length)
		for i := 0; i < length; i++ {
			items[i] = r.materializeValue(obj.Get(strconv.Itoa(i)), seen)
		}
		return items
	case r.isPlain(obj):
		seen[obj] = true
		defer delete(seen, obj)
		keys := obj.Keys()
		entries := make(map[string]any, len(keys))
		for _, key := range keys {
			entries[key] = r.materializeValue(obj.Get(key), seen)
		}
		return entries
	}
	return &Object{rt: r, obj: obj}
}

func (r *Runtime) materializeValue(value goja.Value, seen map[*goja.Object]bool) any {
	if obj, ok := value.(*goja.Object); ok {
		return r.materialize(obj, seen)
	}
	return r.fromJS(value)
}

// isPlain reports object literals and Object.create(null) values.
func (r *Runtime) isPlain(obj *goja.Object) bool {
	if obj.ClassName() != classObject {
		return false
	}
	proto := obj.Prototype()
	return proto == nil || proto.SameAs(r.objectRoot)
}
