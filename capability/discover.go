package capability

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/viant/agentbridge/bridge"
)

// Binding is a declared method bound to a receiver.
type Binding struct {
	Descriptor
	owner string
	fn    reflect.Value
	sig   *signature
}

// Owner returns the declaring type and Go method, e.g. "Support.LookupOrder".
func (b *Binding) Owner() string { return b.owner }

// In returns the parameter types, context excluded.
func (b *Binding) In() []reflect.Type {
	return append([]reflect.Type(nil), b.sig.in...)
}

// Variadic reports whether the last parameter is variadic.
func (b *Binding) Variadic() bool { return b.sig.variadic }

// Set is the result of one discovery pass for one kind.
type Set struct {
	kind     Kind
	bindings map[string]*Binding
}

// Kind returns the kind the set was discovered for.
func (s *Set) Kind() Kind { return s.kind }

// Len returns the number of bindings.
func (s *Set) Len() int { return len(s.bindings) }

// Names returns the exposed names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the binding for an exposed name.
func (s *Set) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Bindings returns all bindings sorted by exposed name.
func (s *Set) Bindings() []*Binding {
	ret := make([]*Binding, 0, len(s.bindings))
	for _, name := range s.Names() {
		ret = append(ret, s.bindings[name])
	}
	return ret
}

func (s *Set) notFound(name string) error {
	return bridge.NewNotFound(s.kind.String(), name, s.Names()...)
}

// Callables discovers KindCallable declarations on instance.
func Callables(instance any) (*Set, error) { return Discover(instance, KindCallable) }

// Tools discovers KindTool declarations on instance.
func Tools(instance any) (*Set, error) { return Discover(instance, KindTool) }

// Discover scans instance and its embedded structs for declarations of kind.
// Nothing is cached, so instances of different types (or with different
// embedded values) always reflect their own method set. Two different methods
// claiming one exposed name fail with bridge.ErrDuplicateName; a declaration
// on an embedded type is skipped when a shallower type declares the same Go
// method.
func Discover(instance any, kind Kind) (*Set, error) {
	if instance == nil {
		return nil, fmt.Errorf("discover %v: nil instance", kind)
	}
	value := reflect.ValueOf(instance)
	if value.Kind() != reflect.Pointer {
		ptr := reflect.New(value.Type())
		ptr.Elem().Set(value)
		value = ptr
	}
	if value.IsNil() {
		return nil, fmt.Errorf("discover %v: nil %v", kind, value.Type())
	}
	w := &walker{set: &Set{kind: kind, bindings: map[string]*Binding{}}, claimed: map[string]int{}}
	if err := w.walk(value, 0); err != nil {
		return nil, err
	}
	return w.set, nil
}

type walker struct {
	set     *Set
	claimed map[string]int
}

func (w *walker) walk(ptr reflect.Value, depth int) error {
	for ptr.Kind() == reflect.Pointer && ptr.Elem().Kind() == reflect.Pointer {
		if ptr.Elem().IsNil() {
			return nil
		}
		ptr = ptr.Elem()
	}
	elem := ptr.Elem()
	if elem.Kind() != reflect.Struct {
		return nil
	}
	if tbl, ok := registry.Get(elem.Type()); ok {
		for _, e := range tbl.entries {
			if e.Kind != w.set.kind {
				continue
			}
			if claimedAt, ok := w.claimed[e.Method]; ok && claimedAt < depth {
				continue
			}
			owner := elem.Type().Name() + "." + e.Method
			if existing, ok := w.set.bindings[e.Name]; ok {
				return &bridge.DuplicateNameError{Kind: e.Kind.String(), Name: e.Name, First: existing.owner, Second: owner}
			}
			w.claimed[e.Method] = depth
			w.set.bindings[e.Name] = &Binding{Descriptor: e.Descriptor, owner: owner, fn: ptr.MethodByName(e.Method), sig: e.sig}
		}
	}
	structType := elem.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.Anonymous || !field.IsExported() {
			continue
		}
		fieldValue := elem.Field(i)
		switch fieldValue.Kind() {
		case reflect.Pointer:
			if fieldValue.IsNil() || fieldValue.Elem().Kind() != reflect.Struct {
				continue
			}
			if err := w.walk(fieldValue, depth+1); err != nil {
				return err
			}
		case reflect.Struct:
			if err := w.walk(fieldValue.Addr(), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
