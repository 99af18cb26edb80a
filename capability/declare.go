package capability

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/conv"
	"github.com/viant/agentbridge/internal/syncmap"
)

// ErrInvalidDeclaration reports a declaration that cannot be bound.
var ErrInvalidDeclaration = errors.New("invalid capability declaration")

// Kind distinguishes plain callables from tools.
type Kind int

const (
	KindCallable Kind = iota + 1
	KindTool
)

func (k Kind) String() string {
	switch k {
	case KindCallable:
		return "callable"
	case KindTool:
		return "tool"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Descriptor is the metadata attached to a declared method.
type Descriptor struct {
	Name        string
	Kind        Kind
	Method      string
	Schema      any
	Description string
	Params      []string
}

// Declaration names a Go method and how it is exposed.
type Declaration struct {
	kind   Kind
	method string
	opts   []Option
}

// Option customizes a Declaration.
type Option func(d *Descriptor) error

// Callable exposes method for positional dispatch.
func Callable(method string, opts ...Option) Declaration {
	return Declaration{kind: KindCallable, method: method, opts: opts}
}

// Tool exposes method for tool registration.
func Tool(method string, opts ...Option) Declaration {
	return Declaration{kind: KindTool, method: method, opts: opts}
}

// WithName overrides the exposed name; the default is the method name in
// snake_case.
func WithName(name string) Option {
	return func(d *Descriptor) error {
		if name == "" {
			return fmt.Errorf("empty name")
		}
		d.Name = name
		return nil
	}
}

// WithSchema sets the tool input schema. Shorthand maps such as
// {"order_id": "string"} are allowed; tool hosts normalize them.
func WithSchema(schema any) Option {
	return func(d *Descriptor) error {
		d.Schema = schema
		return nil
	}
}

// WithSchemaOf derives the tool input schema from an argument struct.
func WithSchemaOf[T any]() Option {
	return func(d *Descriptor) error {
		reflector := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
		schema, err := conv.ToMap(reflector.Reflect(new(T)))
		if err != nil {
			return fmt.Errorf("schema of %T: %w", *new(T), err)
		}
		delete(schema, "$schema")
		delete(schema, "$id")
		d.Schema = schema
		return nil
	}
}

// WithDescription sets the tool description.
func WithDescription(description string) Option {
	return func(d *Descriptor) error {
		d.Description = description
		return nil
	}
}

// WithParams names the method parameters (context excluded) so keyword
// arguments can be bound to them.
func WithParams(names ...string) Option {
	return func(d *Descriptor) error {
		d.Params = names
		return nil
	}
}

type entry struct {
	Descriptor
	sig *signature
}

type table struct {
	entries []*entry
}

func (t *table) find(kind Kind, name string) *entry {
	for _, e := range t.entries {
		if e.Kind == kind && e.Name == name {
			return e
		}
	}
	return nil
}

var registry = syncmap.New[reflect.Type, *table]()

// Declare records declarations for T, a struct type. Methods may use value or
// pointer receivers. Declaring an exposed name twice for one kind on the same
// type fails with bridge.ErrDuplicateName.
func Declare[T any](decls ...Declaration) error {
	base := reflect.TypeFor[T]()
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v is not a struct type", ErrInvalidDeclaration, base)
	}
	entries := make([]*entry, 0, len(decls))
	for _, decl := range decls {
		e, err := newEntry(base, decl)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	return registry.Update(base, func(prev *table, ok bool) (*table, error) {
		next := &table{}
		if ok {
			next.entries = append(next.entries, prev.entries...)
		}
		for _, e := range entries {
			if existing := next.find(e.Kind, e.Name); existing != nil {
				return nil, &bridge.DuplicateNameError{
					Kind:   e.Kind.String(),
					Name:   e.Name,
					First:  base.Name() + "." + existing.Method,
					Second: base.Name() + "." + e.Method,
				}
			}
			next.entries = append(next.entries, e)
		}
		return next, nil
	})
}

// MustDeclare is Declare that panics on error, for use in init functions.
func MustDeclare[T any](decls ...Declaration) {
	if err := Declare[T](decls...); err != nil {
		panic(err)
	}
}

// Declared returns the descriptors recorded for the type of instance,
// excluding embedded types.
func Declared(instance any) []Descriptor {
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	tbl, ok := registry.Get(t)
	if !ok {
		return nil
	}
	ret := make([]Descriptor, len(tbl.entries))
	for i, e := range tbl.entries {
		ret[i] = e.Descriptor
	}
	return ret
}

func newEntry(base reflect.Type, decl Declaration) (*entry, error) {
	method, ok := reflect.PointerTo(base).MethodByName(decl.method)
	if !ok {
		return nil, fmt.Errorf("%w: %v has no exported method %v", ErrInvalidDeclaration, base, decl.method)
	}
	e := &entry{Descriptor: Descriptor{Name: bridge.ToLocal(decl.method), Kind: decl.kind, Method: decl.method}}
	for _, opt := range decl.opts {
		if err := opt(&e.Descriptor); err != nil {
			return nil, fmt.Errorf("%w: %v.%v: %v", ErrInvalidDeclaration, base.Name(), decl.method, err)
		}
	}
	if decl.kind == KindCallable && (e.Schema != nil || e.Description != "") {
		return nil, fmt.Errorf("%w: callable %v.%v cannot carry a schema or description", ErrInvalidDeclaration, base.Name(), decl.method)
	}
	sig, err := analyze(method.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v.%v: %v", ErrInvalidDeclaration, base.Name(), decl.method, err)
	}
	if len(e.Params) > 0 && len(e.Params) != len(sig.in) {
		return nil, fmt.Errorf("%w: %v.%v: %d parameter names for %d parameters", ErrInvalidDeclaration, base.Name(), decl.method, len(e.Params), len(sig.in))
	}
	e.sig = sig
	return e, nil
}
