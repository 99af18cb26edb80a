package jsvm

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dop251/goja"
	"github.com/viant/afs"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/logging"
)

// DefaultGlobal is the global name the agents SDK object is published under.
const DefaultGlobal = "__GO_AGENTS_SDK"

//go:embed sdk.js
var referenceSDK string

// Runtime owns one goja VM.
type Runtime struct {
	mu         sync.Mutex
	vm         *goja.Runtime
	objectRoot *goja.Object
	global     string
	ctx        context.Context
	fs         afs.Service
	logger     *slog.Logger
	marshaller *bridge.Marshaller
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithGlobal overrides the SDK global name.
func WithGlobal(name string) Option {
	return func(r *Runtime) {
		if name != "" {
			r.global = name
		}
	}
}

// WithContext sets the context handed to Go callbacks invoked from JS.
func WithContext(ctx context.Context) Option {
	return func(r *Runtime) { r.ctx = ctx }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.logger = logger }
}

// WithFS sets the storage service used by LoadURL.
func WithFS(fs afs.Service) Option {
	return func(r *Runtime) { r.fs = fs }
}

// New creates an empty runtime. Nothing is loaded until LoadSDK, Load or
// LoadURL is called.
func New(opts ...Option) *Runtime {
	r := &Runtime{vm: goja.New(), global: DefaultGlobal}
	for _, opt := range opts {
		opt(r)
	}
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	if r.fs == nil {
		r.fs = afs.New()
	}
	if r.logger == nil {
		r.logger = logging.For("jsvm")
	}
	r.vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	r.objectRoot = r.vm.Get("Object").ToObject(r.vm).Get("prototype").ToObject(r.vm)
	r.marshaller = bridge.NewMarshaller(r)
	return r
}

// Do runs fn with exclusive access to the VM.
func (r *Runtime) Do(fn func(vm *goja.Runtime) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.vm)
}

// Marshaller returns a marshaller producing native values of this runtime.
func (r *Runtime) Marshaller() *bridge.Marshaller { return r.marshaller }

// GlobalName returns the SDK global name.
func (r *Runtime) GlobalName() string { return r.global }

// Load evaluates a script. The completion value is returned in local form.
func (r *Runtime) Load(name, source string) (any, error) {
	var result any
	err := r.Do(func(vm *goja.Runtime) error {
		value, err := vm.RunScript(name, source)
		if err != nil {
			return fmt.Errorf("load script %v: %w", name, r.exception(err))
		}
		result = r.fromJS(value)
		return nil
	})
	if err == nil {
		r.logger.Info("script loaded", "script", name)
	}
	return result, err
}

// LoadURL downloads a script with afs and evaluates it.
func (r *Runtime) LoadURL(ctx context.Context, URL string) error {
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("download script %v: %w", URL, err)
	}
	_, err = r.Load(URL, string(data))
	return err
}

// LoadSDK evaluates the embedded reference agents SDK and publishes it under
// the configured global name.
func (r *Runtime) LoadSDK() error {
	if _, err := r.Load("sdk.js", referenceSDK); err != nil {
		return err
	}
	if r.global == DefaultGlobal {
		return nil
	}
	return r.Do(func(vm *goja.Runtime) error {
		return vm.Set(r.global, vm.Get(DefaultGlobal))
	})
}

// Set publishes a Go value as a global. Maps, slices and callbacks are
// converted the same way call arguments are.
func (r *Runtime) Set(name string, value any) error {
	encoded := r.marshaller.ToRemote(value)
	return r.Do(func(vm *goja.Runtime) error {
		return vm.Set(name, r.toJS(r.ctx, encoded))
	})
}

// Global returns a handle to a global object, or false when it is undefined
// or not an object.
func (r *Runtime) Global(name string) (*Object, bool) {
	var ret *Object
	_ = r.Do(func(vm *goja.Runtime) error {
		value := vm.Get(name)
		if obj, ok := value.(*goja.Object); ok {
			ret = &Object{rt: r, obj: obj}
		}
		return nil
	})
	return ret, ret != nil
}

// SDK returns the agents SDK published by a loaded script. It fails with
// bridge.ErrBridgeUnavailable when the global was never set.
func (r *Runtime) SDK(opts ...bridge.Option) (*bridge.SDK, error) {
	handle, ok := r.Global(r.global)
	if !ok {
		return nil, fmt.Errorf("remote bridge %q was not found, load a script that sets globalThis.%s: %w", r.global, r.global, bridge.ErrBridgeUnavailable)
	}
	return bridge.NewSDK(handle, r.ProxyOptions(opts...)...)
}

// ProxyOptions prepends this runtime's marshaller to opts.
func (r *Runtime) ProxyOptions(opts ...bridge.Option) []bridge.Option {
	return append([]bridge.Option{bridge.WithMarshaller(r.marshaller)}, opts...)
}

// EncodeObject implements bridge.Encoder.
func (r *Runtime) EncodeObject(entries map[string]any) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Object{rt: r, obj: r.object(entries)}
}

// EncodeArray implements bridge.Encoder.
func (r *Runtime) EncodeArray(items []any) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Object{rt: r, obj: r.array(items)}
}
