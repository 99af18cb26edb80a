package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/agentbridge/internal/logging"
)

// Proxy forwards property reads and method calls to a remote Handle.
type Proxy struct {
	handle     Handle
	marshaller *Marshaller
	policy     Policy
	allowed    map[string]struct{}
	logger     *slog.Logger
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithMarshaller sets the boundary marshaller; the default is identity.
func WithMarshaller(marshaller *Marshaller) Option {
	return func(p *Proxy) { p.marshaller = marshaller }
}

// WithPolicy selects the forwarding policy. Under Strict, the allow-list is
// DefaultAllowList plus extra (local or remote spelling).
func WithPolicy(policy Policy, extra ...string) Option {
	return func(p *Proxy) {
		p.policy = policy
		if policy != Strict {
			p.allowed = nil
			return
		}
		p.allowed = make(map[string]struct{}, len(DefaultAllowList)+len(extra))
		for _, name := range DefaultAllowList {
			p.allowed[name] = struct{}{}
		}
		for _, name := range extra {
			p.allowed[ToRemote(name)] = struct{}{}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Proxy) { p.logger = logger }
}

// New wraps handle. The proxy never owns the handle.
func New(handle Handle, opts ...Option) *Proxy {
	p := &Proxy{handle: handle}
	for _, opt := range opts {
		opt(p)
	}
	if p.marshaller == nil {
		p.marshaller = NewMarshaller(nil)
	}
	if p.logger == nil {
		p.logger = logging.For("bridge")
	}
	return p
}

// Create invokes a remote factory with the marshalled record and wraps the
// returned handle. A nil factory means there is no remote runtime, which is
// an error here rather than a silent identity fallback.
func Create(ctx context.Context, factory Function, record Record, opts ...Option) (*Proxy, error) {
	if factory == nil {
		return nil, fmt.Errorf("create remote object: %w", ErrBridgeUnavailable)
	}
	probe := New(nil, opts...)
	value, err := factory(ctx, probe.marshaller.ToRemote(record.Record())).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("create remote object: %w", err)
	}
	handle, ok := value.(Handle)
	if !ok {
		return nil, fmt.Errorf("create remote object: factory returned %T, expected a remote handle", value)
	}
	probe.handle = handle
	return probe, nil
}

// Raw returns the wrapped handle; it bypasses translation and policy.
func (p *Proxy) Raw() Handle { return p.handle }

// Policy returns the forwarding policy.
func (p *Proxy) Policy() Policy { return p.policy }

// Marshaller returns the boundary marshaller.
func (p *Proxy) Marshaller() *Marshaller { return p.marshaller }

// State returns the remote state property, or nil when absent.
func (p *Proxy) State() any { return p.defined("state") }

// Env returns the remote env property, or nil when absent.
func (p *Proxy) Env() any { return p.defined("env") }

// Ctx returns the remote ctx property, or nil when absent.
func (p *Proxy) Ctx() any { return p.defined("ctx") }

func (p *Proxy) defined(name string) any {
	if p.handle == nil {
		return nil
	}
	value, ok := p.handle.Get(name)
	if !ok {
		return nil
	}
	return p.marshaller.ToLocal(value)
}

// Property reads a property, translating its name when it is in the local
// convention. Every read goes to the handle; nothing is cached.
func (p *Proxy) Property(name string) (any, error) {
	remote := remoteName(name)
	if p.handle == nil || (!isDefinedProperty(name) && !p.allows(remote)) {
		return nil, NewNotFound("property", name)
	}
	value, ok := p.handle.Get(remote)
	if !ok && remote != name {
		value, ok = p.handle.Get(name)
	}
	if !ok {
		p.logger.Debug("property not found", "name", name)
		return nil, NewNotFound("property", name)
	}
	return p.marshaller.ToLocal(value), nil
}

// Call invokes a remote method with positional arguments.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (any, error) {
	return p.call(ctx, method, args, nil)
}

// CallWithOptions invokes a remote method with positional arguments followed
// by one trailing options record. An empty options record is omitted.
func (p *Proxy) CallWithOptions(ctx context.Context, method string, options map[string]any, args ...any) (any, error) {
	return p.call(ctx, method, args, options)
}

func (p *Proxy) call(ctx context.Context, method string, args []any, options map[string]any) (any, error) {
	remote := remoteName(method)
	fn, err := p.resolve(method, remote)
	if err != nil {
		return nil, err
	}
	remoteArgs := make([]any, 0, len(args)+1)
	for _, arg := range args {
		remoteArgs = append(remoteArgs, p.marshaller.ToRemote(arg))
	}
	if len(options) > 0 {
		remoteArgs = append(remoteArgs, p.marshaller.ToRemote(options))
	}
	p.logger.Debug("remote call", "method", remote, "args", len(remoteArgs))
	value, err := fn(ctx, remoteArgs...).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", remote, err)
	}
	return p.marshaller.ToLocal(value), nil
}

// Invoke calls a remote operation by its exact remote name. Arguments are
// passed as given and the settled value is returned without materializing it.
func (p *Proxy) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	fn, err := p.resolve(name, name)
	if err != nil {
		return nil, err
	}
	value, err := fn(ctx, args...).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}

func (p *Proxy) resolve(name, remote string) (Function, error) {
	if !p.allows(remote) {
		p.logger.Debug("method outside allow-list", "name", name)
		return nil, NewNotFound("method", name)
	}
	if p.handle == nil {
		return nil, NewNotFound("method", name)
	}
	fn, ok := p.handle.Method(remote)
	if !ok {
		p.logger.Debug("method not found", "name", name)
		return nil, NewNotFound("method", name)
	}
	return fn, nil
}

func (p *Proxy) allows(remote string) bool {
	if p.policy != Strict {
		return true
	}
	_, ok := p.allowed[remote]
	return ok
}

func remoteName(name string) string {
	if strings.Contains(name, "_") {
		return ToRemote(name)
	}
	return name
}
