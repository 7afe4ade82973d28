package glbind

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gogpu/glbind/driver"
)

// active is the process-wide active context. A single mutable slot: set
// only by Activate, cleared or restored only by Destroy and Terminate.
var active *Context

// Active returns the process-wide active context, or nil if none.
func Active() *Context { return active }

// Context represents one native rendering context and the binding state
// scoped to it.
//
// Lifecycle:
//  1. Create via NewContext; the new context becomes active
//  2. Switch between contexts with Activate
//  3. Destroy exactly once; the previously active context is restored
type Context struct {
	handle driver.ContextHandle
	ns     *SharedNamespace

	// bound holds explicit bindings for context-scoped kinds. Absence of a
	// kind means the kind's default resource is bound.
	bound map[Kind]Bindable

	// defaults holds the per-kind default (zero-handle) resources owned by
	// this context. "No explicit binding" and "bound to the default object"
	// are the same observable state.
	defaults map[Kind]Bindable

	destroyed bool
}

// ContextOption configures a Context during creation.
type ContextOption func(*contextOptions)

type contextOptions struct {
	title  string
	hidden bool
	msaa   int
	share  *Context
}

// WithTitle sets the window title for windowed drivers.
func WithTitle(title string) ContextOption {
	return func(o *contextOptions) { o.title = title }
}

// WithHidden requests an invisible surface, for offscreen or test use.
func WithHidden() ContextOption {
	return func(o *contextOptions) { o.hidden = true }
}

// WithMSAA sets the multisample count. The default of 1 disables
// multisampling.
func WithMSAA(samples int) ContextOption {
	return func(o *contextOptions) { o.msaa = samples }
}

// ShareWith makes the new context join ctx's shared namespace, so that
// shareable resources (buffers, textures, programs) created under either
// context are usable from both.
func ShareWith(ctx *Context) ContextOption {
	return func(o *contextOptions) { o.share = ctx }
}

// NewContext creates a native context and makes it active.
//
// Without ShareWith the context founds a new SharedNamespace; with
// ShareWith it joins an existing one, which fails with ErrEmptyNamespace
// if that namespace has no live contexts left.
func NewContext(width, height int, opts ...ContextOption) (*Context, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}

	o := contextOptions{msaa: 1}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := driver.ContextConfig{
		Width:  width,
		Height: height,
		Title:  o.title,
		Hidden: o.hidden,
		MSAA:   o.msaa,
	}

	var ns *SharedNamespace
	if o.share != nil {
		ns = o.share.ns
		rep, err := ns.representativeHandle()
		if err != nil {
			return nil, err
		}
		cfg.ShareWith = rep
	}

	handle, err := d.CreateContext(cfg)
	if err != nil {
		return nil, fmt.Errorf("glbind: creating context: %w", err)
	}

	ctx := &Context{
		handle:   handle,
		bound:    make(map[Kind]Bindable),
		defaults: make(map[Kind]Bindable),
	}
	if ns == nil {
		ns = newSharedNamespace(ctx)
	} else {
		ns.attach(ctx)
	}
	ctx.ns = ns

	prev := active
	if err := ctx.Activate(); err != nil {
		ns.detach(ctx)
		_ = d.DestroyContext(handle)
		return nil, err
	}

	// Default resources are created under the new context, so it must be
	// active before this point.
	for kind, factory := range defaultFactories {
		def, err := factory()
		if err != nil {
			unwindContext(d, ctx, prev)
			return nil, fmt.Errorf("glbind: creating default %s: %w", kind, err)
		}
		ctx.defaults[kind] = def
	}

	Logger().Info("context created", "shared", o.share != nil)
	return ctx, nil
}

// unwindContext tears down a context whose construction failed partway:
// whatever defaults were built are released, the context leaves its
// namespace and the previously active context (if any) is made active
// again. Best effort; the construction error is what the caller reports.
func unwindContext(d driver.Driver, c *Context, prev *Context) {
	for _, def := range c.defaults {
		_ = def.Destroy()
	}
	c.ns.detach(c)
	c.destroyed = true
	active = nil
	_ = d.DestroyContext(c.handle)
	if prev != nil && !prev.destroyed {
		_ = prev.Activate()
	} else {
		_ = d.MakeCurrent(driver.InvalidContext)
	}
}

// Activate makes this context the process-wide active one.
func (c *Context) Activate() error {
	if c.destroyed {
		return ErrUseAfterDestroy
	}
	d, err := activeDriver()
	if err != nil {
		return err
	}
	if err := d.MakeCurrent(c.handle); err != nil {
		return err
	}
	active = c
	return nil
}

// IsActive reports whether this context is the active one.
func (c *Context) IsActive() bool { return c == active }

// Namespace returns the shared namespace this context belongs to.
func (c *Context) Namespace() *SharedNamespace { return c.ns }

// NativeHandle returns the driver handle of this context, for event-loop
// integration with driver-specific surfaces (swap, polling, close).
func (c *Context) NativeHandle() driver.ContextHandle { return c.handle }

// Destroyed reports whether Destroy has been called.
func (c *Context) Destroyed() bool { return c.destroyed }

// Bound returns the resource currently bound for kind in this context's
// scope: the context itself for non-shareable kinds, its shared namespace
// otherwise. When no explicit binding exists, the kind's default resource
// is returned, or nil for kinds without a default.
func (c *Context) Bound(kind Kind) Bindable {
	if kind.Shareable() {
		return c.ns.Bound(kind)
	}
	if b, ok := c.bound[kind]; ok {
		return b
	}
	return c.defaults[kind]
}

// Default returns this context's default resource for kind, or nil if the
// kind has no default object modelled.
func (c *Context) Default(kind Kind) Bindable { return c.defaults[kind] }

// Destroy deactivates the context (restoring whichever context was active
// before, if any), destroys its default resources, detaches it from its
// shared namespace and releases the native context. A second Destroy
// returns ErrDoubleDestroy.
func (c *Context) Destroy() error {
	if c.destroyed {
		return ErrDoubleDestroy
	}
	d, err := activeDriver()
	if err != nil {
		return err
	}

	prev := active
	if err := c.Activate(); err != nil {
		return err
	}
	for _, def := range c.defaults {
		if err := def.Destroy(); err != nil {
			return err
		}
	}
	c.ns.detach(c)
	c.destroyed = true

	// Vacate the active slot before the native calls: even when one of
	// them fails, Active must never report a destroyed context.
	active = nil
	if err := d.DestroyContext(c.handle); err != nil {
		return err
	}
	if prev == nil || prev == c {
		if err := d.MakeCurrent(driver.InvalidContext); err != nil {
			return err
		}
	} else if err := prev.Activate(); err != nil {
		return err
	}
	Logger().Info("context destroyed")
	return nil
}

// table returns the binding table holding explicit bindings for kind in
// this context's scope.
func (c *Context) table(kind Kind) map[Kind]Bindable {
	if kind.Shareable() {
		return c.ns.bound
	}
	return c.bound
}

// setBound records b as the explicitly bound resource for kind in the
// active context's scope. Pure table operation; the native bind call has
// already happened.
func setBound(kind Kind, b Bindable) {
	active.table(kind)[kind] = b
}

// clearBound removes the explicit binding for kind in the active context's
// scope, falling back to the kind's default resource.
func clearBound(kind Kind) {
	delete(active.table(kind), kind)
}

// currentBound returns what the active context reports bound for kind,
// defaults included. Returns nil when nothing is bound and the kind has no
// default resource.
func currentBound(kind Kind) Bindable {
	return active.Bound(kind)
}

// SharedNamespace is a group of contexts sharing one native object table.
// It owns no resources: membership is non-owning, and the namespace's
// lifetime is the union of its members' lifetimes. Destroying the last
// member leaves the namespace logically empty; attempting to share with an
// empty namespace fails.
type SharedNamespace struct {
	// members is deliberately a thread-unsafe set: all context lifecycle
	// happens on the rendering thread.
	members mapset.Set[*Context]

	// bound holds explicit bindings for shareable kinds, one slot per kind
	// across the whole group.
	bound map[Kind]Bindable
}

func newSharedNamespace(founder *Context) *SharedNamespace {
	return &SharedNamespace{
		members: mapset.NewThreadUnsafeSet(founder),
		bound:   make(map[Kind]Bindable),
	}
}

// attach adds a context to the membership set.
func (ns *SharedNamespace) attach(ctx *Context) {
	ns.members.Add(ctx)
}

// detach removes a context from the membership set.
func (ns *SharedNamespace) detach(ctx *Context) {
	ns.members.Remove(ctx)
}

// IsActive reports whether the active context belongs to this namespace.
func (ns *SharedNamespace) IsActive() bool {
	return active != nil && active.ns == ns
}

// Contexts returns the live member contexts, in unspecified order.
func (ns *SharedNamespace) Contexts() []*Context {
	return ns.members.ToSlice()
}

// Bound returns the resource currently bound for a shareable kind in this
// namespace, or nil if none.
func (ns *SharedNamespace) Bound(kind Kind) Bindable {
	return ns.bound[kind]
}

// representativeHandle returns the native handle of one live member, used
// to create a new context sharing this namespace. All members share one
// object table, so any member serves.
func (ns *SharedNamespace) representativeHandle() (driver.ContextHandle, error) {
	for _, ctx := range ns.members.ToSlice() {
		return ctx.handle, nil
	}
	return driver.InvalidContext, ErrEmptyNamespace
}
