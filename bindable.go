package glbind

import (
	"errors"
	"fmt"

	"github.com/gogpu/glbind/driver"
)

// Bindable is a GPU resource that occupies a binding slot. The concrete
// types are the closed set defined in this package (buffers, vertex
// arrays, textures, programs); the unexported base method keeps the
// interface closed.
type Bindable interface {
	// Kind returns the binding slot this resource occupies.
	Kind() Kind

	// Bind makes this resource the bound one for its kind. It reports
	// whether the binding actually changed: binding an already-bound
	// resource is a no-op and reports false. Binding fails with
	// ErrContextMismatch when the resource does not exist in the active
	// context and with ErrUseAfterDestroy after Destroy.
	Bind() (changed bool, err error)

	// IsBound reports whether this resource is the bound one for its kind
	// in the active scope.
	IsBound() (bool, error)

	// Handle returns the native handle, guarded as described on Resource
	// handle access.
	Handle() (driver.Handle, error)

	// ExistsInCurrentContext reports whether the handle is valid under the
	// active context.
	ExistsInCurrentContext() bool

	// Destroyed reports whether Destroy has been called.
	Destroyed() bool

	// Destroy releases the native object and scrubs any binding-table entry
	// still referencing it.
	Destroy() error

	base() *bindable
}

// bindable implements the state machine shared by all bindable resources.
// Concrete types embed it and implement Bind by delegating to bind, adding
// kind-specific post-transition steps where the slot has them.
type bindable struct {
	resource
	kind Kind
}

func (b *bindable) Kind() Kind      { return b.kind }
func (b *bindable) base() *bindable { return b }

// initBindable creates the base state for a bindable resource of kind.
// Shareability follows the kind's scope rule.
func (b *bindable) initBindable(h driver.Handle, kind Kind) error {
	b.kind = kind
	return b.resource.init(h, kind.Shareable())
}

// IsBound reports whether this resource is currently bound for its kind.
func (b *bindable) IsBound() (bool, error) {
	if b.destroyed {
		return false, ErrUseAfterDestroy
	}
	if !b.ExistsInCurrentContext() {
		return false, ErrContextMismatch
	}
	cur := currentBound(b.kind)
	return cur != nil && cur.base() == b, nil
}

// bind performs the core binding transition for self. Already-bound is a
// no-op reporting false, so callers can react only on actual transitions.
func (b *bindable) bind(self Bindable) (bool, error) {
	bound, err := b.IsBound()
	if err != nil {
		return false, err
	}
	if bound {
		return false, nil
	}
	d, err := activeDriver()
	if err != nil {
		return false, err
	}
	h, err := b.Handle()
	if err != nil {
		return false, err
	}
	if err := b.kind.bindNative(d, h); err != nil {
		return false, err
	}
	setBound(b.kind, self)
	Logger().Debug("bound", "kind", b.kind, "handle", uint32(h))
	return true, nil
}

// requireBound fails with ErrNotBound unless b is currently bound.
// Used by operations that mutate the native object through its slot.
func (b *bindable) requireBound() error {
	bound, err := b.IsBound()
	if err != nil {
		return err
	}
	if !bound {
		return fmt.Errorf("%w: %s", ErrNotBound, b.kind)
	}
	return nil
}

// Unbind binds the default object for kind and clears the active scope's
// explicit binding, so the kind's default resource (if any) is reported
// as bound again.
func Unbind(kind Kind) error {
	if active == nil {
		return ErrNoActiveContext
	}
	d, err := activeDriver()
	if err != nil {
		return err
	}
	if err := kind.bindNative(d, driver.DefaultObject); err != nil {
		return err
	}
	clearBound(kind)
	// The element slot is container state: unbinding it overwrites the
	// bound container's attachment, mirroring IndexBuffer.Bind.
	if kind == KindElementArrayBuffer {
		if va, ok := currentBound(KindVertexArray).(*VertexArray); ok {
			va.index = nil
		}
	}
	return nil
}

// WithBound binds b, runs fn, and restores the previously bound resource
// of b's kind on every exit path, panics included. If b was already bound,
// fn runs without any transition. Nested uses therefore always leave the
// binding table as they found it.
//
// If the previous resource was destroyed during fn, restoring it is
// reported as ErrUseAfterDestroy rather than silently skipped.
func WithBound(b Bindable, fn func() error) (err error) {
	bound, err := b.IsBound()
	if err != nil {
		return err
	}
	if bound {
		return fn()
	}
	prev := currentBound(b.Kind())
	if _, err := b.Bind(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, restoreBinding(b.Kind(), prev))
	}()
	return fn()
}

// WithUnbound unbinds kind, runs fn, and restores the previously bound
// resource on exit. The counterpart of WithBound for code that must run
// with the default object bound.
func WithUnbound(kind Kind, fn func() error) (err error) {
	if active == nil {
		return ErrNoActiveContext
	}
	prev := currentBound(kind)
	if err := Unbind(kind); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, restoreBinding(kind, prev))
	}()
	return fn()
}

// restoreBinding reinstates prev as the bound resource for kind, or
// unbinds to the default object when there was no previous resource.
func restoreBinding(kind Kind, prev Bindable) error {
	if prev == nil {
		return Unbind(kind)
	}
	if prev.Destroyed() {
		return fmt.Errorf("glbind: restoring previous %s binding: %w", kind, ErrUseAfterDestroy)
	}
	_, err := prev.Bind()
	return err
}

// destroyBindable releases self's native object and then scrubs every
// binding-table entry in self's scope that still references it, so no
// context reports a destroyed resource as bound.
func destroyBindable(self Bindable, release func(driver.Driver, driver.Handle) error) error {
	b := self.base()
	if err := destroyResource(&b.resource, release); err != nil {
		return err
	}
	if b.shareable {
		ns := b.owner.ns
		if cur, ok := ns.bound[b.kind]; ok && cur.base() == b {
			delete(ns.bound, b.kind)
		}
		return nil
	}
	if cur, ok := b.owner.bound[b.kind]; ok && cur.base() == b {
		delete(b.owner.bound, b.kind)
	}
	return nil
}
