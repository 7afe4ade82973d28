package glbind

import (
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"github.com/gogpu/glbind/driver"
)

// resource is the base of every GPU object. It records the owning context
// (the context active at creation time), whether the object lives in the
// owner's shared namespace or in the owner alone, and destroy-once state.
type resource struct {
	handle    driver.Handle
	owner     *Context
	shareable bool
	destroyed bool
	leak      *leakState
}

// initResource fills in the base fields of a freshly allocated resource.
// The caller must have already created the native object under the active
// context.
func (r *resource) init(h driver.Handle, shareable bool) error {
	if active == nil {
		return ErrNoActiveContext
	}
	r.handle = h
	r.owner = active
	r.shareable = shareable
	if MonitorLeaks() {
		r.leak = &leakState{stack: debug.Stack()}
	}
	return nil
}

// ExistsInCurrentContext reports whether this resource's handle is valid
// under the active context: for shareable resources the active context must
// belong to the owner's shared namespace, for non-shareable resources the
// owner itself must be active.
func (r *resource) ExistsInCurrentContext() bool {
	if r.owner == nil {
		return false
	}
	if r.shareable {
		return r.owner.ns.IsActive()
	}
	return r.owner.IsActive()
}

// Destroyed reports whether Destroy has been called.
func (r *resource) Destroyed() bool { return r.destroyed }

// Shareable reports whether this resource lives in its owner's shared
// namespace rather than in the owning context alone.
func (r *resource) Shareable() bool { return r.shareable }

// Context returns the context this resource was created under.
func (r *resource) Context() *Context { return r.owner }

// Handle returns the native handle. It fails with ErrUseAfterDestroy once
// the resource is destroyed and with ErrContextMismatch when the resource
// does not exist in the active context; every native call is guarded by
// this check because the native API itself does not validate either.
func (r *resource) Handle() (driver.Handle, error) {
	if r.destroyed {
		return 0, ErrUseAfterDestroy
	}
	if !r.ExistsInCurrentContext() {
		return 0, ErrContextMismatch
	}
	return r.handle, nil
}

// finishDestroy marks the resource destroyed and releases its leak record.
func (r *resource) finishDestroy() {
	r.destroyed = true
	if r.leak != nil {
		r.leak.released.Store(true)
	}
}

// destroyResource validates and runs a kind-specific native release.
func destroyResource(r *resource, release func(driver.Driver, driver.Handle) error) error {
	if r.destroyed {
		return ErrDoubleDestroy
	}
	d, err := activeDriver()
	if err != nil {
		return err
	}
	h, err := r.Handle()
	if err != nil {
		return err
	}
	if release != nil {
		if err := release(d, h); err != nil {
			return err
		}
	}
	r.finishDestroy()
	return nil
}

// leakState outlives its resource on purpose: the finalizer closure holds
// only this small record, never the resource itself, so monitoring does not
// keep leaked objects reachable.
type leakState struct {
	what     string
	released atomic.Bool
	stack    []byte
}

func (ls *leakState) emit() {
	if ls.released.Load() || leakWarningsSuppressed() || !MonitorLeaks() {
		return
	}
	Logger().Warn("GPU object garbage collected without being destroyed first",
		"object", ls.what,
		"created_at", string(ls.stack))
}

// monitorLeak arms the collection-time diagnostic for obj. The warning
// reports the creation call site, recorded in r.leak at creation time, so
// the developer can locate the leaked allocation. No-op unless leak
// monitoring was enabled when obj was created.
func monitorLeak[T any](obj *T, r *resource, what string) {
	if r.leak == nil {
		return
	}
	r.leak.what = what
	ls := r.leak
	runtime.SetFinalizer(obj, func(*T) { ls.emit() })
}
