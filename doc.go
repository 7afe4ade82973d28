// Package glbind manages OpenGL contexts, resources and binding state.
//
// # Overview
//
// glbind tracks which GPU object is currently bound for each binding slot,
// scopes that state to a rendering context or to a group of contexts that
// share one object table, and clears stale bindings when objects are
// destroyed. OpenGL enforces these rules only at runtime, and often
// misbehaves silently when they are violated; glbind validates them
// eagerly and returns errors at the call site instead.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glbind"
//	    _ "github.com/gogpu/glbind/driver/glgl" // register the GLFW/OpenGL driver
//	)
//
//	if err := glbind.Init(); err != nil { ... }
//	defer glbind.Terminate()
//
//	ctx, err := glbind.NewContext(800, 600)
//	if err != nil { ... }
//	defer ctx.Destroy()
//
//	buf, err := glbind.NewBuffer(driver.UsageStaticDraw)
//	err = glbind.WithBound(buf, func() error {
//	    return buf.SetDataFloat32(vertices)
//	})
//
// # Contexts and sharing
//
// Exactly one Context is active process-wide at a time. Contexts created
// with ShareWith join the existing context's SharedNamespace: buffers,
// textures and programs created under any member are usable from every
// member, while vertex arrays always belong to the context that created
// them. Using a handle from a context outside its scope fails with
// ErrContextMismatch rather than corrupting unrelated state.
//
// # Binding state
//
// Each resource kind occupies its own binding slot. Binding slot 0 is the
// default object of the slot, a valid object in its own right; a context
// with no explicit binding for a kind reports its default resource (the
// default vertex array) as bound. WithBound gives scoped activation that
// restores the previous binding on every exit path.
//
// # Concurrency
//
// All context and binding state is thread-confined and unsynchronized: the
// underlying device context is only valid on the thread that holds it.
// Concurrent use from multiple goroutines is unsupported. Only process
// configuration (the logger slot, the driver registry, leak monitoring
// flags) is safe for concurrent access.
package glbind
