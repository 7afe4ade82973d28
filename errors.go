package glbind

import (
	"errors"
	"fmt"

	"github.com/gogpu/glbind/driver"
)

// Core errors. Every one of these reflects a programming error in call
// ordering or scope; none is transient and none is retried.
var (
	// ErrNotInitialized is returned when glbind is used before Init.
	ErrNotInitialized = errors.New("glbind: not initialized")

	// ErrNoActiveContext is returned when an operation requires an active
	// context and none is active.
	ErrNoActiveContext = errors.New("glbind: no active context")

	// ErrContextMismatch is returned when a resource handle is accessed
	// while the resource does not exist in the active context's scope.
	// Proceeding anyway would mutate binding state of an unrelated context,
	// so this is never recovered silently.
	ErrContextMismatch = errors.New("glbind: resource does not exist in the active context")

	// ErrUseAfterDestroy is returned when a handle is accessed after Destroy.
	ErrUseAfterDestroy = errors.New("glbind: resource has been destroyed")

	// ErrDoubleDestroy is returned when Destroy is called twice on the same
	// resource or context.
	ErrDoubleDestroy = errors.New("glbind: already destroyed")

	// ErrEmptyNamespace is returned when a shared namespace with no live
	// member contexts is asked for a representative context, typically when
	// a new context attempts to share with a fully destroyed group.
	ErrEmptyNamespace = errors.New("glbind: shared namespace has no live contexts")

	// ErrNotBound is returned by operations that require the receiver to be
	// the currently bound resource of its kind.
	ErrNotBound = errors.New("glbind: resource is not bound")

	// ErrNoIndexBuffer is returned when drawing from a vertex array that has
	// no index buffer attached.
	ErrNoIndexBuffer = errors.New("glbind: vertex array has no index buffer attached")
)

// CompileError reports a failed shader compilation.
// Log carries the driver's diagnostic text verbatim.
type CompileError struct {
	Stage driver.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glbind: %s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError reports a failed program link.
// Log carries the driver's diagnostic text verbatim.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glbind: program linking failed: %s", e.Log)
}
