// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Common driver errors.
var (
	// ErrNotAvailable is returned when no usable driver is registered.
	ErrNotAvailable = errors.New("driver: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("driver: not initialized")

	// ErrUnknownContext is returned for operations on a context handle the
	// driver did not create or has already destroyed.
	ErrUnknownContext = errors.New("driver: unknown context handle")

	// ErrUnknownHandle is returned for operations on an object handle that
	// does not exist in the object table of the current context.
	ErrUnknownHandle = errors.New("driver: unknown object handle")

	// ErrNoCurrentContext is returned when an object operation is issued
	// while no context is current.
	ErrNoCurrentContext = errors.New("driver: no current context")
)

// ContextConfig describes parameters for creating a native context.
type ContextConfig struct {
	// Width is the framebuffer width in pixels.
	Width int

	// Height is the framebuffer height in pixels.
	Height int

	// Title is an optional window title for windowed drivers.
	Title string

	// Hidden requests an invisible surface (offscreen/testing use).
	Hidden bool

	// MSAA is the multisample count. Use 1 for no multisampling.
	MSAA int

	// ShareWith is an existing context whose object table the new context
	// joins, or InvalidContext to start an independent object table.
	ShareWith ContextHandle
}

// Driver abstracts the native windowing and graphics stack.
//
// Resource lifecycle:
//   - Objects are created via Gen*/Create* methods under the current context
//   - Objects must be explicitly released via Delete* methods
//   - Handles become invalid after deletion and must not be reused
//
// Object operations act on the current context set by MakeCurrent. Drivers
// do not validate cross-context handle use beyond what the native API does;
// that enforcement is the caller's responsibility.
//
// Drivers are not safe for concurrent use. The native context model ties
// all calls to the thread that holds the current context.
type Driver interface {
	// Name returns the driver identifier (e.g. "glgl", "headless").
	Name() string

	// Init initializes the native stack.
	// It must be called before any other method.
	Init() error

	// Terminate releases the native stack.
	// The driver must not be used after Terminate.
	Terminate()

	// CreateContext creates a native rendering context.
	// The new context is not made current.
	CreateContext(cfg ContextConfig) (ContextHandle, error)

	// MakeCurrent makes the given context current for the calling thread.
	// Passing InvalidContext detaches the thread from any context.
	MakeCurrent(ctx ContextHandle) error

	// DestroyContext destroys a native context and its non-shared objects.
	DestroyContext(ctx ContextHandle) error

	// GenBuffer allocates a buffer object in the current object table.
	GenBuffer() (Handle, error)

	// BindBuffer binds a buffer to the given slot. Handle 0 binds the
	// default object, leaving the slot without a user buffer.
	BindBuffer(target BufferTarget, h Handle) error

	// DeleteBuffer releases a buffer object.
	DeleteBuffer(h Handle) error

	// BufferData uploads data to the buffer bound at target.
	BufferData(target BufferTarget, data []byte, usage BufferUsage) error

	// GenVertexArray allocates a vertex array object. Vertex arrays are
	// container objects and always live in the creating context only.
	GenVertexArray() (Handle, error)

	// BindVertexArray binds a vertex array object.
	BindVertexArray(h Handle) error

	// DeleteVertexArray releases a vertex array object.
	DeleteVertexArray(h Handle) error

	// EnableVertexAttrib enables the vertex attribute at index in the
	// currently bound vertex array.
	EnableVertexAttrib(index uint32) error

	// VertexAttribPointer defines the layout of the vertex attribute at
	// index, sourced from the buffer bound at TargetArrayBuffer.
	VertexAttribPointer(index uint32, size int, typ ScalarType, normalized bool, stride, offset int) error

	// GenTexture allocates a texture object.
	GenTexture() (Handle, error)

	// BindTexture binds a 2D texture object.
	BindTexture(h Handle) error

	// DeleteTexture releases a texture object.
	DeleteTexture(h Handle) error

	// TexImage2D uploads pixel data to the currently bound 2D texture.
	TexImage2D(width, height int, format gputypes.TextureFormat, pixels []byte) error

	// CreateShader creates a shader object for the given stage.
	CreateShader(stage ShaderStage) (Handle, error)

	// DeleteShader releases a shader object.
	DeleteShader(h Handle) error

	// CompileShader compiles source into the shader object. A failed
	// compilation is not an error at the driver level: ok reports the
	// compile status and log carries the driver's diagnostic text.
	CompileShader(h Handle, source string) (ok bool, log string, err error)

	// CreateProgram creates an empty program object.
	CreateProgram() (Handle, error)

	// DeleteProgram releases a program object.
	DeleteProgram(h Handle) error

	// AttachShader attaches a compiled shader to a program.
	AttachShader(program, shader Handle) error

	// DetachShader detaches a shader from a program.
	DetachShader(program, shader Handle) error

	// LinkProgram links the attached shaders into an executable program.
	// Like CompileShader, link failure is reported via ok and log.
	LinkProgram(h Handle) (ok bool, log string, err error)

	// UseProgram installs a program as part of the rendering state.
	// Handle 0 uninstalls any current program.
	UseProgram(h Handle) error

	// DrawElements draws count indices of the given type from the index
	// buffer bound in the current vertex array.
	DrawElements(mode Primitive, count int, typ IndexType) error

	// Clear clears the color buffer of the current context.
	Clear(r, g, b, a float32) error

	// Viewport sets the viewport of the current context.
	Viewport(x, y, width, height int) error
}
