// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glgl provides the production driver on GLFW and OpenGL 3.3 core.
//
// Importing the package registers the driver. On machines without a
// display glfw initialization fails, and glbind.Init falls through to the
// next registered driver.
package glgl

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glbind/driver"
	"github.com/gogpu/gputypes"
)

// Name is the registry name of the glgl driver.
const Name = "glgl"

// Priority is the registry priority of the glgl driver.
const Priority = 100

func init() {
	driver.Register(Name, Priority, func() driver.Driver { return New() }, nil)
}

// Driver implements driver.Driver on GLFW windows and OpenGL 3.3 core.
type Driver struct {
	initialized bool
	loaded      bool // gl function pointers loaded
	nextCtx     driver.ContextHandle
	windows     map[driver.ContextHandle]*glfw.Window
}

// New creates an uninitialized glgl driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the driver identifier.
func (d *Driver) Name() string { return Name }

// Init initializes GLFW and pins the calling goroutine to its OS thread;
// the native context model requires all subsequent calls from this thread.
func (d *Driver) Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glgl: initializing glfw: %w", err)
	}
	d.windows = make(map[driver.ContextHandle]*glfw.Window)
	d.initialized = true
	return nil
}

// Terminate destroys all remaining windows and shuts down GLFW.
func (d *Driver) Terminate() {
	for _, w := range d.windows {
		w.Destroy()
	}
	d.windows = nil
	glfw.Terminate()
	d.loaded = false
	d.initialized = false
}

// CreateContext creates a GLFW window with a 3.3 core profile context.
func (d *Driver) CreateContext(cfg driver.ContextConfig) (driver.ContextHandle, error) {
	if !d.initialized {
		return driver.InvalidContext, driver.ErrNotInitialized
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.MSAA > 1 {
		glfw.WindowHint(glfw.Samples, cfg.MSAA)
	}
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	var share *glfw.Window
	if cfg.ShareWith != driver.InvalidContext {
		w, ok := d.windows[cfg.ShareWith]
		if !ok {
			return driver.InvalidContext, driver.ErrUnknownContext
		}
		share = w
	}

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, share)
	if err != nil {
		return driver.InvalidContext, fmt.Errorf("glgl: creating window: %w", err)
	}
	d.nextCtx++
	h := d.nextCtx
	d.windows[h] = w
	return h, nil
}

// MakeCurrent makes the window's context current on the calling thread and
// loads the GL function pointers on first use.
func (d *Driver) MakeCurrent(ctx driver.ContextHandle) error {
	if !d.initialized {
		return driver.ErrNotInitialized
	}
	if ctx == driver.InvalidContext {
		glfw.DetachCurrentContext()
		return nil
	}
	w, ok := d.windows[ctx]
	if !ok {
		return driver.ErrUnknownContext
	}
	w.MakeContextCurrent()
	if !d.loaded {
		if err := gl.Init(); err != nil {
			return fmt.Errorf("glgl: loading GL functions: %w", err)
		}
		d.loaded = true
	}
	return nil
}

// DestroyContext destroys the window and its context.
func (d *Driver) DestroyContext(ctx driver.ContextHandle) error {
	w, ok := d.windows[ctx]
	if !ok {
		return driver.ErrUnknownContext
	}
	w.Destroy()
	delete(d.windows, ctx)
	return nil
}

// Window returns the GLFW window backing ctx, for event-loop integration
// (polling, swap, close handling) that is outside the driver interface.
func (d *Driver) Window(ctx driver.ContextHandle) (*glfw.Window, bool) {
	w, ok := d.windows[ctx]
	return w, ok
}

// PollEvents processes pending window events.
func (d *Driver) PollEvents() { glfw.PollEvents() }

// SwapBuffers presents the back buffer of ctx.
func (d *Driver) SwapBuffers(ctx driver.ContextHandle) error {
	w, ok := d.windows[ctx]
	if !ok {
		return driver.ErrUnknownContext
	}
	w.SwapBuffers()
	return nil
}

// ShouldClose reports whether the window of ctx was asked to close.
func (d *Driver) ShouldClose(ctx driver.ContextHandle) bool {
	w, ok := d.windows[ctx]
	return ok && w.ShouldClose()
}

// GenBuffer allocates a buffer object.
func (d *Driver) GenBuffer() (driver.Handle, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	return driver.Handle(id), nil
}

// BindBuffer binds a buffer to a slot.
func (d *Driver) BindBuffer(target driver.BufferTarget, h driver.Handle) error {
	gl.BindBuffer(bufferTarget(target), uint32(h))
	return nil
}

// DeleteBuffer releases a buffer object.
func (d *Driver) DeleteBuffer(h driver.Handle) error {
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
	return nil
}

// BufferData uploads data to the buffer bound at target.
func (d *Driver) BufferData(target driver.BufferTarget, data []byte, usage driver.BufferUsage) error {
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(data), bufferUsage(usage))
	return nil
}

// GenVertexArray allocates a vertex array object.
func (d *Driver) GenVertexArray() (driver.Handle, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return driver.Handle(id), nil
}

// BindVertexArray binds a vertex array object.
func (d *Driver) BindVertexArray(h driver.Handle) error {
	gl.BindVertexArray(uint32(h))
	return nil
}

// DeleteVertexArray releases a vertex array object.
func (d *Driver) DeleteVertexArray(h driver.Handle) error {
	id := uint32(h)
	gl.DeleteVertexArrays(1, &id)
	return nil
}

// EnableVertexAttrib enables a vertex attribute in the bound vertex array.
func (d *Driver) EnableVertexAttrib(index uint32) error {
	gl.EnableVertexAttribArray(index)
	return nil
}

// VertexAttribPointer defines a vertex attribute layout.
func (d *Driver) VertexAttribPointer(index uint32, size int, typ driver.ScalarType, normalized bool, stride, offset int) error {
	gl.VertexAttribPointerWithOffset(index, int32(size), scalarType(typ), normalized, int32(stride), uintptr(offset))
	return nil
}

// GenTexture allocates a texture object.
func (d *Driver) GenTexture() (driver.Handle, error) {
	var id uint32
	gl.GenTextures(1, &id)
	return driver.Handle(id), nil
}

// BindTexture binds a 2D texture object.
func (d *Driver) BindTexture(h driver.Handle) error {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
	return nil
}

// DeleteTexture releases a texture object.
func (d *Driver) DeleteTexture(h driver.Handle) error {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
	return nil
}

// TexImage2D uploads pixel data to the bound 2D texture.
func (d *Driver) TexImage2D(width, height int, format gputypes.TextureFormat, pixels []byte) error {
	internal, external, err := textureFormat(format)
	if err != nil {
		return err
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, external, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return nil
}

// CreateShader creates a shader object.
func (d *Driver) CreateShader(stage driver.ShaderStage) (driver.Handle, error) {
	var xtype uint32
	switch stage {
	case driver.StageVertex:
		xtype = gl.VERTEX_SHADER
	case driver.StageFragment:
		xtype = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("glgl: unsupported shader stage %s", stage)
	}
	return driver.Handle(gl.CreateShader(xtype)), nil
}

// DeleteShader releases a shader object.
func (d *Driver) DeleteShader(h driver.Handle) error {
	gl.DeleteShader(uint32(h))
	return nil
}

// CompileShader compiles source into the shader object.
func (d *Driver) CompileShader(h driver.Handle, source string) (bool, string, error) {
	id := uint32(h)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, "", nil
	}
	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(id, logLen, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00"), nil
}

// CreateProgram creates an empty program object.
func (d *Driver) CreateProgram() (driver.Handle, error) {
	return driver.Handle(gl.CreateProgram()), nil
}

// DeleteProgram releases a program object.
func (d *Driver) DeleteProgram(h driver.Handle) error {
	gl.DeleteProgram(uint32(h))
	return nil
}

// AttachShader attaches a shader to a program.
func (d *Driver) AttachShader(program, shader driver.Handle) error {
	gl.AttachShader(uint32(program), uint32(shader))
	return nil
}

// DetachShader detaches a shader from a program.
func (d *Driver) DetachShader(program, shader driver.Handle) error {
	gl.DetachShader(uint32(program), uint32(shader))
	return nil
}

// LinkProgram links the attached shaders.
func (d *Driver) LinkProgram(h driver.Handle) (bool, string, error) {
	id := uint32(h)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, "", nil
	}
	var logLen int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(id, logLen, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00"), nil
}

// UseProgram installs a program.
func (d *Driver) UseProgram(h driver.Handle) error {
	gl.UseProgram(uint32(h))
	return nil
}

// DrawElements draws from the bound index buffer.
func (d *Driver) DrawElements(mode driver.Primitive, count int, typ driver.IndexType) error {
	gl.DrawElementsWithOffset(primitive(mode), int32(count), indexType(typ), 0)
	return nil
}

// Clear clears the color buffer.
func (d *Driver) Clear(r, g, b, a float32) error {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

// Viewport sets the viewport.
func (d *Driver) Viewport(x, y, width, height int) error {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
	return nil
}

func bufferTarget(t driver.BufferTarget) uint32 {
	switch t {
	case driver.TargetElementArrayBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	case driver.TargetUniformBuffer:
		return gl.UNIFORM_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

func bufferUsage(u driver.BufferUsage) uint32 {
	switch u {
	case driver.UsageStaticDraw:
		return gl.STATIC_DRAW
	case driver.UsageStreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.DYNAMIC_DRAW
	}
}

func primitive(p driver.Primitive) uint32 {
	switch p {
	case driver.Points:
		return gl.POINTS
	case driver.Lines:
		return gl.LINES
	case driver.LineLoop:
		return gl.LINE_LOOP
	case driver.LineStrip:
		return gl.LINE_STRIP
	case driver.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case driver.TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func indexType(t driver.IndexType) uint32 {
	switch t {
	case driver.IndexUint8:
		return gl.UNSIGNED_BYTE
	case driver.IndexUint16:
		return gl.UNSIGNED_SHORT
	default:
		return gl.UNSIGNED_INT
	}
}

func scalarType(t driver.ScalarType) uint32 {
	switch t {
	case driver.ScalarInt8:
		return gl.BYTE
	case driver.ScalarUint8:
		return gl.UNSIGNED_BYTE
	case driver.ScalarInt16:
		return gl.SHORT
	case driver.ScalarUint16:
		return gl.UNSIGNED_SHORT
	case driver.ScalarInt32:
		return gl.INT
	case driver.ScalarUint32:
		return gl.UNSIGNED_INT
	case driver.ScalarFloat16:
		return gl.HALF_FLOAT
	case driver.ScalarFloat64:
		return gl.DOUBLE
	default:
		return gl.FLOAT
	}
}

func textureFormat(f gputypes.TextureFormat) (internal int32, external uint32, err error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA8, gl.RGBA, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, gl.BGRA, nil
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, gl.RED, nil
	default:
		return 0, 0, fmt.Errorf("glgl: unsupported texture format %v", f)
	}
}
