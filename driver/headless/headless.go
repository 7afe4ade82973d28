// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless provides a pure-Go driver implementation.
//
// The headless driver keeps all object tables and binding state in memory
// and performs no native calls. It serves two roles: a software fallback
// when no GL stack is present, and a test double whose state can be
// inspected after the fact.
package headless

import (
	"fmt"
	"strings"

	"github.com/gogpu/glbind/driver"
	"github.com/gogpu/gputypes"
)

// Name is the registry name of the headless driver.
const Name = "headless"

// Priority is the registry priority of the headless driver. It is the
// lowest of the built-in drivers so that real drivers win when usable.
const Priority = 10

func init() {
	driver.Register(Name, Priority, func() driver.Driver { return New() }, nil)
}

// sharedObjects is one object table, shared by every context created with
// ShareWith pointing into the group. Vertex arrays are container objects
// and deliberately live per-context instead.
type sharedObjects struct {
	buffers  map[driver.Handle]*bufferState
	textures map[driver.Handle]*textureState
	shaders  map[driver.Handle]*shaderState
	programs map[driver.Handle]*programState
}

func newSharedObjects() *sharedObjects {
	return &sharedObjects{
		buffers:  make(map[driver.Handle]*bufferState),
		textures: make(map[driver.Handle]*textureState),
		shaders:  make(map[driver.Handle]*shaderState),
		programs: make(map[driver.Handle]*programState),
	}
}

type bufferState struct {
	data  []byte
	usage driver.BufferUsage
}

type textureState struct {
	width, height int
	format        gputypes.TextureFormat
	pixels        []byte
}

type shaderState struct {
	stage    driver.ShaderStage
	source   string
	compiled bool
}

type programState struct {
	attached map[driver.Handle]struct{}
	linked   bool
}

type contextState struct {
	cfg     driver.ContextConfig
	objects *sharedObjects

	vaos map[driver.Handle]struct{}

	// Per-context binding slots, handle 0 meaning the default object.
	// The element-array slot is not here: it is vertex array state, not
	// context state, and lives in elemByVAO.
	bufferBindings map[driver.BufferTarget]driver.Handle
	boundVAO       driver.Handle
	boundTexture   driver.Handle
	activeProgram  driver.Handle

	// elemByVAO holds the element-array binding of each vertex array,
	// keyed by vertex array handle (handle 0, the default vertex array,
	// included). Rebinding a vertex array brings its slot back.
	elemByVAO map[driver.Handle]driver.Handle
}

// boundBuffer returns the buffer bound at target, reading the element
// slot through the bound vertex array.
func (c *contextState) boundBuffer(target driver.BufferTarget) driver.Handle {
	if target == driver.TargetElementArrayBuffer {
		return c.elemByVAO[c.boundVAO]
	}
	return c.bufferBindings[target]
}

// setBoundBuffer records a buffer binding, writing the element slot
// through the bound vertex array.
func (c *contextState) setBoundBuffer(target driver.BufferTarget, h driver.Handle) {
	if target == driver.TargetElementArrayBuffer {
		c.elemByVAO[c.boundVAO] = h
		return
	}
	c.bufferBindings[target] = h
}

// DrawCall records the parameters of a DrawElements call.
type DrawCall struct {
	Mode  driver.Primitive
	Count int
	Type  driver.IndexType
}

// Driver is an in-memory driver.Driver implementation.
type Driver struct {
	initialized bool
	nextCtx     driver.ContextHandle
	nextHandle  driver.Handle
	contexts    map[driver.ContextHandle]*contextState
	current     driver.ContextHandle

	lastDraw *DrawCall
	cleared  [4]float32
}

// New creates an uninitialized headless driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the driver identifier.
func (d *Driver) Name() string { return Name }

// Init initializes the driver.
func (d *Driver) Init() error {
	d.contexts = make(map[driver.ContextHandle]*contextState)
	d.current = driver.InvalidContext
	d.initialized = true
	return nil
}

// Terminate releases all state.
func (d *Driver) Terminate() {
	d.contexts = nil
	d.current = driver.InvalidContext
	d.lastDraw = nil
	d.initialized = false
}

// CreateContext creates an in-memory context. When cfg.ShareWith names an
// existing context, the new context joins its object table.
func (d *Driver) CreateContext(cfg driver.ContextConfig) (driver.ContextHandle, error) {
	if !d.initialized {
		return driver.InvalidContext, driver.ErrNotInitialized
	}
	var objects *sharedObjects
	if cfg.ShareWith != driver.InvalidContext {
		share, ok := d.contexts[cfg.ShareWith]
		if !ok {
			return driver.InvalidContext, driver.ErrUnknownContext
		}
		objects = share.objects
	} else {
		objects = newSharedObjects()
	}
	d.nextCtx++
	h := d.nextCtx
	d.contexts[h] = &contextState{
		cfg:            cfg,
		objects:        objects,
		vaos:           make(map[driver.Handle]struct{}),
		bufferBindings: make(map[driver.BufferTarget]driver.Handle),
		elemByVAO:      make(map[driver.Handle]driver.Handle),
	}
	return h, nil
}

// MakeCurrent switches the current context.
func (d *Driver) MakeCurrent(ctx driver.ContextHandle) error {
	if !d.initialized {
		return driver.ErrNotInitialized
	}
	if ctx != driver.InvalidContext {
		if _, ok := d.contexts[ctx]; !ok {
			return driver.ErrUnknownContext
		}
	}
	d.current = ctx
	return nil
}

// DestroyContext destroys a context.
func (d *Driver) DestroyContext(ctx driver.ContextHandle) error {
	if !d.initialized {
		return driver.ErrNotInitialized
	}
	if _, ok := d.contexts[ctx]; !ok {
		return driver.ErrUnknownContext
	}
	delete(d.contexts, ctx)
	if d.current == ctx {
		d.current = driver.InvalidContext
	}
	return nil
}

func (d *Driver) cur() (*contextState, error) {
	if !d.initialized {
		return nil, driver.ErrNotInitialized
	}
	if d.current == driver.InvalidContext {
		return nil, driver.ErrNoCurrentContext
	}
	return d.contexts[d.current], nil
}

func (d *Driver) alloc() driver.Handle {
	d.nextHandle++
	return d.nextHandle
}

// GenBuffer allocates a buffer object.
func (d *Driver) GenBuffer() (driver.Handle, error) {
	c, err := d.cur()
	if err != nil {
		return 0, err
	}
	h := d.alloc()
	c.objects.buffers[h] = &bufferState{}
	return h, nil
}

// BindBuffer binds a buffer to a slot.
func (d *Driver) BindBuffer(target driver.BufferTarget, h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if h != driver.DefaultObject {
		if _, ok := c.objects.buffers[h]; !ok {
			return fmt.Errorf("%w: buffer %d", driver.ErrUnknownHandle, h)
		}
	}
	c.setBoundBuffer(target, h)
	return nil
}

// DeleteBuffer releases a buffer object and clears any current binding of it.
func (d *Driver) DeleteBuffer(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if _, ok := c.objects.buffers[h]; !ok {
		return fmt.Errorf("%w: buffer %d", driver.ErrUnknownHandle, h)
	}
	delete(c.objects.buffers, h)
	for target, bound := range c.bufferBindings {
		if bound == h {
			c.bufferBindings[target] = driver.DefaultObject
		}
	}
	if c.elemByVAO[c.boundVAO] == h {
		c.elemByVAO[c.boundVAO] = driver.DefaultObject
	}
	return nil
}

// BufferData uploads data to the buffer bound at target.
func (d *Driver) BufferData(target driver.BufferTarget, data []byte, usage driver.BufferUsage) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	h := c.boundBuffer(target)
	if h == driver.DefaultObject {
		return fmt.Errorf("%w: no buffer bound at %s", driver.ErrUnknownHandle, target)
	}
	b, ok := c.objects.buffers[h]
	if !ok {
		return fmt.Errorf("%w: buffer %d", driver.ErrUnknownHandle, h)
	}
	b.data = append([]byte(nil), data...)
	b.usage = usage
	return nil
}

// GenVertexArray allocates a vertex array object in the current context.
func (d *Driver) GenVertexArray() (driver.Handle, error) {
	c, err := d.cur()
	if err != nil {
		return 0, err
	}
	h := d.alloc()
	c.vaos[h] = struct{}{}
	return h, nil
}

// BindVertexArray binds a vertex array object.
func (d *Driver) BindVertexArray(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if h != driver.DefaultObject {
		if _, ok := c.vaos[h]; !ok {
			return fmt.Errorf("%w: vertex array %d", driver.ErrUnknownHandle, h)
		}
	}
	c.boundVAO = h
	return nil
}

// DeleteVertexArray releases a vertex array object.
func (d *Driver) DeleteVertexArray(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if _, ok := c.vaos[h]; !ok {
		return fmt.Errorf("%w: vertex array %d", driver.ErrUnknownHandle, h)
	}
	delete(c.vaos, h)
	delete(c.elemByVAO, h)
	if c.boundVAO == h {
		c.boundVAO = driver.DefaultObject
	}
	return nil
}

// EnableVertexAttrib is recorded as a no-op.
func (d *Driver) EnableVertexAttrib(index uint32) error {
	_, err := d.cur()
	return err
}

// VertexAttribPointer is recorded as a no-op beyond validation.
func (d *Driver) VertexAttribPointer(index uint32, size int, typ driver.ScalarType, normalized bool, stride, offset int) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if c.bufferBindings[driver.TargetArrayBuffer] == driver.DefaultObject {
		return fmt.Errorf("%w: no array buffer bound", driver.ErrUnknownHandle)
	}
	return nil
}

// GenTexture allocates a texture object.
func (d *Driver) GenTexture() (driver.Handle, error) {
	c, err := d.cur()
	if err != nil {
		return 0, err
	}
	h := d.alloc()
	c.objects.textures[h] = &textureState{}
	return h, nil
}

// BindTexture binds a texture object.
func (d *Driver) BindTexture(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if h != driver.DefaultObject {
		if _, ok := c.objects.textures[h]; !ok {
			return fmt.Errorf("%w: texture %d", driver.ErrUnknownHandle, h)
		}
	}
	c.boundTexture = h
	return nil
}

// DeleteTexture releases a texture object.
func (d *Driver) DeleteTexture(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if _, ok := c.objects.textures[h]; !ok {
		return fmt.Errorf("%w: texture %d", driver.ErrUnknownHandle, h)
	}
	delete(c.objects.textures, h)
	if c.boundTexture == h {
		c.boundTexture = driver.DefaultObject
	}
	return nil
}

// TexImage2D stores pixel data in the currently bound texture.
func (d *Driver) TexImage2D(width, height int, format gputypes.TextureFormat, pixels []byte) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	h := c.boundTexture
	if h == driver.DefaultObject {
		return fmt.Errorf("%w: no texture bound", driver.ErrUnknownHandle)
	}
	t := c.objects.textures[h]
	t.width = width
	t.height = height
	t.format = format
	t.pixels = append([]byte(nil), pixels...)
	return nil
}

// CreateShader creates a shader object.
func (d *Driver) CreateShader(stage driver.ShaderStage) (driver.Handle, error) {
	c, err := d.cur()
	if err != nil {
		return 0, err
	}
	h := d.alloc()
	c.objects.shaders[h] = &shaderState{stage: stage}
	return h, nil
}

// DeleteShader releases a shader object.
func (d *Driver) DeleteShader(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if _, ok := c.objects.shaders[h]; !ok {
		return fmt.Errorf("%w: shader %d", driver.ErrUnknownHandle, h)
	}
	delete(c.objects.shaders, h)
	return nil
}

// CompileShader compiles a shader. Sources containing the token "#error"
// fail compilation with a GLSL-style diagnostic, which gives tests a
// deterministic failure path.
func (d *Driver) CompileShader(h driver.Handle, source string) (bool, string, error) {
	c, err := d.cur()
	if err != nil {
		return false, "", err
	}
	s, ok := c.objects.shaders[h]
	if !ok {
		return false, "", fmt.Errorf("%w: shader %d", driver.ErrUnknownHandle, h)
	}
	s.source = source
	if strings.Contains(source, "#error") {
		s.compiled = false
		return false, "0:1(1): error: #error directive", nil
	}
	s.compiled = true
	return true, "", nil
}

// CreateProgram creates an empty program object.
func (d *Driver) CreateProgram() (driver.Handle, error) {
	c, err := d.cur()
	if err != nil {
		return 0, err
	}
	h := d.alloc()
	c.objects.programs[h] = &programState{attached: make(map[driver.Handle]struct{})}
	return h, nil
}

// DeleteProgram releases a program object.
func (d *Driver) DeleteProgram(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if _, ok := c.objects.programs[h]; !ok {
		return fmt.Errorf("%w: program %d", driver.ErrUnknownHandle, h)
	}
	delete(c.objects.programs, h)
	if c.activeProgram == h {
		c.activeProgram = driver.DefaultObject
	}
	return nil
}

// AttachShader attaches a shader to a program.
func (d *Driver) AttachShader(program, shader driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	p, ok := c.objects.programs[program]
	if !ok {
		return fmt.Errorf("%w: program %d", driver.ErrUnknownHandle, program)
	}
	if _, ok := c.objects.shaders[shader]; !ok {
		return fmt.Errorf("%w: shader %d", driver.ErrUnknownHandle, shader)
	}
	p.attached[shader] = struct{}{}
	return nil
}

// DetachShader detaches a shader from a program.
func (d *Driver) DetachShader(program, shader driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	p, ok := c.objects.programs[program]
	if !ok {
		return fmt.Errorf("%w: program %d", driver.ErrUnknownHandle, program)
	}
	delete(p.attached, shader)
	return nil
}

// LinkProgram links a program. Linking fails when no shaders are attached
// or when any attached shader failed compilation.
func (d *Driver) LinkProgram(h driver.Handle) (bool, string, error) {
	c, err := d.cur()
	if err != nil {
		return false, "", err
	}
	p, ok := c.objects.programs[h]
	if !ok {
		return false, "", fmt.Errorf("%w: program %d", driver.ErrUnknownHandle, h)
	}
	if len(p.attached) == 0 {
		return false, "error: no shaders attached to the program object", nil
	}
	for sh := range p.attached {
		if s, ok := c.objects.shaders[sh]; ok && !s.compiled {
			return false, "error: attached shader is not successfully compiled", nil
		}
	}
	p.linked = true
	return true, "", nil
}

// UseProgram installs a program.
func (d *Driver) UseProgram(h driver.Handle) error {
	c, err := d.cur()
	if err != nil {
		return err
	}
	if h != driver.DefaultObject {
		if _, ok := c.objects.programs[h]; !ok {
			return fmt.Errorf("%w: program %d", driver.ErrUnknownHandle, h)
		}
	}
	c.activeProgram = h
	return nil
}

// DrawElements records a draw call.
func (d *Driver) DrawElements(mode driver.Primitive, count int, typ driver.IndexType) error {
	_, err := d.cur()
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("headless: negative index count %d", count)
	}
	d.lastDraw = &DrawCall{Mode: mode, Count: count, Type: typ}
	return nil
}

// Clear records a clear color.
func (d *Driver) Clear(r, g, b, a float32) error {
	_, err := d.cur()
	if err != nil {
		return err
	}
	d.cleared = [4]float32{r, g, b, a}
	return nil
}

// Viewport is recorded as a no-op.
func (d *Driver) Viewport(x, y, width, height int) error {
	_, err := d.cur()
	return err
}

// Inspection helpers for tests.

// CurrentContext returns the handle made current last, or InvalidContext.
func (d *Driver) CurrentContext() driver.ContextHandle { return d.current }

// BoundBuffer returns the buffer bound at target in the current context.
func (d *Driver) BoundBuffer(target driver.BufferTarget) driver.Handle {
	c, err := d.cur()
	if err != nil {
		return driver.DefaultObject
	}
	return c.boundBuffer(target)
}

// BoundVertexArray returns the vertex array bound in the current context.
func (d *Driver) BoundVertexArray() driver.Handle {
	c, err := d.cur()
	if err != nil {
		return driver.DefaultObject
	}
	return c.boundVAO
}

// BoundTexture returns the texture bound in the current context.
func (d *Driver) BoundTexture() driver.Handle {
	c, err := d.cur()
	if err != nil {
		return driver.DefaultObject
	}
	return c.boundTexture
}

// ActiveProgram returns the program installed in the current context.
func (d *Driver) ActiveProgram() driver.Handle {
	c, err := d.cur()
	if err != nil {
		return driver.DefaultObject
	}
	return c.activeProgram
}

// LastDraw returns the most recent draw call, or nil if none was issued.
func (d *Driver) LastDraw() *DrawCall { return d.lastDraw }

// ClearColor returns the color of the most recent Clear call.
func (d *Driver) ClearColor() [4]float32 { return d.cleared }

// LiveObjects returns the number of objects alive in the current context's
// object table, vertex arrays included.
func (d *Driver) LiveObjects() int {
	c, err := d.cur()
	if err != nil {
		return 0
	}
	o := c.objects
	return len(o.buffers) + len(o.textures) + len(o.shaders) + len(o.programs) + len(c.vaos)
}
