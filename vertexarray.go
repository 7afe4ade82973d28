package glbind

import "github.com/gogpu/glbind/driver"

func init() {
	registerDefault(KindVertexArray, newDefaultVertexArray)
}

// VertexArray is a container object: besides being bindable itself, it
// remembers which index buffer is attached to it, because the element
// binding is part of the vertex array's own native state rather than
// global state. Vertex arrays are never shared between contexts.
type VertexArray struct {
	bindable
	index     *IndexBuffer
	isDefault bool
}

// NewVertexArray creates a vertex array under the active context.
func NewVertexArray() (*VertexArray, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.GenVertexArray()
	if err != nil {
		return nil, err
	}
	va := &VertexArray{}
	if err := va.initBindable(h, KindVertexArray); err != nil {
		return nil, err
	}
	monitorLeak(va, &va.resource, "VertexArray")
	return va, nil
}

// NewVertexArrayIndexed creates a vertex array with ib attached to it,
// leaving the previous vertex array binding intact.
func NewVertexArrayIndexed(ib *IndexBuffer) (*VertexArray, error) {
	va, err := NewVertexArray()
	if err != nil {
		return nil, err
	}
	if err := WithBound(va, func() error {
		return va.AttachIndexBuffer(ib)
	}); err != nil {
		return nil, err
	}
	return va, nil
}

// newDefaultVertexArray models the default (handle 0) vertex array a fresh
// context starts with. It is created and destroyed by its owning context.
func newDefaultVertexArray() (Bindable, error) {
	va := &VertexArray{isDefault: true}
	if err := va.initBindable(driver.DefaultObject, KindVertexArray); err != nil {
		return nil, err
	}
	return va, nil
}

// DefaultVertexArray returns the active context's default vertex array.
func DefaultVertexArray() (*VertexArray, error) {
	if active == nil {
		return nil, ErrNoActiveContext
	}
	return active.Default(KindVertexArray).(*VertexArray), nil
}

// IsDefault reports whether this is a context's default vertex array.
func (va *VertexArray) IsDefault() bool { return va.isDefault }

// Bind makes this vertex array the bound one. On an actual transition the
// element binding follows the container: the remembered index buffer is
// reinstated as the bound index buffer, or the element slot is cleared
// when nothing is attached. The native API restores the element binding
// itself as part of binding the container, so only the tables are updated
// here.
func (va *VertexArray) Bind() (bool, error) {
	changed, err := va.bind(va)
	if err != nil || !changed {
		return changed, err
	}
	if va.index != nil && va.index.Destroyed() {
		va.index = nil
	}
	if va.index != nil {
		setBound(KindElementArrayBuffer, va.index)
	} else {
		clearBound(KindElementArrayBuffer)
	}
	return true, nil
}

// Destroy releases the vertex array and clears any binding still
// referencing it. For a default vertex array the native release is a
// no-op; handle 0 is not deletable.
func (va *VertexArray) Destroy() error {
	return destroyBindable(va, func(d driver.Driver, h driver.Handle) error {
		if va.isDefault {
			return nil
		}
		return d.DeleteVertexArray(h)
	})
}

// AttachIndexBuffer binds ib and records it as this vertex array's
// attachment. The vertex array must currently be bound, because the native
// element binding lands in whichever container is bound.
func (va *VertexArray) AttachIndexBuffer(ib *IndexBuffer) error {
	if err := va.requireBound(); err != nil {
		return err
	}
	if _, err := ib.Bind(); err != nil {
		return err
	}
	va.index = ib
	return nil
}

// IndexBuffer returns the attached index buffer, or nil. The attachment is
// meaningful only while the vertex array is bound.
func (va *VertexArray) IndexBuffer() *IndexBuffer { return va.index }

// EnableAttrib enables the vertex attribute at index in this vertex array.
// The vertex array must be bound.
func (va *VertexArray) EnableAttrib(index uint32) error {
	if err := va.requireBound(); err != nil {
		return err
	}
	return drv.EnableVertexAttrib(index)
}

// DrawElements draws from the attached index buffer. The vertex array must
// be bound and must have an index buffer attached; count and element type
// come from the attachment.
func (va *VertexArray) DrawElements(mode driver.Primitive) error {
	if err := va.requireBound(); err != nil {
		return err
	}
	if va.index == nil {
		return ErrNoIndexBuffer
	}
	return va.index.DrawElements(mode)
}
