package glbind

import (
	"unsafe"

	"github.com/gogpu/glbind/driver"
)

// Buffer is a vertex attribute buffer (array buffer). Buffers are
// shareable: they live in the shared namespace of the context that created
// them and are usable from every member context.
//
// Lifecycle:
//  1. Create via NewBuffer (or NewBufferFloat32 with initial data)
//  2. Bind (or use WithBound) and upload with SetData
//  3. Destroy exactly once when no longer needed
type Buffer struct {
	bindable
	usage driver.BufferUsage
}

// NewBuffer creates an empty array buffer under the active context.
func NewBuffer(usage driver.BufferUsage) (*Buffer, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.GenBuffer()
	if err != nil {
		return nil, err
	}
	b := &Buffer{usage: usage}
	if err := b.initBindable(h, KindArrayBuffer); err != nil {
		return nil, err
	}
	monitorLeak(b, &b.resource, "Buffer")
	return b, nil
}

// NewBufferFloat32 creates an array buffer and uploads data, leaving the
// previous array buffer binding intact.
func NewBufferFloat32(data []float32, usage driver.BufferUsage) (*Buffer, error) {
	b, err := NewBuffer(usage)
	if err != nil {
		return nil, err
	}
	if err := WithBound(b, func() error {
		return b.SetDataFloat32(data)
	}); err != nil {
		return nil, err
	}
	return b, nil
}

// Bind makes this buffer the bound array buffer.
func (b *Buffer) Bind() (bool, error) { return b.bind(b) }

// Destroy releases the buffer and clears any binding still referencing it.
func (b *Buffer) Destroy() error {
	return destroyBindable(b, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteBuffer(h)
	})
}

// SetData uploads raw bytes to the buffer. The buffer must be bound.
func (b *Buffer) SetData(data []byte) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	return drv.BufferData(b.kind.bufferTarget(), data, b.usage)
}

// SetDataFloat32 uploads float32 vertex data to the buffer.
// The buffer must be bound.
func (b *Buffer) SetDataFloat32(data []float32) error {
	return b.SetData(floatBytes(data))
}

// VertexAttribPointer defines the layout of the vertex attribute at index
// as sourced from this buffer. The buffer must be bound, because the
// native call captures the buffer bound at the array slot.
func (b *Buffer) VertexAttribPointer(index uint32, size int, typ driver.ScalarType, normalized bool, stride, offset int) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	return drv.VertexAttribPointer(index, size, typ, normalized, stride, offset)
}

// UniformBuffer is a uniform block buffer. Like Buffer it is shareable.
type UniformBuffer struct {
	bindable
	usage driver.BufferUsage
}

// NewUniformBuffer creates an empty uniform buffer under the active context.
func NewUniformBuffer(usage driver.BufferUsage) (*UniformBuffer, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.GenBuffer()
	if err != nil {
		return nil, err
	}
	b := &UniformBuffer{usage: usage}
	if err := b.initBindable(h, KindUniformBuffer); err != nil {
		return nil, err
	}
	monitorLeak(b, &b.resource, "UniformBuffer")
	return b, nil
}

// Bind makes this buffer the bound uniform buffer.
func (b *UniformBuffer) Bind() (bool, error) { return b.bind(b) }

// Destroy releases the buffer and clears any binding still referencing it.
func (b *UniformBuffer) Destroy() error {
	return destroyBindable(b, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteBuffer(h)
	})
}

// SetData uploads raw bytes to the buffer. The buffer must be bound.
func (b *UniformBuffer) SetData(data []byte) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	return drv.BufferData(b.kind.bufferTarget(), data, b.usage)
}

// IndexElement constrains the element types an index buffer accepts.
type IndexElement interface {
	uint8 | uint16 | uint32
}

// IndexBuffer is an index (element array) buffer. The object itself is
// shareable, but its binding is part of the state of whichever vertex
// array is bound: binding an index buffer records it on the currently
// bound vertex array, and rebinding that vertex array reinstates it.
type IndexBuffer struct {
	bindable
	usage driver.BufferUsage
	count int
	elem  driver.IndexType
}

// NewIndexBuffer creates an index buffer and uploads data, leaving the
// previous element binding intact.
func NewIndexBuffer[T IndexElement](data []T, usage driver.BufferUsage) (*IndexBuffer, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.GenBuffer()
	if err != nil {
		return nil, err
	}
	b := &IndexBuffer{usage: usage}
	if err := b.initBindable(h, KindElementArrayBuffer); err != nil {
		return nil, err
	}
	monitorLeak(b, &b.resource, "IndexBuffer")
	if err := WithBound(b, func() error {
		return SetIndices(b, data)
	}); err != nil {
		return nil, err
	}
	return b, nil
}

// SetIndices uploads index data to b, recording its length and element
// type for draw calls. The buffer must be bound.
func SetIndices[T IndexElement](b *IndexBuffer, data []T) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	if err := drv.BufferData(b.kind.bufferTarget(), indexBytes(data), b.usage); err != nil {
		return err
	}
	b.count = len(data)
	b.elem = indexTypeOf[T]()
	return nil
}

// Bind makes this buffer the bound index buffer. On an actual transition
// the currently bound vertex array remembers this buffer as its
// attachment, because the element binding is container state natively.
func (b *IndexBuffer) Bind() (bool, error) {
	changed, err := b.bind(b)
	if err != nil || !changed {
		return changed, err
	}
	if va, ok := currentBound(KindVertexArray).(*VertexArray); ok {
		va.index = b
	}
	return true, nil
}

// Destroy releases the buffer and clears any binding still referencing it.
func (b *IndexBuffer) Destroy() error {
	return destroyBindable(b, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteBuffer(h)
	})
}

// Len returns the number of indices uploaded.
func (b *IndexBuffer) Len() int { return b.count }

// IndexType returns the element type of the uploaded indices.
func (b *IndexBuffer) IndexType() driver.IndexType { return b.elem }

// DrawElements draws the buffer's indices with the given primitive
// topology. The buffer must be bound.
func (b *IndexBuffer) DrawElements(mode driver.Primitive) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	return drv.DrawElements(mode, b.count, b.elem)
}

// indexTypeOf maps an index element type to its driver enum.
func indexTypeOf[T IndexElement]() driver.IndexType {
	var z T
	switch any(z).(type) {
	case uint8:
		return driver.IndexUint8
	case uint16:
		return driver.IndexUint16
	default:
		return driver.IndexUint32
	}
}

// indexBytes views index data as raw bytes without copying.
func indexBytes[T IndexElement](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var z T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(z)))
}

// floatBytes views float32 data as raw bytes without copying.
func floatBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}
