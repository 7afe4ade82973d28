// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import "fmt"

// Resource handles
//
// These opaque handles identify native resources. A Handle is the GL
// object name as returned by the glGen*/glCreate* family; name 0 is the
// default object for every binding slot, which is itself a valid,
// bindable object rather than a null value. A ContextHandle identifies a
// native rendering context; each driver maintains the mapping between
// handles and its own context representation.

// Handle is an opaque handle to a native GPU object.
// Handle 0 is the default (zero) object of the relevant binding slot.
type Handle uint32

// DefaultObject is the handle of the per-slot default object.
const DefaultObject Handle = 0

// ContextHandle is an opaque handle to a native rendering context.
type ContextHandle uint64

// InvalidContext is the zero value, representing no context. Passing it
// to MakeCurrent detaches the calling thread from any context.
const InvalidContext ContextHandle = 0

// BufferTarget selects the buffer binding slot a buffer is bound to.
type BufferTarget uint32

const (
	// TargetArrayBuffer is the vertex attribute buffer slot.
	TargetArrayBuffer BufferTarget = iota + 1
	// TargetElementArrayBuffer is the index buffer slot.
	TargetElementArrayBuffer
	// TargetUniformBuffer is the uniform block buffer slot.
	TargetUniformBuffer
)

// String returns the string representation of BufferTarget.
func (t BufferTarget) String() string {
	switch t {
	case TargetArrayBuffer:
		return "ArrayBuffer"
	case TargetElementArrayBuffer:
		return "ElementArrayBuffer"
	case TargetUniformBuffer:
		return "UniformBuffer"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// BufferUsage hints how buffer data will be accessed.
type BufferUsage uint32

const (
	// UsageStaticDraw is for data written once and drawn many times.
	UsageStaticDraw BufferUsage = iota + 1
	// UsageDynamicDraw is for data rewritten repeatedly and drawn many times.
	UsageDynamicDraw
	// UsageStreamDraw is for data rewritten for every use.
	UsageStreamDraw
)

// String returns the string representation of BufferUsage.
func (u BufferUsage) String() string {
	switch u {
	case UsageStaticDraw:
		return "StaticDraw"
	case UsageDynamicDraw:
		return "DynamicDraw"
	case UsageStreamDraw:
		return "StreamDraw"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(u))
	}
}

// ShaderStage identifies the pipeline stage a shader compiles for.
type ShaderStage uint32

const (
	// StageVertex is the vertex shader stage.
	StageVertex ShaderStage = iota + 1
	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns the string representation of ShaderStage.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageFragment:
		return "Fragment"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(s))
	}
}

// Primitive selects the primitive topology for draw calls.
type Primitive uint32

const (
	// Points draws each vertex as a single point.
	Points Primitive = iota + 1
	// Lines draws each vertex pair as an independent line segment.
	Lines
	// LineLoop draws a connected line closing back to the first vertex.
	LineLoop
	// LineStrip draws a connected group of line segments.
	LineStrip
	// Triangles draws each vertex triple as an independent triangle.
	Triangles
	// TriangleStrip draws a connected strip of triangles.
	TriangleStrip
	// TriangleFan draws a fan of triangles sharing the first vertex.
	TriangleFan
)

// String returns the string representation of Primitive.
func (p Primitive) String() string {
	switch p {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case LineLoop:
		return "LineLoop"
	case LineStrip:
		return "LineStrip"
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(p))
	}
}

// IndexType is the element type of an index buffer.
type IndexType uint32

const (
	// IndexUint8 indexes are unsigned 8-bit integers.
	IndexUint8 IndexType = iota + 1
	// IndexUint16 indexes are unsigned 16-bit integers.
	IndexUint16
	// IndexUint32 indexes are unsigned 32-bit integers.
	IndexUint32
)

// Size returns the size of one index element in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

// String returns the string representation of IndexType.
func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "Uint8"
	case IndexUint16:
		return "Uint16"
	case IndexUint32:
		return "Uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// ScalarType is the component type of vertex attribute data.
type ScalarType uint32

const (
	// ScalarInt8 is a signed 8-bit integer component.
	ScalarInt8 ScalarType = iota + 1
	// ScalarUint8 is an unsigned 8-bit integer component.
	ScalarUint8
	// ScalarInt16 is a signed 16-bit integer component.
	ScalarInt16
	// ScalarUint16 is an unsigned 16-bit integer component.
	ScalarUint16
	// ScalarInt32 is a signed 32-bit integer component.
	ScalarInt32
	// ScalarUint32 is an unsigned 32-bit integer component.
	ScalarUint32
	// ScalarFloat16 is a 16-bit floating point component.
	ScalarFloat16
	// ScalarFloat32 is a 32-bit floating point component.
	ScalarFloat32
	// ScalarFloat64 is a 64-bit floating point component.
	ScalarFloat64
)

// String returns the string representation of ScalarType.
func (t ScalarType) String() string {
	switch t {
	case ScalarInt8:
		return "Int8"
	case ScalarUint8:
		return "Uint8"
	case ScalarInt16:
		return "Int16"
	case ScalarUint16:
		return "Uint16"
	case ScalarInt32:
		return "Int32"
	case ScalarUint32:
		return "Uint32"
	case ScalarFloat16:
		return "Float16"
	case ScalarFloat32:
		return "Float32"
	case ScalarFloat64:
		return "Float64"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}
