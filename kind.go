package glbind

import (
	"fmt"

	"github.com/gogpu/glbind/driver"
)

// Kind identifies the binding slot a bindable resource occupies. Two
// resources of different kinds never contend for the same slot. The set of
// kinds is closed: binding dispatch and scope rules are table-driven off
// this enumeration rather than left open for extension.
type Kind uint8

const (
	// KindArrayBuffer is the vertex attribute buffer slot.
	KindArrayBuffer Kind = iota + 1
	// KindElementArrayBuffer is the index buffer slot.
	KindElementArrayBuffer
	// KindUniformBuffer is the uniform block buffer slot.
	KindUniformBuffer
	// KindVertexArray is the vertex array (container object) slot.
	KindVertexArray
	// KindTexture2D is the 2D texture slot.
	KindTexture2D
	// KindProgram is the installed shader program slot.
	KindProgram
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindArrayBuffer:
		return "ArrayBuffer"
	case KindElementArrayBuffer:
		return "ElementArrayBuffer"
	case KindUniformBuffer:
		return "UniformBuffer"
	case KindVertexArray:
		return "VertexArray"
	case KindTexture2D:
		return "Texture2D"
	case KindProgram:
		return "Program"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Shareable reports whether resources of this kind live in the shared
// namespace of their owning context (true) or in the owning context alone
// (false). Vertex arrays are container objects and are never shared; their
// binding state is scoped per context accordingly.
func (k Kind) Shareable() bool {
	return k != KindVertexArray
}

// bufferTarget maps buffer kinds to their driver binding slot.
func (k Kind) bufferTarget() driver.BufferTarget {
	switch k {
	case KindArrayBuffer:
		return driver.TargetArrayBuffer
	case KindElementArrayBuffer:
		return driver.TargetElementArrayBuffer
	case KindUniformBuffer:
		return driver.TargetUniformBuffer
	default:
		return 0
	}
}

// bindNative issues the kind-specific native bind call for h. Handle 0
// binds the slot's default object.
func (k Kind) bindNative(d driver.Driver, h driver.Handle) error {
	switch k {
	case KindArrayBuffer, KindElementArrayBuffer, KindUniformBuffer:
		return d.BindBuffer(k.bufferTarget(), h)
	case KindVertexArray:
		return d.BindVertexArray(h)
	case KindTexture2D:
		return d.BindTexture(h)
	case KindProgram:
		return d.UseProgram(h)
	default:
		return fmt.Errorf("glbind: kind %s is not bindable", k)
	}
}

// defaultFactories maps kinds to constructors for their per-context
// default resource. Populated from init functions of the resource files;
// currently only the vertex array slot has a default object worth
// modelling, because rebinding it must restore the remembered index
// buffer.
var defaultFactories = map[Kind]func() (Bindable, error){}

// registerDefault installs the default-resource constructor for a kind.
func registerDefault(k Kind, f func() (Bindable, error)) {
	defaultFactories[k] = f
}
