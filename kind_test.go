package glbind

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindArrayBuffer, "ArrayBuffer"},
		{KindElementArrayBuffer, "ElementArrayBuffer"},
		{KindUniformBuffer, "UniformBuffer"},
		{KindVertexArray, "VertexArray"},
		{KindTexture2D, "Texture2D"},
		{KindProgram, "Program"},
		{Kind(0), "Unknown(0)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindShareable(t *testing.T) {
	for _, kind := range []Kind{
		KindArrayBuffer, KindElementArrayBuffer, KindUniformBuffer,
		KindTexture2D, KindProgram,
	} {
		if !kind.Shareable() {
			t.Errorf("%v.Shareable() = false, want true", kind)
		}
	}
	if KindVertexArray.Shareable() {
		t.Error("KindVertexArray.Shareable() = true, want false")
	}
}
