// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import "testing"

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{TargetArrayBuffer.String(), "ArrayBuffer"},
		{TargetElementArrayBuffer.String(), "ElementArrayBuffer"},
		{TargetUniformBuffer.String(), "UniformBuffer"},
		{UsageStaticDraw.String(), "StaticDraw"},
		{UsageStreamDraw.String(), "StreamDraw"},
		{StageVertex.String(), "Vertex"},
		{StageFragment.String(), "Fragment"},
		{Triangles.String(), "Triangles"},
		{TriangleFan.String(), "TriangleFan"},
		{IndexUint16.String(), "Uint16"},
		{ScalarFloat32.String(), "Float32"},
		{BufferTarget(99).String(), "Unknown(99)"},
		{Primitive(0).String(), "Unknown(0)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestIndexTypeSize(t *testing.T) {
	tests := []struct {
		typ  IndexType
		want int
	}{
		{IndexUint8, 1},
		{IndexUint16, 2},
		{IndexUint32, 4},
		{IndexType(0), 0},
	}
	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.typ, got, tt.want)
		}
	}
}
