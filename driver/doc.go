// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package driver defines the interface between glbind and the native
// windowing/graphics stack.
//
// A Driver covers two collaborator surfaces: the windowing layer that
// creates, activates and destroys native rendering contexts, and the
// graphics API layer that allocates, binds and releases GPU objects
// (buffers, vertex arrays, textures, shaders, programs).
//
// Drivers are registered by name with a selection priority. Production
// applications typically rely on driver/glgl (GLFW + OpenGL 3.3 core);
// tests and headless environments use driver/headless, a pure-Go
// implementation that is always available.
package driver
