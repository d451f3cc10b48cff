// Package mesh holds the render-side vertex data the cloth simulation reads
// from once at setup and writes back into every frame.
//
//   - [Attribute]: flat float32 xyz buffer with a dirty flag
//   - [Plane]: regular grid geometry, row 0 on top
package mesh
