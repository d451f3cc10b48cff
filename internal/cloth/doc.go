// Package cloth turns a regular vertex grid into a particle-constraint system
// and steps it under gravity and an external wind force.
//
// The pieces, leaf first:
//
//   - [Grid]: maps a linear vertex index to (row, col) and back
//   - [Particles]: one point mass per vertex, stored as parallel slices
//   - [Graph]: distance constraints between horizontal and vertical
//     neighbours, plus optional anchors for the top row
//   - [World]: the fixed-tick integrator and constraint relaxation
//
// Particles are addressed by index only; constraints hold index pairs into
// the particle slices, never pointers.
//
// # Example
//
//	plane := mesh.NewPlane(1, 1, 8, 8)
//	w, err := cloth.New(plane.Position, cloth.NewGrid(8, 8), cloth.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	w.SetWind(field)
//	w.Step(1.0 / 60)
//	w.Sync(plane.Position)
//
// # Thread Safety
//
// A World is driven by a single goroutine. Wind direction updates coming from
// elsewhere go through the wind package's steering mailbox.
package cloth
