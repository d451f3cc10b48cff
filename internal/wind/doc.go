// Package wind produces the per-particle force field that pushes the cloth.
//
// Force magnitude comes from 3D noise sampled at (row*offset, col*offset, t)
// remapped to [0, 1] and scaled by BaseForce / particleCount; its direction
// comes from a [Steering] value that pointer input eases around.
package wind
