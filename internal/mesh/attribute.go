package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Attribute is a flat vertex buffer with three float32 components per vertex,
// read by the renderer every frame.
type Attribute struct {
	Array       []float32
	NeedsUpdate bool
	Version     int
}

func NewAttribute(count int) *Attribute {
	if count < 0 {
		count = 0
	}
	return &Attribute{Array: make([]float32, count*3)}
}

func (a *Attribute) Count() int { return len(a.Array) / 3 }

func (a *Attribute) GetXYZ(i int) (x, y, z float32) {
	o := i * 3
	return a.Array[o], a.Array[o+1], a.Array[o+2]
}

func (a *Attribute) SetXYZ(i int, x, y, z float32) {
	o := i * 3
	a.Array[o], a.Array[o+1], a.Array[o+2] = x, y, z
}

// Vec returns vertex i widened to float64.
func (a *Attribute) Vec(i int) r3.Vec {
	x, y, z := a.GetXYZ(i)
	return r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
}

// SetVec narrows v to float32 and stores it at slot i.
func (a *Attribute) SetVec(i int, v r3.Vec) {
	a.SetXYZ(i, float32(v.X), float32(v.Y), float32(v.Z))
}

// MarkDirty flags the buffer for upload and bumps its version.
func (a *Attribute) MarkDirty() {
	a.NeedsUpdate = true
	a.Version++
}

// Consume clears the dirty flag and reports whether it was set.
func (a *Attribute) Consume() bool {
	dirty := a.NeedsUpdate
	a.NeedsUpdate = false
	return dirty
}

func (a *Attribute) Clone() *Attribute {
	c := &Attribute{Array: make([]float32, len(a.Array)), NeedsUpdate: a.NeedsUpdate, Version: a.Version}
	copy(c.Array, a.Array)
	return c
}
