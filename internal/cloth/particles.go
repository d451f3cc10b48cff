package cloth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FieldOptions controls how masses and velocities are seeded.
type FieldOptions struct {
	TotalMass       float64
	Damping         float64
	InitialVelocity r3.Vec
	PinTopRow       bool
}

// Particles holds one point mass per grid vertex. Index i here is vertex i in
// the render buffer.
type Particles struct {
	pos     []r3.Vec
	prev    []r3.Vec
	vel     []r3.Vec
	mass    []float64
	invMass []float64
	damping []float64
}

// NewParticles gives every particle TotalMass/N. Pinned particles get zero
// mass instead of a share.
func NewParticles(g Grid, positions []r3.Vec, opts FieldOptions) *Particles {
	n := len(positions)
	p := &Particles{
		pos:     make([]r3.Vec, n),
		prev:    make([]r3.Vec, n),
		vel:     make([]r3.Vec, n),
		mass:    make([]float64, n),
		invMass: make([]float64, n),
		damping: make([]float64, n),
	}
	if n == 0 {
		return p
	}

	share := opts.TotalMass / float64(n)
	copy(p.pos, positions)
	copy(p.prev, positions)

	for i := 0; i < n; i++ {
		row, _ := g.RowCol(i)
		p.damping[i] = opts.Damping
		if opts.PinTopRow && row == 0 {
			continue
		}
		p.mass[i] = share
		if share > 0 {
			p.invMass[i] = 1 / share
		}
		p.vel[i] = opts.InitialVelocity
	}
	return p
}

func (p *Particles) Len() int { return len(p.pos) }

func (p *Particles) Position(i int) r3.Vec { return p.pos[i] }
func (p *Particles) Velocity(i int) r3.Vec { return p.vel[i] }
func (p *Particles) Mass(i int) float64    { return p.mass[i] }
func (p *Particles) InvMass(i int) float64 { return p.invMass[i] }
func (p *Particles) Damping(i int) float64 { return p.damping[i] }

// Pinned reports whether particle i is immovable.
func (p *Particles) Pinned(i int) bool { return p.invMass[i] == 0 }

func (p *Particles) TotalMass() float64 {
	sum := 0.0
	for _, m := range p.mass {
		sum += m
	}
	return sum
}

// Positions copies all positions into dst, growing it if needed.
func (p *Particles) Positions(dst []r3.Vec) []r3.Vec {
	if cap(dst) < len(p.pos) {
		dst = make([]r3.Vec, len(p.pos))
	}
	dst = dst[:len(p.pos)]
	copy(dst, p.pos)
	return dst
}

func (p *Particles) MeanPosition() r3.Vec {
	if len(p.pos) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, v := range p.pos {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(p.pos)), sum)
}

func (p *Particles) KineticEnergy() float64 {
	e := 0.0
	for i, v := range p.vel {
		e += 0.5 * p.mass[i] * r3.Norm2(v)
	}
	return e
}

// Valid reports whether every position and velocity is finite.
func (p *Particles) Valid() bool {
	for i := range p.pos {
		if !finite(p.pos[i]) || !finite(p.vel[i]) {
			return false
		}
	}
	return true
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
