package wind

import (
	"github.com/san-kum/drape/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultBaseForce = 11.5
	DefaultOffset    = 0.1
)

type Config struct {
	BaseForce float64
	Offset    float64
}

func DefaultConfig() Config {
	return Config{BaseForce: DefaultBaseForce, Offset: DefaultOffset}
}

// Field holds one force vector per particle, recomputed every tick from
// time-varying noise and the steering direction.
type Field struct {
	grid        cloth.Grid
	noise       Noise
	steering    *Steering
	offset      float64
	perParticle float64
	forces      []r3.Vec
}

// NewField splits BaseForce evenly over the grid's particles so that a finer
// grid is not pushed harder overall.
func NewField(grid cloth.Grid, noise Noise, steering *Steering, cfg Config) *Field {
	n := grid.Count()
	f := &Field{
		grid:     grid,
		noise:    noise,
		steering: steering,
		offset:   cfg.Offset,
		forces:   make([]r3.Vec, n),
	}
	if n > 0 {
		f.perParticle = cfg.BaseForce / float64(n)
	}
	if f.steering == nil {
		f.steering = NewSteering(DefaultDirection, DefaultTransition)
	}
	return f
}

// Update advances the steering by dt, then samples the noise at time t for
// every particle. Implements cloth.Wind.
func (f *Field) Update(t, dt float64) {
	f.steering.Advance(dt)
	if len(f.forces) == 0 || f.noise == nil {
		return
	}

	dir := f.steering.Direction()
	for i := range f.forces {
		row, col := f.grid.RowCol(i)
		m := f.noise.Eval3(float64(row)*f.offset, float64(col)*f.offset, t)*0.5 + 0.5
		if m < 0 {
			m = 0
		} else if m > 1 {
			m = 1
		}
		f.forces[i] = r3.Scale(m*f.perParticle, dir)
	}
}

func (f *Field) Force(i int) r3.Vec   { return f.forces[i] }
func (f *Field) Forces() []r3.Vec     { return f.forces }
func (f *Field) PerParticle() float64 { return f.perParticle }
func (f *Field) Steering() *Steering  { return f.steering }
