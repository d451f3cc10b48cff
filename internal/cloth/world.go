package cloth

import (
	"fmt"
	"math"

	"github.com/san-kum/drape/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDt is the fixed tick the host loop is expected to use.
const DefaultDt = 1.0 / 60

// PinMode selects how the top row is held in place.
type PinMode string

const (
	// PinTop gives every row-0 particle zero mass.
	PinTop PinMode = "top"
	// PinAnchor leaves row 0 movable but tethers it to fixed points above
	// its initial position, a soft hinge that allows some sway.
	PinAnchor PinMode = "anchor"
	// PinNone leaves every particle free.
	PinNone PinMode = "none"
)

// ParsePinMode reads a pin mode name. The empty string means PinTop.
func ParsePinMode(s string) (PinMode, error) {
	switch m := PinMode(s); m {
	case PinTop, PinAnchor, PinNone:
		return m, nil
	case "":
		return PinTop, nil
	}
	return "", fmt.Errorf("unknown pin mode: %s", s)
}

// Wind supplies one external force per particle for the coming tick. Update
// is called at the start of every step, before any force is applied.
type Wind interface {
	Update(t, dt float64)
	Force(i int) r3.Vec
}

// Config holds the physical parameters of a world.
type Config struct {
	TotalMass       float64
	Damping         float64
	Gravity         r3.Vec
	InitialVelocity r3.Vec
	Pin             PinMode
	AnchorOffset    r3.Vec
}

// DefaultConfig is a unit-mass cloth pinned along its top row and pushed
// gently backwards at start.
func DefaultConfig() Config {
	return Config{
		TotalMass:       1,
		Damping:         0.8,
		Gravity:         r3.Vec{Y: -9.8},
		InitialVelocity: r3.Vec{Z: -2},
		Pin:             PinTop,
		AnchorOffset:    r3.Vec{Y: 0.1},
	}
}

// World owns the particles and constraints of one draped tile.
type World struct {
	grid      Grid
	cfg       Config
	particles *Particles
	graph     *Graph
	wind      Wind
	initial   []r3.Vec
	time      float64
	ticks     int
}

// New seeds one particle per vertex of pos and builds the constraint graph
// from those initial positions. An empty grid yields a world on which every
// operation is a no-op.
func New(pos *mesh.Attribute, grid Grid, cfg Config) (*World, error) {
	if cfg.TotalMass < 0 {
		return nil, fmt.Errorf("%w: got %f", ErrInvalidMass, cfg.TotalMass)
	}
	if cfg.Damping < 0 || cfg.Damping > 1 {
		return nil, fmt.Errorf("%w: got %f", ErrInvalidDamping, cfg.Damping)
	}
	if cfg.Pin == "" {
		cfg.Pin = PinTop
	}

	w := &World{grid: grid, cfg: cfg}

	var initial []r3.Vec
	if !grid.Empty() {
		if pos == nil || pos.Count() != grid.Count() {
			got := 0
			if pos != nil {
				got = pos.Count()
			}
			return nil, fmt.Errorf("%w: %dx%d grid needs %d vertices, got %d",
				ErrGridMismatch, grid.Rows, grid.Cols, grid.Count(), got)
		}
		initial = make([]r3.Vec, pos.Count())
		for i := range initial {
			initial[i] = pos.Vec(i)
		}
	}

	w.initial = initial
	w.build()
	return w, nil
}

func (w *World) build() {
	w.particles = NewParticles(w.grid, w.initial, FieldOptions{
		TotalMass:       w.cfg.TotalMass,
		Damping:         w.cfg.Damping,
		InitialVelocity: w.cfg.InitialVelocity,
		PinTopRow:       w.cfg.Pin == PinTop,
	})
	w.graph = BuildConstraints(w.grid, w.particles)

	if w.cfg.Pin == PinAnchor {
		for col := 0; col <= w.grid.Cols && !w.grid.Empty(); col++ {
			w.graph.AddAnchor(w.particles, w.grid.Index(0, col), w.cfg.AnchorOffset)
		}
	}
}

// SetWind installs the force source pulled at the start of every step. nil
// removes it.
func (w *World) SetWind(wind Wind) { w.wind = wind }

// Step advances the world by one tick of dt seconds: gravity, wind, damping,
// semi-implicit Euler, then a single relaxation pass. Velocities are taken
// from the corrected displacement afterwards.
func (w *World) Step(dt float64) {
	p := w.particles
	if p.Len() == 0 || dt <= 0 {
		return
	}

	if w.wind != nil {
		w.wind.Update(w.time, dt)
	}

	g := w.cfg.Gravity
	for i := range p.pos {
		p.prev[i] = p.pos[i]
		inv := p.invMass[i]
		if inv == 0 {
			continue
		}

		acc := g
		if w.wind != nil {
			acc = r3.Add(acc, r3.Scale(inv, w.wind.Force(i)))
		}
		v := r3.Add(p.vel[i], r3.Scale(dt, acc))
		v = r3.Scale(math.Pow(1-p.damping[i], dt), v)

		p.vel[i] = v
		p.pos[i] = r3.Add(p.pos[i], r3.Scale(dt, v))
	}

	w.graph.Relax(p)

	inv := 1 / dt
	for i := range p.pos {
		if p.invMass[i] == 0 {
			continue
		}
		p.vel[i] = r3.Scale(inv, r3.Sub(p.pos[i], p.prev[i]))
	}

	w.time += dt
	w.ticks++
}

// Reset puts every particle back at its initial position and velocity and
// rewinds the clock. Topology is unchanged.
func (w *World) Reset() {
	w.particles = NewParticles(w.grid, w.initial, FieldOptions{
		TotalMass:       w.cfg.TotalMass,
		Damping:         w.cfg.Damping,
		InitialVelocity: w.cfg.InitialVelocity,
		PinTopRow:       w.cfg.Pin == PinTop,
	})
	w.time = 0
	w.ticks = 0
}

func (w *World) Grid() Grid             { return w.grid }
func (w *World) Config() Config         { return w.cfg }
func (w *World) Particles() *Particles  { return w.particles }
func (w *World) Graph() *Graph          { return w.graph }
func (w *World) Time() float64          { return w.time }
func (w *World) Ticks() int             { return w.ticks }
func (w *World) MaxStrain() float64     { return w.graph.MaxStrain(w.particles) }
func (w *World) Valid() bool            { return w.particles.Valid() }
func (w *World) MeanPosition() r3.Vec   { return w.particles.MeanPosition() }
func (w *World) KineticEnergy() float64 { return w.particles.KineticEnergy() }
func (w *World) Initial(i int) r3.Vec   { return w.initial[i] }
func (w *World) Wind() Wind             { return w.wind }
