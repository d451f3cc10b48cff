package cloth

import "gonum.org/v1/gonum/spatial/r3"

// Constraint keeps particles A and B at Rest distance. A < B always.
type Constraint struct {
	A, B int
	Rest float64
}

// Anchor ties a particle to a fixed point off the grid. The point behaves as a
// zero-mass particle: it pulls but never moves.
type Anchor struct {
	Particle int
	Point    r3.Vec
	Rest     float64
}

// Graph is the constraint topology. It is fixed once built; only particle
// positions change afterwards.
type Graph struct {
	constraints []Constraint
	anchors     []Anchor
}

// BuildConstraints links every particle to its right and lower neighbour.
// Rest lengths come from the current particle positions, so it must run
// before the first step.
func BuildConstraints(g Grid, p *Particles) *Graph {
	gr := &Graph{}
	if g.Empty() || p.Len() != g.Count() {
		return gr
	}
	gr.constraints = make([]Constraint, 0, g.EdgeCount())

	for i := 0; i < p.Len(); i++ {
		row, col := g.RowCol(i)
		if col < g.Cols {
			gr.connect(p, i, g.Index(row, col+1))
		}
		if row < g.Rows {
			gr.connect(p, i, g.Index(row+1, col))
		}
	}
	return gr
}

func (gr *Graph) connect(p *Particles, a, b int) {
	if a > b {
		a, b = b, a
	}
	rest := r3.Norm(r3.Sub(p.Position(b), p.Position(a)))
	gr.constraints = append(gr.constraints, Constraint{A: a, B: b, Rest: rest})
}

// AddAnchor tethers particle i to its initial position shifted by offset.
func (gr *Graph) AddAnchor(p *Particles, i int, offset r3.Vec) {
	point := r3.Add(p.Position(i), offset)
	gr.anchors = append(gr.anchors, Anchor{Particle: i, Point: point, Rest: r3.Norm(offset)})
}

func (gr *Graph) Len() int                  { return len(gr.constraints) }
func (gr *Graph) Constraints() []Constraint { return gr.constraints }
func (gr *Graph) Anchors() []Anchor         { return gr.anchors }

// Relax runs one Gauss-Seidel pass over all constraints and then the
// anchors. Each correction is split by inverse mass. The result is not exact;
// the error left over is worked off on later ticks.
func (gr *Graph) Relax(p *Particles) {
	for _, c := range gr.constraints {
		wa, wb := p.invMass[c.A], p.invMass[c.B]
		w := wa + wb
		if w == 0 {
			continue
		}
		delta := r3.Sub(p.pos[c.B], p.pos[c.A])
		dist := r3.Norm(delta)
		if dist == 0 {
			continue
		}
		corr := r3.Scale((dist-c.Rest)/(dist*w), delta)
		p.pos[c.A] = r3.Add(p.pos[c.A], r3.Scale(wa, corr))
		p.pos[c.B] = r3.Sub(p.pos[c.B], r3.Scale(wb, corr))
	}

	for _, a := range gr.anchors {
		if p.invMass[a.Particle] == 0 {
			continue
		}
		delta := r3.Sub(a.Point, p.pos[a.Particle])
		dist := r3.Norm(delta)
		if dist == 0 {
			continue
		}
		p.pos[a.Particle] = r3.Add(p.pos[a.Particle], r3.Scale((dist-a.Rest)/dist, delta))
	}
}

// Strain returns the relative deviation |d - rest| / rest of constraint c.
// Zero-rest constraints report zero.
func (c Constraint) Strain(p *Particles) float64 {
	if c.Rest == 0 {
		return 0
	}
	d := r3.Norm(r3.Sub(p.Position(c.B), p.Position(c.A)))
	s := (d - c.Rest) / c.Rest
	if s < 0 {
		return -s
	}
	return s
}

// MaxStrain is the largest relative deviation over all grid constraints.
func (gr *Graph) MaxStrain(p *Particles) float64 {
	worst := 0.0
	for _, c := range gr.constraints {
		if s := c.Strain(p); s > worst {
			worst = s
		}
	}
	return worst
}
