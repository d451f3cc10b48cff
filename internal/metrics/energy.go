package metrics

import (
	"math"

	"github.com/san-kum/drape/internal/cloth"
)

// Energy is the mean kinetic energy of the cloth over all observed ticks.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *cloth.World) {
	e.total += w.KineticEnergy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// Settle is the kinetic energy of the last observed tick relative to the
// peak seen so far. Values near zero mean the cloth has come to rest.
type Settle struct {
	name string
	peak float64
	last float64
}

func NewSettle() *Settle {
	return &Settle{name: "settle"}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(w *cloth.World) {
	s.last = w.KineticEnergy()
	s.peak = math.Max(s.peak, s.last)
}

func (s *Settle) Value() float64 {
	if s.peak == 0 {
		return 0
	}
	return s.last / s.peak
}

func (s *Settle) Reset() {
	s.peak = 0
	s.last = 0
}
