package metrics

import (
	"github.com/san-kum/drape/internal/cloth"
)

// MaxStrain is the worst relative constraint deviation seen during a run.
type MaxStrain struct {
	name  string
	worst float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(w *cloth.World) {
	if s := w.MaxStrain(); s > m.worst {
		m.worst = s
	}
}

func (m *MaxStrain) Value() float64 { return m.worst }
func (m *MaxStrain) Reset()         { m.worst = 0 }

// Stability is the fraction of ticks on which every constraint stayed within
// threshold of its rest length and every particle was finite.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(w *cloth.World) {
	s.samples++
	if !w.Valid() || w.MaxStrain() > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
