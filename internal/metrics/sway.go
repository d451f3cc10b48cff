package metrics

import (
	"math"

	"github.com/san-kum/drape/internal/cloth"
)

// Sway is the peak-to-peak range of the mean X position.
type Sway struct {
	name     string
	min, max float64
	samples  int
}

func NewSway() *Sway {
	return &Sway{name: "sway"}
}

func (s *Sway) Name() string { return s.name }

func (s *Sway) Observe(w *cloth.World) {
	x := w.MeanPosition().X
	if s.samples == 0 {
		s.min, s.max = x, x
	}
	s.min = math.Min(s.min, x)
	s.max = math.Max(s.max, x)
	s.samples++
}

func (s *Sway) Value() float64 { return s.max - s.min }

func (s *Sway) Reset() {
	s.min, s.max = 0, 0
	s.samples = 0
}

// Sag is the largest drop of the mean Y position below its first observed
// value.
type Sag struct {
	name    string
	start   float64
	drop    float64
	samples int
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(w *cloth.World) {
	y := w.MeanPosition().Y
	if s.samples == 0 {
		s.start = y
	}
	s.drop = math.Max(s.drop, s.start-y)
	s.samples++
}

func (s *Sag) Value() float64 { return s.drop }

func (s *Sag) Reset() {
	s.start, s.drop = 0, 0
	s.samples = 0
}
