package metrics

import (
	"github.com/san-kum/drape/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

// WindLoad is the mean total wind force magnitude pushed into the cloth per
// tick. Worlds without wind contribute zero.
type WindLoad struct {
	name    string
	sum     float64
	samples int
}

func NewWindLoad() *WindLoad {
	return &WindLoad{
		name: "wind_load",
	}
}

func (m *WindLoad) Name() string { return m.name }

func (m *WindLoad) Observe(w *cloth.World) {
	m.samples++
	wind := w.Wind()
	if wind == nil {
		return
	}
	for i := 0; i < w.Particles().Len(); i++ {
		m.sum += r3.Norm(wind.Force(i))
	}
}

func (m *WindLoad) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *WindLoad) Reset() {
	m.sum = 0
	m.samples = 0
}
