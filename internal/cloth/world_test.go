package cloth_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/mesh"
	"github.com/san-kum/drape/internal/wind"
)

const dt = 1.0 / 60

func newWorld(rows, cols int, cfg cloth.Config) (*cloth.World, *mesh.Plane) {
	plane := mesh.NewPlane(1, 1, cols, rows)
	w, err := cloth.New(plane.Position, cloth.NewGrid(rows, cols), cfg)
	Expect(err).NotTo(HaveOccurred())
	return w, plane
}

var _ = Describe("Particle field", func() {
	It("pins the top row and spreads the mass over every particle", func() {
		cfg := cloth.DefaultConfig()
		cfg.TotalMass = 3
		w, _ := newWorld(4, 4, cfg)
		p := w.Particles()
		g := w.Grid()

		nonPinned := 0
		sum := 0.0
		for i := 0; i < p.Len(); i++ {
			row, _ := g.RowCol(i)
			if row == 0 {
				Expect(p.Mass(i)).To(BeZero())
				Expect(p.Pinned(i)).To(BeTrue())
				Expect(p.Velocity(i)).To(Equal(r3.Vec{}))
				continue
			}
			Expect(p.Mass(i)).To(BeNumerically("~", 3.0/25, 1e-15))
			Expect(p.Damping(i)).To(Equal(0.8))
			Expect(p.Velocity(i)).To(Equal(r3.Vec{Z: -2}))
			nonPinned++
			sum += p.Mass(i)
		}
		Expect(sum).To(BeNumerically("~", 3*float64(nonPinned)/float64(p.Len()), 1e-12))
		Expect(p.TotalMass()).To(BeNumerically("~", sum, 1e-15))
	})

	It("does not pin anything when pinning is off", func() {
		cfg := cloth.DefaultConfig()
		cfg.Pin = cloth.PinNone
		w, _ := newWorld(2, 2, cfg)
		for i := 0; i < w.Particles().Len(); i++ {
			Expect(w.Particles().Pinned(i)).To(BeFalse())
		}
		Expect(w.Particles().TotalMass()).To(BeNumerically("~", 1, 1e-12))
	})
})

var _ = Describe("Constraint graph", func() {
	It("stores rest lengths equal to the initial separation", func() {
		w, plane := newWorld(3, 5, cloth.DefaultConfig())
		for _, c := range w.Graph().Constraints() {
			Expect(c.A).To(BeNumerically("<", c.B))
			d := r3.Norm(r3.Sub(plane.Position.Vec(c.B), plane.Position.Vec(c.A)))
			Expect(c.Rest).To(BeNumerically("~", d, 1e-12))
		}
	})

	It("links right and lower neighbours only", func() {
		w, _ := newWorld(2, 2, cloth.DefaultConfig())
		g := w.Grid()
		for _, c := range w.Graph().Constraints() {
			ra, ca := g.RowCol(c.A)
			rb, cb := g.RowCol(c.B)
			horizontal := ra == rb && cb == ca+1
			vertical := ca == cb && rb == ra+1
			Expect(horizontal || vertical).To(BeTrue())
		}
	})

	It("adds one anchor per top-row particle in anchor mode", func() {
		cfg := cloth.DefaultConfig()
		cfg.Pin = cloth.PinAnchor
		w, _ := newWorld(2, 4, cfg)
		anchors := w.Graph().Anchors()
		Expect(anchors).To(HaveLen(5))
		Expect(w.Graph().Len()).To(Equal(w.Grid().EdgeCount()))
		for _, a := range anchors {
			row, _ := w.Grid().RowCol(a.Particle)
			Expect(row).To(BeZero())
			Expect(a.Rest).To(BeNumerically("~", 0.1, 1e-12))
			Expect(w.Particles().Pinned(a.Particle)).To(BeFalse())
		}
	})
})

var _ = Describe("World", func() {
	It("keeps pinned particles in place under gravity", func() {
		cfg := cloth.DefaultConfig()
		cfg.InitialVelocity = r3.Vec{}
		w, _ := newWorld(4, 4, cfg)
		for i := 0; i < 120; i++ {
			w.Step(dt)
		}
		for col := 0; col <= 4; col++ {
			i := w.Grid().Index(0, col)
			Expect(w.Particles().Position(i)).To(Equal(w.Initial(i)))
		}
		Expect(w.Ticks()).To(Equal(120))
		Expect(w.Time()).To(BeNumerically("~", 2, 1e-9))
	})

	It("drapes a 3x3 grid without losing its shape", func() {
		cfg := cloth.DefaultConfig()
		cfg.InitialVelocity = r3.Vec{}
		w, plane := newWorld(2, 2, cfg)

		for i := 0; i < 60; i++ {
			w.Step(dt)
		}
		w.Sync(plane.Position)

		g := w.Grid()
		for col := 0; col <= 2; col++ {
			top := g.Index(0, col)
			Expect(w.Particles().Position(top)).To(Equal(w.Initial(top)))

			bottom := g.Index(2, col)
			Expect(w.Particles().Position(bottom).Y).To(BeNumerically("<", w.Initial(bottom).Y))
		}
		for _, c := range w.Graph().Constraints() {
			Expect(c.Strain(w.Particles())).To(BeNumerically("<", 0.05))
		}
		Expect(w.MaxStrain()).To(BeNumerically("<", 0.05))
		Expect(w.Valid()).To(BeTrue())
	})

	It("holds anchored particles at their rest distance", func() {
		cfg := cloth.DefaultConfig()
		cfg.Pin = cloth.PinAnchor
		w, _ := newWorld(2, 2, cfg)
		for i := 0; i < 60; i++ {
			w.Step(dt)
			for _, a := range w.Graph().Anchors() {
				d := r3.Norm(r3.Sub(a.Point, w.Particles().Position(a.Particle)))
				Expect(d).To(BeNumerically("~", a.Rest, 1e-9))
			}
		}
	})

	It("drifts along a steered wind with nothing pinned", func() {
		cfg := cloth.DefaultConfig()
		cfg.Pin = cloth.PinNone
		w, _ := newWorld(4, 4, cfg)

		noise, err := wind.NewNoise(wind.Simplex, 3)
		Expect(err).NotTo(HaveOccurred())
		steer := wind.NewSteering(r3.Vec{X: 1}, wind.DefaultTransition)
		w.SetWind(wind.NewField(w.Grid(), noise, steer, wind.DefaultConfig()))

		start := w.MeanPosition().X
		last := start
		for i := 0; i < 180; i++ {
			w.Step(dt)
			x := w.MeanPosition().X
			Expect(x).To(BeNumerically(">=", last-1e-12))
			last = x
		}
		Expect(last).To(BeNumerically(">", start))
	})

	It("leaves the buffer identical when no tick has run", func() {
		w, plane := newWorld(8, 8, cloth.DefaultConfig())
		before := plane.Position.Clone()
		w.Sync(plane.Position)
		Expect(plane.Position.Array).To(Equal(before.Array))
		Expect(plane.Position.NeedsUpdate).To(BeTrue())
	})

	It("writes particle positions back into the buffer", func() {
		w, plane := newWorld(2, 2, cloth.DefaultConfig())
		w.Step(dt)
		w.Sync(plane.Position)
		for i := 0; i < w.Particles().Len(); i++ {
			p := w.Particles().Position(i)
			x, y, z := plane.Position.GetXYZ(i)
			Expect(x).To(Equal(float32(p.X)))
			Expect(y).To(Equal(float32(p.Y)))
			Expect(z).To(Equal(float32(p.Z)))
		}
	})

	It("survives coincident particles", func() {
		pos := mesh.NewAttribute(9)
		w, err := cloth.New(pos, cloth.NewGrid(2, 2), cloth.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		for _, c := range w.Graph().Constraints() {
			Expect(c.Rest).To(BeZero())
		}
		for i := 0; i < 30; i++ {
			w.Step(dt)
		}
		Expect(w.Valid()).To(BeTrue())
		Expect(math.IsNaN(w.MaxStrain())).To(BeFalse())
	})

	It("rewinds on Reset", func() {
		w, _ := newWorld(2, 2, cloth.DefaultConfig())
		for i := 0; i < 10; i++ {
			w.Step(dt)
		}
		w.Reset()
		Expect(w.Ticks()).To(BeZero())
		for i := 0; i < w.Particles().Len(); i++ {
			Expect(w.Particles().Position(i)).To(Equal(w.Initial(i)))
		}
	})

	Context("with an empty grid", func() {
		It("builds nothing and never touches the buffer", func() {
			plane := mesh.NewPlane(1, 1, 3, 0)
			before := plane.Position.Clone()

			w, err := cloth.New(plane.Position, cloth.NewGrid(0, 3), cloth.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Graph().Len()).To(BeZero())
			Expect(w.Particles().Len()).To(BeZero())

			w.Step(dt)
			w.Sync(plane.Position)
			Expect(w.Ticks()).To(BeZero())
			Expect(plane.Position.Array).To(Equal(before.Array))
			Expect(plane.Position.NeedsUpdate).To(BeFalse())
			Expect(plane.Position.Version).To(BeZero())
		})
	})

	Context("with bad input", func() {
		It("rejects a vertex count that does not fit the grid", func() {
			plane := mesh.NewPlane(1, 1, 2, 2)
			_, err := cloth.New(plane.Position, cloth.NewGrid(3, 3), cloth.DefaultConfig())
			Expect(errors.Is(err, cloth.ErrGridMismatch)).To(BeTrue())
		})

		It("rejects negative mass and out-of-range damping", func() {
			plane := mesh.NewPlane(1, 1, 2, 2)
			cfg := cloth.DefaultConfig()
			cfg.TotalMass = -1
			_, err := cloth.New(plane.Position, cloth.NewGrid(2, 2), cfg)
			Expect(err).To(MatchError(cloth.ErrInvalidMass))

			cfg = cloth.DefaultConfig()
			cfg.Damping = 1.5
			_, err = cloth.New(plane.Position, cloth.NewGrid(2, 2), cfg)
			Expect(err).To(MatchError(cloth.ErrInvalidDamping))
		})
	})
})

var _ = DescribeTable("ParsePinMode",
	func(in string, want cloth.PinMode, ok bool) {
		got, err := cloth.ParsePinMode(in)
		if !ok {
			Expect(err).To(HaveOccurred())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	},
	Entry("top", "top", cloth.PinTop, true),
	Entry("anchor", "anchor", cloth.PinAnchor, true),
	Entry("none", "none", cloth.PinNone, true),
	Entry("default", "", cloth.PinTop, true),
	Entry("unknown", "corners", cloth.PinMode(""), false),
)
