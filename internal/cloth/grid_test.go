package cloth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/mesh"
)

var _ = Describe("Grid", func() {
	DescribeTable("particle and constraint counts",
		func(rows, cols int) {
			g := cloth.NewGrid(rows, cols)
			Expect(g.Count()).To(Equal((rows + 1) * (cols + 1)))
			Expect(g.EdgeCount()).To(Equal(rows*(cols+1) + cols*(rows+1)))

			plane := mesh.NewPlane(1, 1, cols, rows)
			w, err := cloth.New(plane.Position, g, cloth.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Particles().Len()).To(Equal(g.Count()))
			Expect(w.Graph().Len()).To(Equal(g.EdgeCount()))
		},
		Entry("1x1", 1, 1),
		Entry("2x2", 2, 2),
		Entry("8x8", 8, 8),
		Entry("wide 2x5", 2, 5),
		Entry("tall 6x3", 6, 3),
	)

	It("maps indices to (row, col) and back on rectangular grids", func() {
		g := cloth.NewGrid(3, 5)
		for i := 0; i < g.Count(); i++ {
			row, col := g.RowCol(i)
			Expect(g.Contains(row, col)).To(BeTrue())
			Expect(g.Index(row, col)).To(Equal(i))
		}
		row, col := g.RowCol(6)
		Expect(row).To(Equal(1))
		Expect(col).To(Equal(0))
	})

	It("treats non-positive dimensions as empty", func() {
		for _, g := range []cloth.Grid{cloth.NewGrid(0, 3), cloth.NewGrid(3, 0), cloth.NewGrid(-1, 2)} {
			Expect(g.Empty()).To(BeTrue())
			Expect(g.Count()).To(BeZero())
			Expect(g.EdgeCount()).To(BeZero())
			Expect(g.Contains(0, 0)).To(BeFalse())
		}
	})
})
