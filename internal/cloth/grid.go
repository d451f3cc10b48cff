package cloth

// Grid describes a mesh of Rows x Cols quads, i.e. (Rows+1)*(Cols+1) vertices
// stored row-major with row 0 first.
type Grid struct {
	Rows int
	Cols int
}

// NewGrid returns the grid of a plane with rows x cols segments.
func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols}
}

// Empty reports whether the grid has no usable quads. Every cloth operation
// on an empty grid is a no-op.
func (g Grid) Empty() bool { return g.Rows <= 0 || g.Cols <= 0 }

// Count is the number of vertices, and therefore particles.
func (g Grid) Count() int {
	if g.Empty() {
		return 0
	}
	return (g.Rows + 1) * (g.Cols + 1)
}

// EdgeCount is the number of horizontal plus vertical neighbour pairs.
func (g Grid) EdgeCount() int {
	if g.Empty() {
		return 0
	}
	return g.Rows*(g.Cols+1) + g.Cols*(g.Rows+1)
}

func (g Grid) stride() int { return g.Cols + 1 }

// Index is the vertex index of (row, col).
func (g Grid) Index(row, col int) int { return row*g.stride() + col }

// RowCol is the inverse of Index.
func (g Grid) RowCol(i int) (row, col int) {
	s := g.stride()
	return i / s, i % s
}

// Contains reports whether (row, col) lies on the grid.
func (g Grid) Contains(row, col int) bool {
	return !g.Empty() && row >= 0 && row <= g.Rows && col >= 0 && col <= g.Cols
}
