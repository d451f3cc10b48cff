package mesh

// Plane is a width x height grid of (cols+1)*(rows+1) vertices centred on the
// origin in the XY plane. Vertex i sits at row i/(cols+1), column i%(cols+1);
// row 0 is the top edge.
type Plane struct {
	Width, Height float64
	Cols, Rows    int
	Position      *Attribute
}

// NewPlane lays out the vertices row by row, top to bottom, left to right.
// Non-positive segment counts produce a degenerate strip; callers decide
// whether such a grid is usable.
func NewPlane(width, height float64, cols, rows int) *Plane {
	p := &Plane{Width: width, Height: height, Cols: cols, Rows: rows}
	nx, ny := cols+1, rows+1
	if nx < 1 || ny < 1 {
		p.Position = NewAttribute(0)
		return p
	}
	p.Position = NewAttribute(nx * ny)

	segW, segH := 0.0, 0.0
	if cols > 0 {
		segW = width / float64(cols)
	}
	if rows > 0 {
		segH = height / float64(rows)
	}
	halfW, halfH := width/2, height/2

	i := 0
	for iy := 0; iy < ny; iy++ {
		y := float64(iy)*segH - halfH
		for ix := 0; ix < nx; ix++ {
			x := float64(ix)*segW - halfW
			p.Position.SetXYZ(i, float32(x), float32(-y), 0)
			i++
		}
	}
	return p
}

// Segments returns the plane's (rows, cols).
func (p *Plane) Segments() (rows, cols int) { return p.Rows, p.Cols }
