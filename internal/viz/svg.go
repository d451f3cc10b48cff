package viz

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/drape/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

// FrameToSVG writes a front view (X right, Y up) of a cloth frame: one line
// per grid constraint, plus a dot on every pinned or anchored particle when
// pinned is non-nil.
func FrameToSVG(w io.Writer, grid cloth.Grid, positions []r3.Vec, pinned func(i int) bool, size int, stroke string) error {
	if grid.Empty() || len(positions) < grid.Count() {
		return fmt.Errorf("frame has %d positions, %dx%d grid needs %d", len(positions), grid.Rows, grid.Cols, grid.Count())
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range positions[:grid.Count()] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	pad := span * 0.1
	scale := float64(size) / (span + 2*pad)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	half := float64(size) / 2

	px := func(p r3.Vec) (float64, float64) {
		return half + (p.X-cx)*scale, half - (p.Y-cy)*scale
	}

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="%s" stroke-width="1.5" fill="none">
`, size, size, size, size, stroke); err != nil {
		return err
	}

	for i := 0; i < grid.Count(); i++ {
		row, col := grid.RowCol(i)
		x1, y1 := px(positions[i])
		for _, j := range neighbours(grid, row, col) {
			x2, y2 := px(positions[j])
			if _, err := fmt.Fprintf(w, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x1, y1, x2, y2); err != nil {
				return err
			}
		}
	}
	if _, err := io.WriteString(w, "</g>\n"); err != nil {
		return err
	}

	if pinned != nil {
		if _, err := fmt.Fprintf(w, "<g fill=\"%s\">\n", stroke); err != nil {
			return err
		}
		for i := 0; i < grid.Count(); i++ {
			if !pinned(i) {
				continue
			}
			x, y := px(positions[i])
			if _, err := fmt.Fprintf(w, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\"/>\n", x, y); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</g>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}

func neighbours(g cloth.Grid, row, col int) []int {
	out := make([]int, 0, 2)
	if col < g.Cols {
		out = append(out, g.Index(row, col+1))
	}
	if row < g.Rows {
		out = append(out, g.Index(row+1, col))
	}
	return out
}
