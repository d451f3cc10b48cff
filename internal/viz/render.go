package viz

import (
	"sort"

	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/mesh"
	"github.com/san-kum/drape/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

type Edge struct {
	Start, End r3.Vec
}

// Wireframe is a set of world-space segments.
type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()              { w.Edges = w.Edges[:0] }

// AddMesh adds the grid lines of a plane mesh, read from its position buffer
// and shifted by offset.
func (w *Wireframe) AddMesh(grid cloth.Grid, pos *mesh.Attribute, offset r3.Vec) {
	if grid.Empty() || pos.Count() < grid.Count() {
		return
	}
	at := func(row, col int) r3.Vec { return r3.Add(pos.Vec(grid.Index(row, col)), offset) }
	for row := 0; row <= grid.Rows; row++ {
		for col := 0; col <= grid.Cols; col++ {
			if col < grid.Cols {
				w.AddEdge(at(row, col), at(row, col+1))
			}
			if row < grid.Rows {
				w.AddEdge(at(row, col), at(row+1, col))
			}
		}
	}
}

// AddAnchors draws the tethers of an anchored cloth.
func (w *Wireframe) AddAnchors(world *cloth.World, offset r3.Vec) {
	for _, a := range world.Graph().Anchors() {
		p := world.Particles().Position(a.Particle)
		w.AddEdge(r3.Add(a.Point, offset), r3.Add(p, offset))
	}
}

// SceneWireframe lays the tiles out left to right, centered on the focused
// draped tile, with spacing between tile centers.
func SceneWireframe(s *scene.Scene, spacing float64) *Wireframe {
	w := NewWireframe()
	tiles := s.Tiles()
	center := 0
	for i, t := range tiles {
		if t == s.Draped() {
			center = i
		}
	}
	for i, t := range tiles {
		offset := r3.Vec{X: float64(i-center) * spacing}
		rows, cols := t.Plane.Segments()
		w.AddMesh(cloth.NewGrid(rows, cols), t.Plane.Position, offset)
		if t.Draped() {
			w.AddAnchors(t.World(), offset)
		}
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws the wireframe far to near.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, ok1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, ok2 := cam.Project(e.End, cw, ch)
		if ok1 && ok2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}
