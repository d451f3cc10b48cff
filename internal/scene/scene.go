package scene

import (
	"errors"

	"github.com/san-kum/drape/internal/wind"
)

var ErrNoDrapedTile = errors.New("scene: no draped tile")

// Scene is a gallery of tiles sharing one screen. At most one tile receives
// pointer steering at a time.
type Scene struct {
	tiles  []*Tile
	screen wind.Size
	active int
}

func New(screen wind.Size) *Scene {
	return &Scene{screen: screen, active: -1}
}

// Add appends t. The first draped tile added becomes the steered one.
func (s *Scene) Add(t *Tile) {
	s.tiles = append(s.tiles, t)
	if s.active < 0 && t.Draped() {
		s.active = len(s.tiles) - 1
	}
}

func (s *Scene) Tiles() []*Tile    { return s.tiles }
func (s *Scene) Screen() wind.Size { return s.screen }

// Draped returns the steered tile, or nil.
func (s *Scene) Draped() *Tile {
	if s.active < 0 {
		return nil
	}
	return s.tiles[s.active]
}

// Focus makes tile i the steered one.
func (s *Scene) Focus(i int) error {
	if i < 0 || i >= len(s.tiles) || !s.tiles[i].Draped() {
		return ErrNoDrapedTile
	}
	s.active = i
	return nil
}

// Update advances every draped tile by dt, in insertion order.
func (s *Scene) Update(dt float64) {
	for _, t := range s.tiles {
		t.Update(dt)
	}
}

// PointerMove steers the wind of the focused tile. The target is picked up
// at the start of the tile's next tick.
func (s *Scene) PointerMove(x, y float64) {
	t := s.Draped()
	if t == nil || t.steering == nil {
		return
	}
	t.steering.PointerMove(x, y, s.screen)
}

// Resize records the new screen size used to normalize pointer input.
func (s *Scene) Resize(screen wind.Size) {
	s.screen = screen
}

func (s *Scene) Reset() {
	for _, t := range s.tiles {
		t.Reset()
	}
}
