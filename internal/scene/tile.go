package scene

import (
	"fmt"

	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/mesh"
	"github.com/san-kum/drape/internal/wind"
	"gonum.org/v1/gonum/spatial/r3"
)

// Variant names one of the two draped tile designs. They differ only in the
// total mass spread over the cloth.
type Variant string

const (
	VariantTile   Variant = "tile"
	VariantBanner Variant = "banner"
)

func (v Variant) Mass() float64 {
	if v == VariantBanner {
		return 3
	}
	return 1
}

const DefaultSegments = 8

type TileOptions struct {
	Name       string
	Width      float64
	Height     float64
	Rows       int
	Cols       int
	Draped     bool
	Variant    Variant
	Cloth      cloth.Config
	Wind       wind.Config
	Noise      wind.NoiseKind
	Seed       int64
	Direction  r3.Vec
	Transition float64
	Calm       bool
}

// DefaultTileOptions describes the draped 1x1 tile with 8x8 segments.
func DefaultTileOptions(name string) TileOptions {
	return TileOptions{
		Name:       name,
		Width:      1,
		Height:     1,
		Rows:       DefaultSegments,
		Cols:       DefaultSegments,
		Draped:     true,
		Variant:    VariantTile,
		Cloth:      cloth.DefaultConfig(),
		Wind:       wind.DefaultConfig(),
		Noise:      wind.Simplex,
		Direction:  wind.DefaultDirection,
		Transition: wind.DefaultTransition,
	}
}

// Tile is one gallery image. Static tiles only own their mesh; a draped tile
// also owns a cloth world and the wind acting on it.
type Tile struct {
	Name  string
	Plane *mesh.Plane

	world    *cloth.World
	field    *wind.Field
	steering *wind.Steering
}

func NewTile(opts TileOptions) (*Tile, error) {
	t := &Tile{
		Name:  opts.Name,
		Plane: mesh.NewPlane(opts.Width, opts.Height, opts.Cols, opts.Rows),
	}
	if !opts.Draped {
		return t, nil
	}

	cfg := opts.Cloth
	if opts.Variant != "" {
		cfg.TotalMass = opts.Variant.Mass()
	}

	grid := cloth.NewGrid(opts.Rows, opts.Cols)
	w, err := cloth.New(t.Plane.Position, grid, cfg)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", opts.Name, err)
	}
	t.world = w

	if opts.Calm {
		return t, nil
	}

	noise, err := wind.NewNoise(opts.Noise, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", opts.Name, err)
	}
	t.steering = wind.NewSteering(opts.Direction, opts.Transition)
	t.field = wind.NewField(grid, noise, t.steering, opts.Wind)
	w.SetWind(t.field)
	return t, nil
}

// Update runs one tick on a draped tile: the wind is sampled inside the world
// step, then positions are copied into the mesh. Static tiles do nothing.
func (t *Tile) Update(dt float64) {
	if t.world == nil {
		return
	}
	t.world.Step(dt)
	t.world.Sync(t.Plane.Position)
}

func (t *Tile) Reset() {
	if t.world == nil {
		return
	}
	t.world.Reset()
	t.world.Sync(t.Plane.Position)
}

func (t *Tile) Draped() bool             { return t.world != nil }
func (t *Tile) World() *cloth.World      { return t.world }
func (t *Tile) Field() *wind.Field       { return t.field }
func (t *Tile) Steering() *wind.Steering { return t.steering }
