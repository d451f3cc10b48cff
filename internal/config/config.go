package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/scene"
	"github.com/san-kum/drape/internal/sim"
	"github.com/san-kum/drape/internal/wind"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = cloth.DefaultDt
	DefaultDuration    = 10.0
	DefaultSampleEvery = 6
	DefaultFPS         = 60
	DefaultTheme       = "gallery"
)

var ErrInvalid = errors.New("config: invalid")

// Vec3 is written as a three element YAML sequence.
type Vec3 [3]float64

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func FromR3(v r3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }

type Config struct {
	Cloth ClothConfig `yaml:"cloth"`
	Wind  WindConfig  `yaml:"wind"`
	Sim   SimConfig   `yaml:"sim"`
	View  ViewConfig  `yaml:"view"`
}

type ClothConfig struct {
	Rows            int     `yaml:"rows"`
	Cols            int     `yaml:"cols"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Variant         string  `yaml:"variant"`
	TotalMass       float64 `yaml:"total_mass"`
	Damping         float64 `yaml:"damping"`
	Gravity         Vec3    `yaml:"gravity"`
	InitialVelocity Vec3    `yaml:"initial_velocity"`
	Pin             string  `yaml:"pin"`
	AnchorOffset    Vec3    `yaml:"anchor_offset"`
}

type WindConfig struct {
	Enabled    bool    `yaml:"enabled"`
	BaseForce  float64 `yaml:"base_force"`
	Offset     float64 `yaml:"offset"`
	Noise      string  `yaml:"noise"`
	Seed       int64   `yaml:"seed"`
	Direction  Vec3    `yaml:"direction"`
	Transition float64 `yaml:"transition"`
}

type SimConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Tiles int    `yaml:"tiles"`
}

func DefaultConfig() *Config {
	c := cloth.DefaultConfig()
	return &Config{
		Cloth: ClothConfig{
			Rows:            scene.DefaultSegments,
			Cols:            scene.DefaultSegments,
			Width:           1,
			Height:          1,
			TotalMass:       c.TotalMass,
			Damping:         c.Damping,
			Gravity:         FromR3(c.Gravity),
			InitialVelocity: FromR3(c.InitialVelocity),
			Pin:             string(c.Pin),
			AnchorOffset:    FromR3(c.AnchorOffset),
		},
		Wind: WindConfig{
			Enabled:    true,
			BaseForce:  wind.DefaultBaseForce,
			Offset:     wind.DefaultOffset,
			Noise:      string(wind.Simplex),
			Direction:  FromR3(wind.DefaultDirection),
			Transition: wind.DefaultTransition,
		},
		Sim: SimConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: DefaultSampleEvery,
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Tiles: 3,
		},
	}
}

// Load reads a YAML file over the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Cloth.TotalMass < 0 {
		return fmt.Errorf("%w: total_mass must not be negative, got %f", ErrInvalid, c.Cloth.TotalMass)
	}
	if c.Cloth.Damping < 0 || c.Cloth.Damping > 1 {
		return fmt.Errorf("%w: damping must be in [0, 1], got %f", ErrInvalid, c.Cloth.Damping)
	}
	if _, err := cloth.ParsePinMode(c.Cloth.Pin); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch scene.Variant(c.Cloth.Variant) {
	case "", scene.VariantTile, scene.VariantBanner:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalid, c.Cloth.Variant)
	}
	switch wind.NoiseKind(c.Wind.Noise) {
	case "", wind.Simplex, wind.Perlin:
	default:
		return fmt.Errorf("%w: unknown noise %q", ErrInvalid, c.Wind.Noise)
	}
	if c.Wind.Transition < 0 {
		return fmt.Errorf("%w: transition must not be negative, got %f", ErrInvalid, c.Wind.Transition)
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalid, c.Sim.Duration)
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.View.FPS)
	}
	return nil
}

// ClothParams converts the cloth section. A non-empty variant overrides
// total_mass once the tile is built.
func (c *Config) ClothParams() cloth.Config {
	pin, _ := cloth.ParsePinMode(c.Cloth.Pin)
	return cloth.Config{
		TotalMass:       c.Cloth.TotalMass,
		Damping:         c.Cloth.Damping,
		Gravity:         c.Cloth.Gravity.R3(),
		InitialVelocity: c.Cloth.InitialVelocity.R3(),
		Pin:             pin,
		AnchorOffset:    c.Cloth.AnchorOffset.R3(),
	}
}

// TileOptions builds the options of the draped tile.
func (c *Config) TileOptions(name string) scene.TileOptions {
	return scene.TileOptions{
		Name:       name,
		Width:      c.Cloth.Width,
		Height:     c.Cloth.Height,
		Rows:       c.Cloth.Rows,
		Cols:       c.Cloth.Cols,
		Draped:     true,
		Variant:    scene.Variant(c.Cloth.Variant),
		Cloth:      c.ClothParams(),
		Wind:       wind.Config{BaseForce: c.Wind.BaseForce, Offset: c.Wind.Offset},
		Noise:      wind.NoiseKind(c.Wind.Noise),
		Seed:       c.Wind.Seed,
		Direction:  c.Wind.Direction.R3(),
		Transition: c.Wind.Transition,
		Calm:       !c.Wind.Enabled,
	}
}

// BuildScene assembles View.Tiles tiles with the draped one in the middle,
// the way the gallery drapes its second image.
func (c *Config) BuildScene(screen wind.Size) (*scene.Scene, error) {
	n := max(c.View.Tiles, 1)
	s := scene.New(screen)
	for i := 0; i < n; i++ {
		opts := c.TileOptions(fmt.Sprintf("tile-%d", i))
		opts.Draped = i == n/2
		t, err := scene.NewTile(opts)
		if err != nil {
			return nil, err
		}
		s.Add(t)
	}
	return s, nil
}

func (c *Config) SimParams() sim.Config {
	return sim.Config{
		Dt:            c.Sim.Dt,
		Duration:      c.Sim.Duration,
		SampleEvery:   c.Sim.SampleEvery,
		ValidateState: true,
		Seed:          c.Wind.Seed,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
