package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/metrics"
	"github.com/san-kum/drape/internal/scene"
	"github.com/san-kum/drape/internal/sim"
)

// StrainThreshold is the relative stretch above which a tick counts as
// unstable.
const StrainThreshold = 0.05

// DefaultMetrics is the metric set recorded for every headless run.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewMaxStrain(),
		metrics.NewStability(StrainThreshold),
		metrics.NewEnergy(),
		metrics.NewSettle(),
		metrics.NewSway(),
		metrics.NewSag(),
		metrics.NewWindLoad(),
	}
}

// Experiment is one headless run of a draped tile built from a config.
type Experiment struct {
	name      string
	cfg       *config.Config
	tile      *scene.Tile
	simulator *sim.Simulator
}

func New(name string, cfg *config.Config) *Experiment {
	return &Experiment{name: name, cfg: cfg}
}

// Setup builds the tile and attaches metrics. A nil slice means
// DefaultMetrics.
func (e *Experiment) Setup(ms []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	tile, err := scene.NewTile(e.cfg.TileOptions(e.name))
	if err != nil {
		return fmt.Errorf("experiment %s: %w", e.name, err)
	}
	if ms == nil {
		ms = DefaultMetrics()
	}
	e.tile = tile
	e.simulator = sim.New(tile)
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment %s not setup", e.name)
	}
	return e.simulator.Run(ctx, e.cfg.SimParams())
}

func (e *Experiment) Name() string              { return e.name }
func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Tile() *scene.Tile         { return e.tile }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
