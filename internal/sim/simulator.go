package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/drape/internal/cloth"
)

// Simulator drives one tile at a fixed tick, feeding metrics and observers
// after every step and sampling telemetry along the way.
type Simulator struct {
	tile      Tile
	metrics   []Metric
	observers []Observer
	pool      *FramePool
}

func New(tile Tile) *Simulator {
	return &Simulator{
		tile:      tile,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run resets the tile and advances it for cfg.Duration. On cancellation the
// partial result is returned with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s.tile.Reset()
	w := s.tile.World()
	n := w.Particles().Len()
	if s.pool == nil || s.pool.Size() != n {
		s.pool = NewFramePool(n)
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	slog.Debug("run started", "particles", n, "constraints", w.Graph().Len(), "steps", steps, "dt", cfg.Dt)

	s.record(result, cfg)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.tile.Update(cfg.Dt)
		result.StepsTaken++

		if cfg.ValidateState && !w.Valid() {
			err := SimError{Time: w.Time(), Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			slog.Warn("run aborted", "error", err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(w)
		}
		for _, obs := range s.observers {
			obs.OnStep(w)
		}

		if result.StepsTaken%every == 0 {
			s.record(result, cfg)
		}
	}

	s.finish(result)
	slog.Debug("run finished", "steps", result.StepsTaken, "metrics", result.Metrics)
	return result, nil
}

func (s *Simulator) record(result *Result, cfg Config) {
	w := s.tile.World()
	result.Samples = append(result.Samples, NewSample(w))
	if cfg.KeepFrames {
		frame := s.pool.Get()
		frame.Tick = w.Ticks()
		frame.Time = w.Time()
		frame.Positions = w.Particles().Positions(frame.Positions)
		result.Frames = append(result.Frames, frame)
	}
}

func (s *Simulator) finish(result *Result) {
	result.Final = s.tile.World().Particles().Positions(nil)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Release hands the frames of result back to the simulator's pool.
func (s *Simulator) Release(result *Result) {
	if s.pool == nil {
		return
	}
	for _, f := range result.Frames {
		s.pool.Put(f)
	}
	result.Frames = nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	return nil
}

// RunWithCallback steps the tile until cfg.Duration elapses, the context is
// cancelled, or callback returns false. The tile is not reset.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *cloth.World) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	w := s.tile.World()
	steps := int(math.Round(cfg.Duration / cfg.Dt))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(w) {
			return nil
		}

		s.tile.Update(cfg.Dt)

		if cfg.ValidateState && !w.Valid() {
			return SimError{Time: w.Time(), Step: i, Message: "invalid state (NaN/Inf)"}
		}
	}

	return nil
}
