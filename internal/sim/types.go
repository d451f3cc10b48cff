package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/drape/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Tile is one draped cloth the simulator can advance. scene.Tile satisfies
// it.
type Tile interface {
	Update(dt float64)
	Reset()
	World() *cloth.World
}

type Metric interface {
	Name() string
	Observe(w *cloth.World)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *cloth.World)
}

type Config struct {
	Dt            float64
	Duration      float64
	SampleEvery   int
	KeepFrames    bool
	ValidateState bool
	Seed          int64
}

// Sample is one row of run telemetry.
type Sample struct {
	Tick      int     `csv:"tick" json:"tick"`
	Time      float64 `csv:"time" json:"time"`
	MeanX     float64 `csv:"mean_x" json:"mean_x"`
	MeanY     float64 `csv:"mean_y" json:"mean_y"`
	MeanZ     float64 `csv:"mean_z" json:"mean_z"`
	MaxStrain float64 `csv:"max_strain" json:"max_strain"`
	Kinetic   float64 `csv:"kinetic_energy" json:"kinetic_energy"`
}

func NewSample(w *cloth.World) Sample {
	mean := w.MeanPosition()
	return Sample{
		Tick:      w.Ticks(),
		Time:      w.Time(),
		MeanX:     mean.X,
		MeanY:     mean.Y,
		MeanZ:     mean.Z,
		MaxStrain: w.MaxStrain(),
		Kinetic:   w.KineticEnergy(),
	}
}

// LogValue implements slog.LogValuer.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Float64("time", s.Time),
		slog.Float64("mean_x", s.MeanX),
		slog.Float64("mean_y", s.MeanY),
		slog.Float64("max_strain", s.MaxStrain),
		slog.Float64("kinetic_energy", s.Kinetic),
	)
}

// Frame is a full snapshot of particle positions at one tick.
type Frame struct {
	Tick      int
	Time      float64
	Positions []r3.Vec
}

type Result struct {
	Samples    []Sample
	Frames     []Frame
	Final      []r3.Vec
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Times returns the time column of the samples.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

// Series returns the named column of the samples. Unknown names give nil.
func (r *Result) Series(name string) []float64 {
	pick := map[string]func(Sample) float64{
		"mean_x":         func(s Sample) float64 { return s.MeanX },
		"mean_y":         func(s Sample) float64 { return s.MeanY },
		"mean_z":         func(s Sample) float64 { return s.MeanZ },
		"max_strain":     func(s Sample) float64 { return s.MaxStrain },
		"kinetic_energy": func(s Sample) float64 { return s.Kinetic },
	}[name]
	if pick == nil {
		return nil
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = pick(s)
	}
	return out
}

// SeriesNames lists the columns accepted by Series.
var SeriesNames = []string{"mean_x", "mean_y", "mean_z", "max_strain", "kinetic_energy"}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim error at t=%.4f (step %d): %s", e.Time, e.Step, e.Message)
}
