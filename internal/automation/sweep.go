package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/experiment"
	"gonum.org/v1/gonum/floats"
)

// ParameterSweep runs one experiment per evenly spaced value of a parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// Values lists the swept values, endpoints included.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	return floats.Span(make([]float64, s.NumSteps), s.ParamMin, s.ParamMax)
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.Base == nil {
		return nil, fmt.Errorf("sweep %s: no base config", sweep.ParamName)
	}
	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg, err := experiment.ApplyParams(sweep.Base, map[string]float64{sweep.ParamName: v})
		if err != nil {
			return nil, err
		}
		exp := experiment.New(fmt.Sprintf("%s=%g", sweep.ParamName, v), cfg)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{ParamValue: v, Metrics: result.Metrics})
		slog.Debug("sweep point", "param", sweep.ParamName, "value", v, "index", i+1, "of", len(values))
	}

	return results, nil
}
