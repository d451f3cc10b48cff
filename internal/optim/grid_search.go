package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/experiment"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates every combination of parameter values and keeps the
// one minimizing a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("grid search: %d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("grid search: no values for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs one experiment per grid point on top of base and returns the
// best point and every trial in grid order.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (Trial, []Trial, error) {
	best := Trial{Value: math.Inf(1)}
	trials := make([]Trial, 0, g.Size())

	err := g.searchRecursive(ctx, 0, map[string]float64{}, func(params map[string]float64) error {
		cfg, err := experiment.ApplyParams(base, params)
		if err != nil {
			return err
		}
		exp := experiment.New("search", cfg)
		if err := exp.Setup(nil); err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: unknown metric %s", metricName)
		}

		trial := Trial{Params: params, Value: val}
		trials = append(trials, trial)
		if val < best.Value {
			best = trial
		}
		return nil
	})
	if err != nil {
		return Trial{}, trials, err
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}
