package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/experiment"
)

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cloth.Rows, cfg.Cloth.Cols = 2, 2
	cfg.Sim.Duration = 0.25
	cfg.Wind.Seed = 3
	return cfg
}

func TestSearchVisitsEveryPoint(t *testing.T) {
	g, err := NewGridSearch([]string{"damping", "base_force"}, [][]float64{{0.2, 0.8}, {0, 5, 10}})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 6 {
		t.Fatalf("expected 6 points, got %d", g.Size())
	}

	best, trials, err := g.Search(context.Background(), baseConfig(), "max_strain")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(trials) != 6 {
		t.Fatalf("expected 6 trials, got %d", len(trials))
	}
	for _, tr := range trials {
		if tr.Value < best.Value {
			t.Errorf("trial %v beats best %v", tr, best)
		}
	}
	if len(best.Params) != 2 {
		t.Errorf("expected both params on best, got %v", best.Params)
	}
}

func TestSearchUnknownMetric(t *testing.T) {
	g, _ := NewGridSearch([]string{"damping"}, [][]float64{{0.5}})
	if _, _, err := g.Search(context.Background(), baseConfig(), "nope"); err == nil {
		t.Error("expected error")
	}
}

func TestSearchUnknownParam(t *testing.T) {
	g, _ := NewGridSearch([]string{"stiffness"}, [][]float64{{1}})
	_, _, err := g.Search(context.Background(), baseConfig(), "max_strain")
	if !errors.Is(err, experiment.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	g, _ := NewGridSearch([]string{"damping"}, [][]float64{{0.1, 0.5, 0.9}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := g.Search(ctx, baseConfig(), "max_strain"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewGridSearchValidates(t *testing.T) {
	if _, err := NewGridSearch([]string{"damping"}, nil); err == nil {
		t.Error("expected mismatch error")
	}
	if _, err := NewGridSearch([]string{"damping"}, [][]float64{{}}); err == nil {
		t.Error("expected empty range error")
	}
}
