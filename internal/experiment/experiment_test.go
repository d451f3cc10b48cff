package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/drape/internal/config"
)

func shortConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cloth.Rows, cfg.Cloth.Cols = 3, 3
	cfg.Sim.Duration = 0.5
	cfg.Wind.Seed = 7
	return cfg
}

func TestRunRecordsDefaultMetrics(t *testing.T) {
	exp := New("test", shortConfig())
	if err := exp.Setup(nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, m := range DefaultMetrics() {
		if _, ok := result.Metrics[m.Name()]; !ok {
			t.Errorf("missing metric %s", m.Name())
		}
	}
	if exp.Tile() == nil || !exp.Tile().Draped() {
		t.Error("expected a draped tile")
	}
}

func TestRunWithoutSetup(t *testing.T) {
	if _, err := New("test", shortConfig()).Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	cfg := shortConfig()
	cfg.Cloth.Damping = 2
	if err := New("bad", cfg).Setup(nil); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() float64 {
		exp := New("seeded", shortConfig())
		if err := exp.Setup(nil); err != nil {
			t.Fatal(err)
		}
		r, err := exp.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return r.Metrics["sway"]
	}
	if a, b := run(), run(); a != b {
		t.Errorf("expected deterministic sway, got %v and %v", a, b)
	}
}

func TestApplyParams(t *testing.T) {
	base := shortConfig()
	base.Cloth.Variant = "banner"

	cfg, err := ApplyParams(base, map[string]float64{"damping": 0.5, "total_mass": 2, "wind_x": 0.3, "gravity": 4})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cloth.Damping != 0.5 || cfg.Cloth.TotalMass != 2 || cfg.Wind.Direction[0] != 0.3 || cfg.Cloth.Gravity[1] != -4 {
		t.Errorf("params not applied: %+v", cfg)
	}
	if cfg.Cloth.Variant != "" {
		t.Error("total_mass should clear the variant")
	}
	if base.Cloth.Damping == 0.5 || base.Cloth.Variant != "banner" {
		t.Error("base config was modified")
	}
}

func TestUnknownParam(t *testing.T) {
	if _, err := ApplyParams(shortConfig(), map[string]float64{"stiffness": 1}); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
