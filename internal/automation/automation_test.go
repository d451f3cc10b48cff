package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/storage"
)

const scenarioYAML = `name: calm-then-gust
description: settle, then blow
steps:
  - preset: still
    duration: 0.2
    params:
      damping: 0.9
  - preset: gust
    duration: 0.2
    seed: 42
    save_as: gusty
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "calm-then-gust" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[0].Params["damping"] != 0.9 {
		t.Errorf("expected damping override, got %v", sc.Steps[0].Params)
	}
}

func TestLoadScenarioWithoutSteps(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error")
	}
}

func TestResolveStep(t *testing.T) {
	cfg, err := ScenarioStep{Preset: "gust", Duration: 1.5, Seed: 9, Params: map[string]float64{"wind_x": 0.1}}.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Duration != 1.5 || cfg.Wind.Seed != 9 || cfg.Wind.Direction[0] != 0.1 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if config.Presets["gust"].Wind.Direction[0] == 0.1 {
		t.Error("preset was modified")
	}

	if _, err := (ScenarioStep{Preset: "hurricane"}).Resolve(); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestRunScenarioSavesNamedSteps(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, store)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID != "" {
		t.Error("unnamed step should not be saved")
	}
	if results[1].Name != "gusty" || results[1].RunID == "" {
		t.Errorf("expected saved gusty step, got %+v", results[1])
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Seed != 42 {
		t.Errorf("expected one saved run with seed 42, got %+v", runs)
	}
}

func TestSweepValues(t *testing.T) {
	s := &ParameterSweep{ParamMin: 0, ParamMax: 1, NumSteps: 5}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	got := s.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if v := (&ParameterSweep{ParamMin: 3, NumSteps: 1}).Values(); len(v) != 1 || v[0] != 3 {
		t.Errorf("single step sweep: %v", v)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Cloth.Rows, base.Cloth.Cols = 2, 2
	base.Sim.Duration = 0.2
	base.Wind.Seed = 1

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base: base, ParamName: "damping", ParamMin: 0.2, ParamMax: 0.9, NumSteps: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if _, ok := r.Metrics["max_strain"]; !ok {
			t.Errorf("missing max_strain at %v", r.ParamValue)
		}
	}
}
