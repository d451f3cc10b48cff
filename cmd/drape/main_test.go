package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/drape/internal/sim"
	"github.com/san-kum/drape/internal/storage"
)

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("drape %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

// savedRun records a short run in a fresh data dir and returns both.
func savedRun(t *testing.T) (dir, runID string) {
	t.Helper()
	dir = t.TempDir()
	execute(t, "run", "--preset", "still", "--time", "0.5", "--seed", "1", "--data", dir, "--log-level", "error")

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one saved run, got %d", len(runs))
	}
	return dir, runs[0].ID
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"damping=0.9,0.5", "base_force=11.5"})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "damping" || names[1] != "base_force" {
		t.Fatalf("unexpected names %v", names)
	}
	if ranges[0][0] != 0.5 || ranges[0][1] != 0.9 || ranges[1][0] != 11.5 {
		t.Errorf("unexpected ranges %v", ranges)
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
	}{
		{"empty", nil},
		{"no equals", []string{"damping"}},
		{"no values", []string{"damping="}},
		{"bad number", []string{"damping=abc"}},
		{"duplicate", []string{"damping=0.1", "damping=0.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseGrid(tt.specs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("json", "debug"); err != nil {
		t.Errorf("json/debug: %v", err)
	}
	if err := setupLogging("text", "warn"); err != nil {
		t.Errorf("text/warn: %v", err)
	}
	if err := setupLogging("xml", "info"); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := setupLogging("text", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestPresetInfoCoversPresets(t *testing.T) {
	for _, name := range sortedPresets() {
		if presetInfo[name] == "" {
			t.Errorf("preset %s has no description", name)
		}
	}
}

func TestExportCSVWritesToStdout(t *testing.T) {
	dir, id := savedRun(t)
	chdir(t, t.TempDir())

	out := execute(t, "export-csv", id, "--data", dir)
	if !strings.HasPrefix(out, "tick,time,mean_x") {
		t.Errorf("expected csv header on stdout, got %q", out)
	}
	if _, err := os.Stat("frame.svg"); !os.IsNotExist(err) {
		t.Error("export-csv without --out must not create frame.svg")
	}
}

func TestExportJSONWritesToStdout(t *testing.T) {
	dir, id := savedRun(t)
	chdir(t, t.TempDir())

	out := execute(t, "export-json", id, "--data", dir)
	var data storage.ExportData
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("stdout is not json: %v\n%s", err, out)
	}
	if data.ID != id || len(data.Samples) == 0 {
		t.Errorf("unexpected export: id=%s samples=%d", data.ID, len(data.Samples))
	}
}

func TestExportCSVToFile(t *testing.T) {
	dir, id := savedRun(t)
	path := filepath.Join(t.TempDir(), "run.csv")

	if out := execute(t, "export-csv", id, "--data", dir, "-o", path); out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "tick,time,mean_x") {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestPlotDefaultsToEverySeries(t *testing.T) {
	dir, id := savedRun(t)

	out := execute(t, "plot", id, "--data", dir)
	for _, name := range sim.SeriesNames {
		if !strings.Contains(out, name) {
			t.Errorf("plot output is missing %s", name)
		}
	}

	single := execute(t, "plot", id, "--data", dir, "--series", "max_strain")
	if strings.Contains(single, "kinetic_energy") {
		t.Error("--series should plot one column only")
	}
}

func TestAnalyzeDefaultsToSway(t *testing.T) {
	dir, id := savedRun(t)

	out := execute(t, "analyze", id, "--data", dir)
	if !strings.Contains(out, "mean_x power spectrum") {
		t.Errorf("expected the mean_x spectrum, got:\n%s", out)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
