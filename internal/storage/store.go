package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Pin       string             `json:"pin"`
	Noise     string             `json:"noise"`
	Steps     int                `json:"steps"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata, the config snapshot and the
// sampled telemetry. It returns the run ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Seed:      cfg.Wind.Seed,
		Dt:        cfg.Sim.Dt,
		Duration:  cfg.Sim.Duration,
		Rows:      cfg.Cloth.Rows,
		Cols:      cfg.Cloth.Cols,
		Pin:       cfg.Cloth.Pin,
		Noise:     cfg.Wind.Noise,
		Steps:     result.StepsTaken,
		Samples:   len(result.Samples),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	f, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if len(result.Samples) > 0 {
		if err := gocsv.MarshalFile(&result.Samples, f); err != nil {
			return "", fmt.Errorf("write frames: %w", err)
		}
	}

	slog.Info("run saved", "id", runID, "samples", len(result.Samples), "dir", runDir)
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first. A missing base directory
// is an empty store.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			slog.Debug("skipping run", "dir", entry.Name(), "error", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	path := s.path(runID, configFile)
	if _, err := os.Stat(path); err != nil {
		return nil, notFound(runID, err)
	}
	return config.Load(path)
}

// LoadSamples reads the telemetry of a run. A run saved without samples
// yields an empty slice.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	f, err := os.Open(s.path(runID, framesFile))
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer f.Close()

	samples := []sim.Sample{}
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []sim.Sample{}, nil
		}
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return samples, nil
}

// LoadResult rebuilds a sim.Result from the stored samples and metrics.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{Samples: samples, Metrics: meta.Metrics, StepsTaken: meta.Steps}, nil
}

func (s *Store) path(runID, file string) string {
	return filepath.Join(s.baseDir, runID, file)
}

func notFound(runID string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}
