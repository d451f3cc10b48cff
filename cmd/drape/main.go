package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/experiment"
	"github.com/san-kum/drape/internal/scene"
	"github.com/san-kum/drape/internal/viz"
	"github.com/san-kum/drape/internal/wind"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	logFormat     string
	logLevel      string
	configFile    string
	preset        string
	dt            float64
	duration      float64
	seed          int64
	rows          int
	cols          int
	pin           string
	noise         string
	sampleEvery   int
	frameRate     int
	theme         string
	plotSeries    string
	analyzeSeries string
	csvOut        string
	jsonOut       string
	svgOut        string
	at            float64
	numRuns       int
	svgSize       int
)

var presetInfo = map[string]string{
	"breeze":   "default tile in a light simplex breeze",
	"gust":     "strong diagonal wind",
	"still":    "no wind, the cloth just settles",
	"banner":   "wide, heavier banner on soft anchors",
	"freefall": "nothing pinned, falls under gravity",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drape",
		Short: "cloth-draped gallery tile simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logFormat, logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(sortedPresets(), presetInfo, launchPreset)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".drape", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the cloth in the terminal, steer the wind with the mouse",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSeries, "series", "", "single column to plot (default all)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sway spectrum and telemetry summary",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeSeries, "series", "mean_x", "column to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export telemetry as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "replay a run and draw the cloth at a given time",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&at, "at", 1.0, "simulated time of the frame (s)")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "frame.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the cloth step across grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchStep,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one tile per seed in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of consecutive runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveResults, "save", true, "save steps that have save_as")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and tabulate the metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter ("+strings.Join(experiment.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "max_strain", "metric to minimize")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initCmd, benchCmd, ensembleCmd,
		scenarioCmd, sweepCmd, tuneCmd)

	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "noise seed")
	cmd.Flags().IntVar(&rows, "rows", 8, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", 8, "grid columns")
	cmd.Flags().StringVar(&pin, "pin", "top", "pin mode (top, anchor, none)")
	cmd.Flags().StringVar(&noise, "noise", "simplex", "wind noise (simplex, perlin)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "ticks between telemetry samples")
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, sortedPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if flags.Changed("seed") || cfg.Wind.Seed == 0 {
		cfg.Wind.Seed = seed
	}
	if flags.Changed("rows") {
		cfg.Cloth.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cloth.Cols = cols
	}
	if flags.Changed("pin") {
		cfg.Cloth.Pin = pin
	}
	if flags.Changed("noise") {
		cfg.Wind.Noise = noise
	}
	if flags.Changed("sample-every") {
		cfg.Sim.SampleEvery = sampleEvery
	}
	if f := flags.Lookup("fps"); f != nil && f.Changed {
		cfg.View.FPS = frameRate
	}
	if f := flags.Lookup("theme"); f != nil && f.Changed {
		cfg.View.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runName() string {
	if preset != "" {
		return preset
	}
	return "run"
}

func sortedPresets() []string {
	names := config.ListPresets()
	sort.Strings(names)
	return names
}

func launchPreset(name string) (*scene.Scene, viz.LiveOptions, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, viz.LiveOptions{}, fmt.Errorf("unknown preset: %s", name)
	}
	cfg.Wind.Seed = time.Now().UnixNano()
	s, err := cfg.BuildScene(wind.Size{Width: 80, Height: 24})
	if err != nil {
		return nil, viz.LiveOptions{}, err
	}
	return s, liveOptions(name, cfg), nil
}

func liveOptions(title string, cfg *config.Config) viz.LiveOptions {
	return viz.LiveOptions{
		Title: title,
		FPS:   cfg.View.FPS,
		Dt:    cfg.Sim.Dt,
		Theme: cfg.View.Theme,
	}
}

func setupLogging(format, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}
