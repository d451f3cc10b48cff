package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/drape/internal/analysis"
	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/config"
	"github.com/san-kum/drape/internal/experiment"
	"github.com/san-kum/drape/internal/scene"
	"github.com/san-kum/drape/internal/sim"
	"github.com/san-kum/drape/internal/storage"
	"github.com/san-kum/drape/internal/viz"
	"github.com/san-kum/drape/internal/wind"
	"github.com/spf13/cobra"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(runName(), cfg)
	if err := exp.Setup(nil); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(out, "running %dx%d cloth for %.1fs (dt=%.4f, pin=%s, wind=%s)\n",
		cfg.Cloth.Rows, cfg.Cloth.Cols, cfg.Sim.Duration, cfg.Sim.Dt, cfg.Cloth.Pin, windLabel(cfg))

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if err != nil {
		slog.Warn("simulation stopped early", "error", err, "steps", result.StepsTaken)
	}
	elapsed := time.Since(start)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	runID, err := store.Save(runName(), cfg, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Fprintf(out, "\nrun %s: %d steps in %v\n\n", runID, result.StepsTaken, elapsed.Round(time.Millisecond))
	printMetrics(out, result.Metrics)
	return nil
}

func windLabel(cfg *config.Config) string {
	if !cfg.Wind.Enabled {
		return "calm"
	}
	return cfg.Wind.Noise
}

func printMetrics(out io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if preset == "" && configFile == "" {
		return viz.RunPicker(sortedPresets(), presetInfo, launchPreset)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.BuildScene(wind.Size{Width: 80, Height: 24})
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	return viz.RunLive(s, liveOptions(runName(), cfg))
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIMESTAMP\tGRID\tPIN\tNOISE\tDURATION\tSTEPS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%s\t%.1fs\t%d\n",
			r.ID, r.Name, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Rows, r.Cols, r.Pin, r.Noise, r.Duration, r.Steps)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := storage.New(dataDir)
	meta, result, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", meta.ID)
	}

	names := sim.SeriesNames
	if plotSeries != "" {
		if result.Series(plotSeries) == nil {
			return fmt.Errorf("unknown series %q (available: %v)", plotSeries, sim.SeriesNames)
		}
		names = []string{plotSeries}
	}

	fmt.Fprintf(out, "run: %s (%s)\n\n", meta.ID, meta.Name)
	for _, name := range names {
		graph := asciigraph.Plot(result.Series(name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := storage.New(dataDir)
	meta, result, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}

	values := result.Series(analyzeSeries)
	if values == nil {
		return fmt.Errorf("unknown series %q (available: %v)", analyzeSeries, sim.SeriesNames)
	}
	times := result.Times()
	if len(times) < 4 {
		return fmt.Errorf("run %s has too few samples to analyze", meta.ID)
	}
	spacing := times[1] - times[0]

	fmt.Fprintf(out, "run: %s (%s), %d samples every %.4fs\n\n", meta.ID, meta.Name, len(times), spacing)

	bins := analysis.PowerSpectrum(values, spacing)
	if powers := analysis.Powers(bins); len(powers) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(powers,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(analyzeSeries+" power spectrum"),
		))
		fmt.Fprintln(out)
	}
	if peak, ok := analysis.DominantFrequency(values, spacing); ok {
		fmt.Fprintf(out, "dominant sway frequency: %.3f Hz (power %.3g)\n", peak.Freq, peak.Power)
	} else {
		fmt.Fprintln(out, "no dominant frequency (flat signal)")
	}
	fmt.Fprintf(out, "kinetic energy settles at t=%.2fs\n\n", analysis.SettleTime(times, result.Series("kinetic_energy"), 1e-3))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range sim.SeriesNames {
		s := analysis.Summarize(result.Series(name))
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\t%.5f\n", name, s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}

// output opens path, or the command's stdout when it is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	_, result, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output(cmd, csvOut)
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(w, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, result, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output(cmd, jsonOut)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

// exportSVG replays a stored run from its config snapshot. Runs are seeded,
// so the replayed frame matches the recorded telemetry.
func exportSVG(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store := storage.New(dataDir)
	cfg, err := store.LoadConfig(args[0])
	if err != nil {
		return err
	}
	if at <= 0 {
		return fmt.Errorf("--at must be positive, got %v", at)
	}

	cfg.Sim.Duration = at
	exp := experiment.New(args[0], cfg)
	if err := exp.Setup(nil); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	w := exp.Tile().World()
	stroke := string(viz.GetTheme(cfg.View.Theme).Cloth)
	if err := viz.FrameToSVG(f, w.Grid(), result.Final, w.Particles().Pinned, svgSize, stroke); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "frame at t=%.2fs written to %s\n", w.Time(), svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tGRID\tPIN\tWIND\tDESCRIPTION")
	for _, name := range sortedPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%s\n", name,
			cfg.Cloth.Rows, cfg.Cloth.Cols, cfg.Cloth.Pin, windLabel(cfg), presetInfo[name])
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := "drape.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "config written to %s\n", path)
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sizes := []int{4, 8, 16, 32, 64}
	const steps = 600

	fmt.Fprintf(out, "benchmarking cloth step (%d ticks per grid)\n\n", steps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tCONSTRAINTS\tTIME\tSTEPS/SEC")
	for _, n := range sizes {
		opts := scene.DefaultTileOptions("bench")
		opts.Rows, opts.Cols = n, n
		opts.Seed = 1
		tile, err := scene.NewTile(opts)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < steps; i++ {
			tile.Update(cloth.DefaultDt)
		}
		elapsed := time.Since(start)

		world := tile.World()
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n", n, n,
			world.Particles().Len(), world.Graph().Len(),
			elapsed.Round(time.Microsecond), float64(steps)/elapsed.Seconds())
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", numRuns)
	}

	build := func(seed int64) (sim.Tile, error) {
		c := cfg.Clone()
		c.Wind.Seed = seed
		return scene.NewTile(c.TileOptions(fmt.Sprintf("seed-%d", seed)))
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	ens := sim.NewEnsemble(build, experiment.DefaultMetrics, numRuns, cfg.Wind.Seed)
	results, err := ens.Run(ctx, cfg.SimParams())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d runs in %v\n\n", len(results), time.Since(start).Round(time.Millisecond))

	names := []string{"max_strain", "sway", "sag", "wind_load"}
	columns := make(map[string][]float64, len(names))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMAX_STRAIN\tSWAY\tSAG\tWIND_LOAD")
	for i, r := range results {
		fmt.Fprintf(w, "%d", cfg.Wind.Seed+int64(i))
		for _, name := range names {
			v := r.Metrics[name]
			columns[name] = append(columns[name], v)
			fmt.Fprintf(w, "\t%.5f", v)
		}
		fmt.Fprintln(w)
	}
	for _, row := range []struct {
		label string
		pick  func(analysis.Summary) float64
	}{
		{"mean", func(s analysis.Summary) float64 { return s.Mean }},
		{"std", func(s analysis.Summary) float64 { return s.Std }},
	} {
		fmt.Fprint(w, row.label)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.5f", row.pick(analysis.Summarize(columns[name])))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
