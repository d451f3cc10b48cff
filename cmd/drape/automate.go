package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/drape/internal/automation"
	"github.com/san-kum/drape/internal/optim"
	"github.com/san-kum/drape/internal/storage"
	"github.com/spf13/cobra"
)

var (
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	gridSpecs   []string
	metricName  string
	saveResults bool
)

var sweepColumns = []string{"max_strain", "stability", "sway", "sag", "settle", "wind_load"}

func runScenario(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var store *storage.Store
	if saveResults {
		store = storage.New(dataDir)
		if err := store.Init(); err != nil {
			return fmt.Errorf("failed to init storage: %w", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, store)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "scenario %s: %d steps\n\n", sc.Name, len(results))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tSTEPS\tMAX_STRAIN\tSWAY")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.5f\t%.5f\n", r.Name, id, r.Result.StepsTaken,
			r.Result.Metrics["max_strain"], r.Result.Metrics["sway"])
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\t"+strings.ToUpper(strings.Join(sweepColumns, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		for _, name := range sweepColumns {
			fmt.Fprintf(w, "\t%.5f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(out, "searching %d points, minimizing %s\n\n", search.Size(), metricName)
	best, trials, err := search.Search(ctx, cfg, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%.4g\t", tr.Params[name])
		}
		fmt.Fprintf(w, "%.6f\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nbest %s=%.6f at", metricName, best.Value)
	for _, name := range names {
		fmt.Fprintf(out, " %s=%g", name, best.Params[name])
	}
	fmt.Fprintln(out)
	return nil
}

// parseGrid reads specs of the form name=v1,v2,... in flag order.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("at least one --grid name=v1,v2 is required")
	}
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	seen := map[string]bool{}
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid grid %q, want name=v1,v2", spec)
		}
		if seen[name] {
			return nil, nil, fmt.Errorf("duplicate grid parameter %s", name)
		}
		seen[name] = true

		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s: %w", name, err)
			}
			values = append(values, v)
		}
		sort.Float64s(values)
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
