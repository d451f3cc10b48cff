package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Summarize describes one telemetry column. An empty series gives the zero
// Summary.
func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(series, nil)
	if len(series) == 1 {
		std = 0
	}
	return Summary{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(series),
		Max:  floats.Max(series),
	}
}

// SettleTime is the first time after which series stays within tol of its
// final value. It returns the last time when the series never settles
// earlier, and 0 for empty input.
func SettleTime(times, series []float64, tol float64) float64 {
	n := min(len(times), len(series))
	if n == 0 {
		return 0
	}
	final := series[n-1]
	settled := times[n-1]
	for i := n - 1; i >= 0; i-- {
		d := series[i] - final
		if d > tol || d < -tol {
			break
		}
		settled = times[i]
	}
	return settled
}
