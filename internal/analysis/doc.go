// Package analysis post-processes run telemetry.
//
//   - [PowerSpectrum] and [DominantFrequency]: how fast the cloth sways
//   - [Summarize]: mean, spread and range of a telemetry column
//   - [SettleTime]: when a column stops moving
//
// Typical use on a finished run:
//
//	sway := result.Series("mean_x")
//	if bin, ok := analysis.DominantFrequency(sway, dt*float64(every)); ok {
//	    fmt.Printf("sway at %.2f Hz\n", bin.Freq)
//	}
package analysis
