package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Bin is one frequency of a power spectrum.
type Bin struct {
	Freq  float64
	Power float64
}

// PowerSpectrum returns the one-sided amplitude spectrum of a signal sampled
// every dt seconds. The mean is removed first so the DC bin only carries
// rounding noise. Signals shorter than two samples give nil.
func PowerSpectrum(signal []float64, dt float64) []Bin {
	n := len(signal)
	if n < 2 || dt <= 0 {
		return nil
	}

	centered := make([]float64, n)
	copy(centered, signal)
	floats.AddConst(-floats.Sum(signal)/float64(n), centered)

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centered)

	bins := make([]Bin, len(coeff))
	for i, c := range coeff {
		bins[i] = Bin{
			Freq:  fft.Freq(i) / dt,
			Power: cmplx.Abs(c) / float64(n),
		}
	}
	return bins
}

// DominantFrequency is the non-DC bin with the largest power. ok is false
// when the signal is too short or flat.
func DominantFrequency(signal []float64, dt float64) (bin Bin, ok bool) {
	bins := PowerSpectrum(signal, dt)
	for _, b := range bins[min(1, len(bins)):] {
		if b.Power > bin.Power {
			bin, ok = b, true
		}
	}
	return bin, ok
}

// Powers extracts the power column, handy for plotting.
func Powers(bins []Bin) []float64 {
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = b.Power
	}
	return out
}
