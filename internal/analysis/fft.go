package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooFewSamples = errors.New("need at least 4 samples")
	ErrFlatSignal    = errors.New("signal has no periodic component")
)

// PowerSpectrum returns the magnitude of the first half of the FFT of data.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod returns the period, in the units of sampleDt, of the
// strongest non-DC component of samples. The series is mean-removed and
// zero-padded to a power of two; the peak bin is refined by parabolic
// interpolation.
func DominantPeriod(samples []float64, sampleDt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrTooFewSamples
	}
	if !(sampleDt > 0) {
		return 0, errors.New("sample interval must be positive")
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	n := NextPow2(len(samples))
	padded := make([]float64, n)
	spread := 0.0
	for i, v := range samples {
		padded[i] = v - mean
		spread = math.Max(spread, math.Abs(padded[i]))
	}
	if spread <= 1e-12*math.Max(1, math.Abs(mean)) {
		return 0, ErrFlatSignal
	}

	ps := PowerSpectrum(padded)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}

	k := float64(best)
	if best > 1 && best < len(ps)-1 {
		a, b, c := ps[best-1], ps[best], ps[best+1]
		if d := a - 2*b + c; d != 0 {
			k += 0.5 * (a - c) / d
		}
	}
	return float64(n) * sampleDt / k, nil
}

func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
