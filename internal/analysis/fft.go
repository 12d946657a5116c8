package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of bins 0..n/2 of the series after
// removing its mean.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the oscillation period of a population series in
// generations. ok is false when the series is flat or too short.
func DominantPeriod(population []int) (period float64, ok bool) {
	if len(population) < 4 {
		return 0, false
	}
	data := make([]float64, len(population))
	for i, p := range population {
		data[i] = float64(p)
	}

	ps := PowerSpectrum(data)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower < 1e-9 {
		return 0, false
	}
	return float64(len(data)) / float64(maxIdx), true
}
