package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the one sided magnitude spectrum of data sampled every
// dt seconds. The mean is removed and a Hann window applied first. freqs[i]
// is the frequency in Hz of mags[i]; the DC bin is omitted. Fewer than four
// samples, or a non-positive dt, give nil.
func Spectrum(data []float64, dt float64) (freqs, mags []float64) {
	n := len(data)
	if n < 4 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)

	half := n / 2
	freqs = make([]float64, 0, half)
	mags = make([]float64, 0, half)
	for k := 1; k <= half; k++ {
		freqs = append(freqs, float64(k)/(float64(n)*dt))
		mags = append(mags, cmplx.Abs(spectrum[k])*2/float64(n))
	}
	return freqs, mags
}

// Oscillation is a spectral peak.
type Oscillation struct {
	Frequency float64 // Hz
	Period    float64 // s
	Magnitude float64
	// Share is the peak's fraction of the total spectral magnitude.
	Share float64
}

// Dominant returns the largest peak of data's spectrum. ok is false when
// the trace is too short or has no variation.
func Dominant(data []float64, dt float64) (Oscillation, bool) {
	freqs, mags := Spectrum(data, dt)
	if len(mags) == 0 {
		return Oscillation{}, false
	}

	best, total := 0, 0.0
	for i, m := range mags {
		total += m
		if m > mags[best] {
			best = i
		}
	}
	if total <= 1e-12 {
		return Oscillation{}, false
	}

	f := freqs[best]
	return Oscillation{
		Frequency: f,
		Period:    1 / f,
		Magnitude: mags[best],
		Share:     mags[best] / total,
	}, true
}
