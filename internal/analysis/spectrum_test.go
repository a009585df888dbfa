package analysis

import (
	"math"
	"testing"
)

func sine(period, dt, duration, amp float64) []float64 {
	n := int(math.Round(duration / dt))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.4 + amp*math.Sin(2*math.Pi*float64(i)*dt/period)
	}
	return out
}

func TestDominantFindsPeriod(t *testing.T) {
	osc, ok := Dominant(sine(2, 0.05, 60, 0.1), 0.05)
	if !ok {
		t.Fatal("expected a peak")
	}
	if math.Abs(osc.Period-2) > 0.05 {
		t.Errorf("period = %.3f, want 2", osc.Period)
	}
	if math.Abs(osc.Frequency-0.5) > 0.01 {
		t.Errorf("frequency = %.3f, want 0.5", osc.Frequency)
	}
	if osc.Share <= 0 || osc.Share > 1 {
		t.Errorf("share out of range: %v", osc.Share)
	}
}

func TestDominantFlatTrace(t *testing.T) {
	flat := make([]float64, 256)
	for i := range flat {
		flat[i] = 0.4
	}
	if _, ok := Dominant(flat, 0.05); ok {
		t.Error("flat trace should have no peak")
	}
}

func TestSpectrumShortInput(t *testing.T) {
	if f, m := Spectrum([]float64{1, 2, 3}, 0.1); f != nil || m != nil {
		t.Error("expected nil for short input")
	}
	if f, _ := Spectrum(make([]float64, 16), 0); f != nil {
		t.Error("expected nil for zero dt")
	}
}

func TestSpectrumBins(t *testing.T) {
	freqs, mags := Spectrum(sine(1, 0.1, 10, 1), 0.1)
	if len(freqs) != 50 || len(mags) != 50 {
		t.Fatalf("got %d bins, want 50", len(freqs))
	}
	if math.Abs(freqs[0]-0.1) > 1e-9 {
		t.Errorf("first bin = %v, want 0.1 Hz", freqs[0])
	}
}
