package render

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 0.0625}, {0.5, 0.5}, {0.75, 0.9375}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := Ease(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseMonotonic(t *testing.T) {
	prev := Ease(0)
	for i := 1; i <= 1000; i++ {
		cur := Ease(float64(i) / 1000)
		if cur < prev {
			t.Fatalf("Ease decreases at %v: %v < %v", float64(i)/1000, cur, prev)
		}
		prev = cur
	}
}
