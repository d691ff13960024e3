package utils

import (
	"math"
	"testing"

	"arena/server/domain"
)

func TestFinitePosition(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		p    domain.Position2D
		want bool
	}{
		{domain.Position2D{X: 1, Y: -2}, true},
		{domain.Position2D{X: nan, Y: 0}, false},
		{domain.Position2D{X: 0, Y: inf}, false},
		{domain.Position2D{X: -inf, Y: nan}, false},
	}
	for _, tt := range tests {
		if got := FinitePosition(tt.p); got != tt.want {
			t.Errorf("FinitePosition(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(math.MaxFloat64) {
		t.Error("MaxFloat64 is finite")
	}
	if Finite(math.Inf(-1)) {
		t.Error("-Inf is not finite")
	}
}
