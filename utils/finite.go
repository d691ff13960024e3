package utils

import (
	"math"

	"arena/server/domain"
)

func FinitePosition(p domain.Position2D) bool {
	return Finite32(p.X) && Finite32(p.Y)
}

func Finite32(f float32) bool {
	return Finite(float64(f))
}

func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
