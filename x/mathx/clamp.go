package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// RoundCode rounds v to the nearest integer and clamps it to [0, max].
// NaN maps to 0.
func RoundCode[T constraints.Float](v T, max uint16) uint16 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	return uint16(Clamp(math.Round(f), 0, float64(max)))
}
