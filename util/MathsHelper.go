package util

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[T Number](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wide is the set of sample types that can hold 0..255 as well as values
// outside it.
type Wide interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// ClampToByte clamps to 0..255 and narrows.
func ClampToByte[T Wide](v T) uint8 {
	return uint8(Clamp(v, 0, 255))
}

func CeilDiv[T constraints.Integer](numerator T, denominator T) T {
	return (numerator + denominator - 1) / denominator
}

// AlignUp rounds v up to the next multiple of align. align must be a power of two.
func AlignUp[T constraints.Integer](v T, align T) T {
	return (v + align - 1) &^ (align - 1)
}

// CeilShift divides by 2^shift, rounding up. Used for subsampled chroma planes.
func CeilShift[T constraints.Signed](v T, shift int) T {
	return -((-v) >> shift)
}
