package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsAligned reports whether value is a multiple of alignment. Alignment must be a power of two.
func IsAligned[T constraints.Unsigned](value T, alignment T) bool {
	return value&(alignment-1) == 0
}

// RangeExceeds reports whether [offset, offset+size) runs past limit, treating overflow of the sum as
// exceeding
func RangeExceeds(offset, size, limit uint64) bool {
	end := offset + size
	if end < offset {
		return true
	}
	return end > limit
}

// ProductExceeds reports whether the product of factors is greater than limit, treating overflow of the
// product as exceeding
func ProductExceeds(limit uint64, factors ...uint64) bool {
	product := uint64(1)
	for _, factor := range factors {
		hi, lo := bits.Mul64(product, factor)
		if hi != 0 {
			return true
		}
		product = lo
	}
	return product > limit
}
