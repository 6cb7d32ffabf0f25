package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAligned(t *testing.T) {
	require.True(t, IsAligned[uint64](0, 4))
	require.True(t, IsAligned[uint64](64, 4))
	require.False(t, IsAligned[uint64](66, 4))
	require.True(t, IsAligned[uint32](7, 1))
}

func TestRangeExceeds(t *testing.T) {
	testCases := map[string]struct {
		offset, size, limit uint64
		exceeds             bool
	}{
		"Inside":   {offset: 0, size: 16, limit: 64},
		"AtLimit":  {offset: 48, size: 16, limit: 64},
		"Past":     {offset: 52, size: 16, limit: 64, exceeds: true},
		"Overflow": {offset: math.MaxUint64 - 4, size: 16, limit: math.MaxUint64, exceeds: true},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, testCase.exceeds, RangeExceeds(testCase.offset, testCase.size, testCase.limit))
		})
	}
}

func TestProductExceeds(t *testing.T) {
	testCases := map[string]struct {
		limit   uint64
		factors []uint64
		exceeds bool
	}{
		"AtLimit":     {limit: 64, factors: []uint64{4, 4, 4}},
		"AboveLimit":  {limit: 63, factors: []uint64{4, 4, 4}, exceeds: true},
		"ZeroFactor":  {limit: 0, factors: []uint64{math.MaxUint32, 0, math.MaxUint32}},
		"Overflow":    {limit: math.MaxUint64, factors: []uint64{1 << 22, 1 << 21, 1 << 21}, exceeds: true},
		"NoFactors":   {limit: 1, factors: nil},
		"LargeInside": {limit: math.MaxUint64, factors: []uint64{math.MaxUint32, math.MaxUint32}},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, testCase.exceeds, ProductExceeds(testCase.limit, testCase.factors...))
		})
	}
}
