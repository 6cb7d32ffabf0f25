package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/state"
)

const tensorFormat = core1_0.FormatR8G8B8A8SRGB

// tensor creates a tensor with memory bound to it
func (f *testFixture) tensor(flags state.ResourceCreateFlags, format core1_0.Format, usage state.TensorUsageFlags, dimensions ...int64) *state.Tensor {
	tensor := f.unboundTensor(flags, format, usage, dimensions...)
	require.NoError(f.t, tensor.BindMemory(f.memory(4096), 0))
	return tensor
}

func (f *testFixture) unboundTensor(flags state.ResourceCreateFlags, format core1_0.Format, usage state.TensorUsageFlags, dimensions ...int64) *state.Tensor {
	tensor, err := f.device.CreateTensor(f.handle(), state.TensorCreateInfo{
		Flags: flags,
		Description: state.TensorDescription{
			Format:     format,
			Dimensions: dimensions,
			Usage:      usage,
		},
	})
	require.NoError(f.t, err)
	return tensor
}

func (f *testFixture) copyTensorPair(dimensions ...int64) (*state.Tensor, *state.Tensor) {
	src := f.tensor(0, tensorFormat, state.TensorUsageTransferSrc, dimensions...)
	dst := f.tensor(0, tensorFormat, state.TensorUsageTransferDst, dimensions...)
	return src, dst
}

func wholeTensorCopy(dimensions ...uint64) TensorCopy {
	return TensorCopy{
		DimensionCount: uint32(len(dimensions)),
		SrcOffset:      make([]uint64, len(dimensions)),
		DstOffset:      make([]uint64, len(dimensions)),
		Extent:         dimensions,
	}
}

func TestCopyTensorWholeTensor(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	src, dst := f.copyTensorPair(2, 3, 4)

	require.False(t, f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
		SrcTensor: src.Handle(),
		DstTensor: dst.Handle(),
		Regions:   []TensorCopy{wholeTensorCopy(2, 3, 4)},
	}))
	require.Empty(t, f.report.Messages())
	require.Equal(t, 1, f.validator.Statistics().CommandsValidated)
}

func TestCopyTensorDimensionCountMismatch(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	src := f.tensor(0, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
	dst := f.tensor(0, tensorFormat, state.TensorUsageTransferDst, 2, 3)

	// The region matches neither tensor, but the mismatch of the tensors suppresses every other shape check
	f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
		SrcTensor: src.Handle(),
		DstTensor: dst.Handle(),
		Regions:   []TensorCopy{wholeTensorCopy(7)},
	})
	require.Equal(t, []string{vuidCopyTensorDimensionCount}, f.vuids())
}

func TestCopyTensorDimensionMismatch(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	src := f.tensor(0, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
	dst := f.tensor(0, tensorFormat, state.TensorUsageTransferDst, 2, 5, 4)

	f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
		SrcTensor: src.Handle(),
		DstTensor: dst.Handle(),
		Regions:   []TensorCopy{{DimensionCount: 3}},
	})
	require.Equal(t, []string{vuidCopyTensorDimensions}, f.vuids())
}

func TestCopyTensorRegions(t *testing.T) {
	testCases := map[string]struct {
		regions  []TensorCopy
		expected []string
	}{
		"ZeroDimensionsAllNull": {
			regions: []TensorCopy{{DimensionCount: 0}},
		},
		"ZeroDimensionsWithExtent": {
			regions:  []TensorCopy{{DimensionCount: 0, Extent: []uint64{2, 3, 4}}},
			expected: []string{vuidTensorCopyZeroDimensions},
		},
		"NoRegions": {
			regions:  []TensorCopy{},
			expected: []string{vuidCopyTensorRegionCount},
		},
		"TwoRegions": {
			regions:  []TensorCopy{wholeTensorCopy(2, 3, 4), wholeTensorCopy(2, 3, 4)},
			expected: []string{vuidCopyTensorRegionCount},
		},
		"RegionDimensionCount": {
			regions:  []TensorCopy{{DimensionCount: 2}},
			expected: []string{vuidTensorCopyDimensionCount},
		},
		"NonZeroSourceOffset": {
			regions: []TensorCopy{{
				DimensionCount: 3,
				SrcOffset:      []uint64{0, 1, 0},
			}},
			expected: []string{vuidCopyTensorSrcOffset},
		},
		"NonZeroDestinationOffset": {
			regions: []TensorCopy{{
				DimensionCount: 3,
				DstOffset:      []uint64{0, 0, 2},
			}},
			expected: []string{vuidCopyTensorDstOffset},
		},
		"PartialExtent": {
			regions:  []TensorCopy{wholeTensorCopy(2, 3, 3)},
			expected: []string{vuidCopyTensorExtent},
		},
		"ShortSlices": {
			regions: []TensorCopy{{
				DimensionCount: 3,
				SrcOffset:      []uint64{0, 5},
				Extent:         []uint64{9, 9},
			}},
			expected: []string{vuidTensorCopySliceDimensions, vuidTensorCopySliceDimensions},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			src, dst := f.copyTensorPair(2, 3, 4)

			f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
				SrcTensor: src.Handle(),
				DstTensor: dst.Handle(),
				Regions:   testCase.regions,
			})
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestCopyTensorResources(t *testing.T) {
	testCases := map[string]struct {
		protected bool
		src       func(f *testFixture) *state.Tensor
		dst       func(f *testFixture) *state.Tensor
		expected  []string
	}{
		"FormatMismatch": {
			dst: func(f *testFixture) *state.Tensor {
				return f.tensor(0, core1_0.FormatB8G8R8A8SRGB, state.TensorUsageTransferDst, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorFormat},
		},
		"SourceUsage": {
			src: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageShader, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorSrcUsage},
		},
		"DestinationUsage": {
			dst: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorDstUsage},
		},
		"SourceMemory": {
			src: func(f *testFixture) *state.Tensor {
				return f.unboundTensor(0, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorSrcMemory},
		},
		"DestinationMemory": {
			dst: func(f *testFixture) *state.Tensor {
				return f.unboundTensor(0, tensorFormat, state.TensorUsageTransferDst, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorDstMemory},
		},
		"ProtectedSourceUnprotectedCommandBuffer": {
			src: func(f *testFixture) *state.Tensor {
				return f.tensor(state.ResourceCreateProtected, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
			},
			expected: []string{vuidCopyTensorProtected},
		},
		"UnprotectedDestinationProtectedCommandBuffer": {
			protected: true,
			expected:  []string{vuidCopyTensorUnprotect},
		},
		"AllProtected": {
			protected: true,
			src: func(f *testFixture) *state.Tensor {
				return f.tensor(state.ResourceCreateProtected, tensorFormat, state.TensorUsageTransferSrc, 2, 3, 4)
			},
			dst: func(f *testFixture) *state.Tensor {
				return f.tensor(state.ResourceCreateProtected, tensorFormat, state.TensorUsageTransferDst, 2, 3, 4)
			},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{protected: testCase.protected})
			src, dst := f.copyTensorPair(2, 3, 4)
			if testCase.src != nil {
				src = testCase.src(f)
			}
			if testCase.dst != nil {
				dst = testCase.dst(f)
			}

			f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
				SrcTensor: src.Handle(),
				DstTensor: dst.Handle(),
				Regions:   []TensorCopy{wholeTensorCopy(2, 3, 4)},
			})
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestCopyTensorCommandScope(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	src, dst := f.copyTensorPair(4)
	info := CopyTensorInfo{
		SrcTensor: src.Handle(),
		DstTensor: dst.Handle(),
		Regions:   []TensorCopy{wholeTensorCopy(4)},
	}

	f.beginRendering()
	f.validator.PreCallValidateCmdCopyTensorARM(1, info)
	require.Equal(t, []string{vuidCopyTensorRenderPass}, f.vuids())

	f.report.Clear()
	require.NoError(t, f.cb.EndRendering())
	require.NoError(t, f.cb.End())
	f.validator.PreCallValidateCmdCopyTensorARM(1, info)
	require.Equal(t, []string{vuidCopyTensorRecording}, f.vuids())
}

func TestCopyTensorUnknownTensor(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	src, _ := f.copyTensorPair(4)

	require.False(t, f.validator.PreCallValidateCmdCopyTensorARM(1, CopyTensorInfo{
		SrcTensor: src.Handle(),
		DstTensor: 999,
		Regions:   []TensorCopy{wholeTensorCopy(4)},
	}))
	require.Empty(t, f.report.Messages())
}

func TestCreateTensorView(t *testing.T) {
	testCases := map[string]struct {
		tensor   func(f *testFixture) *state.Tensor
		format   core1_0.Format
		expected []string
	}{
		"Valid": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageShader, 8)
			},
			format: tensorFormat,
		},
		"DataGraphUsage": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageDataGraph, 8)
			},
			format: tensorFormat,
		},
		"TransferOnlyUsage": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageTransferSrc|state.TensorUsageTransferDst, 8)
			},
			format:   tensorFormat,
			expected: []string{vuidTensorViewUsage},
		},
		"NoMemory": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.unboundTensor(0, tensorFormat, state.TensorUsageShader, 8)
			},
			format:   tensorFormat,
			expected: []string{vuidTensorViewMemory},
		},
		"FormatMismatch": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.tensor(0, tensorFormat, state.TensorUsageShader, 8)
			},
			format:   core1_0.FormatB8G8R8A8SRGB,
			expected: []string{vuidTensorViewFormat},
		},
		"MutableFormat": {
			tensor: func(f *testFixture) *state.Tensor {
				return f.tensor(state.ResourceCreateMutableFormat, tensorFormat, state.TensorUsageShader, 8)
			},
			format: core1_0.FormatB8G8R8A8SRGB,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			tensor := testCase.tensor(f)

			f.validator.PreCallValidateCreateTensorView(TensorViewCreateInfo{Tensor: tensor.Handle(), Format: testCase.format})
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}
