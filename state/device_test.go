package state

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"golang.org/x/exp/slog"
)

func newTestDevice(t *testing.T, options DeviceCreateOptions) *Device {
	t.Helper()
	return NewDevice(slog.New(slog.NewTextHandler(&bytes.Buffer{})), options)
}

func TestDeviceRegistry(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	buffer, err := device.CreateBuffer(1, BufferCreateInfo{Size: 256, Usage: core1_0.BufferUsageVertexBuffer})
	require.NoError(t, err)
	require.Equal(t, diag.Object{Type: diag.ObjectTypeBuffer, Handle: 1}, buffer.Object())

	found, err := Get[*Buffer](device, 1)
	require.NoError(t, err)
	require.Same(t, buffer, found)

	// Handles are namespaced by object type
	image, err := device.CreateImage(1, ImageCreateInfo{Format: core1_0.FormatR8G8B8A8SRGB})
	require.NoError(t, err)
	require.NotEqual(t, buffer.ID(), image.ID())
	require.Equal(t, 2, device.ObjectCount())

	_, err = device.CreateBuffer(1, BufferCreateInfo{Size: 16})
	require.True(t, errors.Is(err, ErrHandleInUse))

	_, err = Get[*Buffer](device, 2)
	require.True(t, errors.Is(err, ErrUnknownHandle))

	_, err = device.CreateBuffer(0, BufferCreateInfo{Size: 16})
	require.Error(t, err)
}

func TestDeviceHandleReuse(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{Flags: DeviceCreateExternallySynchronized})

	first, err := device.CreateBuffer(7, BufferCreateInfo{Size: 64})
	require.NoError(t, err)
	require.NoError(t, device.Destroy(diag.ObjectTypeBuffer, 7))
	require.True(t, first.Destroyed())

	err = device.Destroy(diag.ObjectTypeBuffer, 7)
	require.True(t, errors.Is(err, ErrUnknownHandle))

	second, err := device.CreateBuffer(7, BufferCreateInfo{Size: 64})
	require.NoError(t, err)
	require.False(t, second.Destroyed())
	require.NotEqual(t, first.ID(), second.ID())
}

func TestBufferMemoryBinding(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	memory, err := device.CreateDeviceMemory(1, DeviceMemoryCreateInfo{Size: 1024})
	require.NoError(t, err)
	buffer, err := device.CreateBuffer(1, BufferCreateInfo{Size: 256})
	require.NoError(t, err)
	require.False(t, buffer.IsMemoryBound())

	require.Error(t, buffer.BindMemory(memory, 2048))
	require.NoError(t, buffer.BindMemory(memory, 512))
	require.True(t, buffer.IsMemoryBound())
	require.Error(t, buffer.BindMemory(memory, 0))

	bound, offset := buffer.BoundMemory()
	require.Same(t, memory, bound)
	require.Equal(t, uint64(512), offset)

	require.NoError(t, device.Destroy(diag.ObjectTypeDeviceMemory, 1))
	require.False(t, buffer.IsMemoryBound())

	sparse, err := device.CreateBuffer(2, BufferCreateInfo{Size: 256, Flags: BufferCreateSparseBinding})
	require.NoError(t, err)
	require.True(t, sparse.IsMemoryBound())
	require.Error(t, sparse.BindMemory(memory, 0))
}

func TestDescriptorSetLayoutDefinitions(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	info := DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{
			{Binding: 1, Type: DescriptorTypeUniformBufferDynamic, Count: 2, Stages: core1_0.StageVertex},
			{Binding: 0, Type: DescriptorTypeCombinedImageSampler, Count: 4, Stages: core1_0.StageFragment},
		},
	}

	a, err := device.CreateDescriptorSetLayout(1, info)
	require.NoError(t, err)
	b, err := device.CreateDescriptorSetLayout(2, info)
	require.NoError(t, err)
	c, err := device.CreateDescriptorSetLayout(3, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{
			{Binding: 0, Type: DescriptorTypeStorageBuffer, Count: 1, Stages: core1_0.StageFragment},
		},
	})
	require.NoError(t, err)

	require.Equal(t, a.DefinitionID(), b.DefinitionID())
	require.NotEqual(t, a.DefinitionID(), c.DefinitionID())
	require.True(t, a.IsCompatible(b))
	require.False(t, a.IsCompatible(c))

	require.Equal(t, 6, a.DescriptorCount())
	require.Equal(t, 2, a.DynamicDescriptorCount())
	require.Equal(t, uint32(0), a.Bindings()[0].Binding)

	_, err = device.CreateDescriptorSetLayout(4, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{
			{Binding: 0, Type: DescriptorTypeSampler, Count: 1},
			{Binding: 0, Type: DescriptorTypeSampler, Count: 1},
		},
	})
	require.Error(t, err)
}

func TestDescriptorSetUpdate(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	layout, err := device.CreateDescriptorSetLayout(1, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{
			{Binding: 0, Type: DescriptorTypeUniformBuffer, Count: 2, Stages: core1_0.StageVertex},
		},
	})
	require.NoError(t, err)
	set, err := device.AllocateDescriptorSet(1, layout)
	require.NoError(t, err)
	buffer, err := device.CreateBuffer(1, BufferCreateInfo{Size: 64, Usage: core1_0.BufferUsageUniformBuffer})
	require.NoError(t, err)

	require.Equal(t, uint64(0), set.ChangeCount())

	err = set.Update(
		DescriptorWrite{Binding: 0, ArrayElement: 0, Descriptors: []Descriptor{{Buffer: buffer, Range: 64}}},
		DescriptorWrite{Binding: 0, ArrayElement: 1, Descriptors: []Descriptor{{}}},
	)
	require.NoError(t, err)
	require.Equal(t, uint64(1), set.ChangeCount())

	descriptors, ok := set.Descriptors(0)
	require.True(t, ok)
	require.Len(t, descriptors, 2)
	require.True(t, descriptors[0].Updated)
	require.Same(t, buffer, descriptors[0].Buffer)
	require.True(t, descriptors[1].Updated)
	require.True(t, descriptors[1].IsNull())

	// A failing update leaves the set untouched
	err = set.Update(
		DescriptorWrite{Binding: 0, ArrayElement: 0, Descriptors: []Descriptor{{}}},
		DescriptorWrite{Binding: 0, ArrayElement: 1, Descriptors: []Descriptor{{}, {}}},
	)
	require.Error(t, err)
	require.Equal(t, uint64(1), set.ChangeCount())
	descriptors, _ = set.Descriptors(0)
	require.Same(t, buffer, descriptors[0].Buffer)

	_, ok = set.Descriptors(5)
	require.False(t, ok)
}

func TestPipelineLayoutCompatibility(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	uniform, err := device.CreateDescriptorSetLayout(1, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{Binding: 0, Type: DescriptorTypeUniformBuffer, Count: 1}},
	})
	require.NoError(t, err)
	storage, err := device.CreateDescriptorSetLayout(2, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{Binding: 0, Type: DescriptorTypeStorageBuffer, Count: 1}},
	})
	require.NoError(t, err)

	a, err := device.CreatePipelineLayout(1, PipelineLayoutCreateInfo{SetLayouts: []*DescriptorSetLayout{uniform, uniform}})
	require.NoError(t, err)
	b, err := device.CreatePipelineLayout(2, PipelineLayoutCreateInfo{SetLayouts: []*DescriptorSetLayout{uniform, storage}})
	require.NoError(t, err)
	c, err := device.CreatePipelineLayout(3, PipelineLayoutCreateInfo{
		SetLayouts:         []*DescriptorSetLayout{uniform, uniform},
		PushConstantRanges: []PushConstantRange{{Stages: core1_0.StageVertex, Size: 16}},
	})
	require.NoError(t, err)

	require.True(t, a.IsCompatibleForSet(b, 0))
	require.False(t, a.IsCompatibleForSet(b, 1))
	require.False(t, a.IsCompatibleForSet(c, 0))
	require.False(t, a.IsCompatibleForSet(b, 2))
	require.Equal(t, uint64(0), a.SetCompatID(2))

	require.Empty(t, a.DescribeSetIncompatibility(1, uniform))
	require.Contains(t, a.DescribeSetIncompatibility(1, storage), "is type VK_DESCRIPTOR_TYPE_STORAGE_BUFFER")
	require.Contains(t, a.DescribeSetIncompatibility(4, storage), "out of range")
}

func TestPipelineActiveSlots(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	setLayout, err := device.CreateDescriptorSetLayout(1, DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{Binding: 0, Type: DescriptorTypeUniformBuffer, Count: 1}},
	})
	require.NoError(t, err)
	libraryA, err := device.CreatePipelineLayout(1, PipelineLayoutCreateInfo{SetLayouts: []*DescriptorSetLayout{setLayout, nil}})
	require.NoError(t, err)
	libraryB, err := device.CreatePipelineLayout(2, PipelineLayoutCreateInfo{SetLayouts: []*DescriptorSetLayout{nil, setLayout, setLayout}})
	require.NoError(t, err)

	pipeline, err := device.CreatePipeline(1, PipelineCreateInfo{
		BindPoint: BindPointGraphics,
		Layouts:   []*PipelineLayout{libraryA, libraryB},
		Stages: []ShaderStageState{
			{
				Stage:             core1_0.StageVertex,
				UsesPushConstants: true,
				Descriptors:       []DescriptorUse{{Set: 0, Binding: 0}},
			},
			{
				Stage: core1_0.StageFragment,
				Descriptors: []DescriptorUse{
					{Set: 2, Binding: 0, Requirement: DescriptorRequirement{RequiresViewType: true, ViewType: core1_0.ImageViewType2D}},
				},
			},
		},
		Graphics: &GraphicsPipelineState{
			DynamicStates: []DynamicState{DynamicStateViewport, DynamicStateScissor},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 2, pipeline.MaxActiveSlot())
	require.Equal(t, []uint32{0, 2}, pipeline.ActiveSlotIndices())
	require.Equal(t, core1_0.StageVertex, pipeline.PushConstantStages())
	require.True(t, pipeline.HasShaderStages(core1_0.StageFragment))
	require.False(t, pipeline.HasShaderStages(StageMeshPipeline))
	require.True(t, pipeline.IsDynamic(DynamicStateScissor))
	require.False(t, pipeline.IsDynamic(DynamicStateLineWidth))

	merged := pipeline.Layout()
	require.True(t, merged.IsUnion())
	require.Equal(t, 3, merged.SetCount())
	require.Same(t, setLayout, merged.SetLayout(0))
	require.Same(t, setLayout, merged.SetLayout(1))
	require.Contains(t, merged.Describe(), "union of")

	_, err = device.CreatePipeline(2, PipelineCreateInfo{BindPoint: BindPointCompute})
	require.Error(t, err)
}

type countingSubState struct {
	destroyed int
}

func (s *countingSubState) ObjectDestroyed() {
	s.destroyed++
}

func TestSubStateRegistry(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	const testKind SubStateKind = 3

	buffer, err := device.CreateBuffer(1, BufferCreateInfo{Size: 32})
	require.NoError(t, err)

	subState := &countingSubState{}
	buffer.SubStates().Attach(testKind, subState)
	require.Equal(t, 1, buffer.SubStates().Len())

	found, ok := GetSubState[*countingSubState](buffer.SubStates(), testKind)
	require.True(t, ok)
	require.Same(t, subState, found)

	_, ok = GetSubState[*countingSubState](buffer.SubStates(), testKind+1)
	require.False(t, ok)

	require.NoError(t, device.Destroy(diag.ObjectTypeBuffer, 1))
	require.Equal(t, 1, subState.destroyed)

	buffer.SubStates().Detach(testKind)
	require.Equal(t, 0, buffer.SubStates().Len())
}

func TestRenderPassCompatibility(t *testing.T) {
	device := newTestDevice(t, DeviceCreateOptions{})

	depth := uint32(1)
	info := RenderPassCreateInfo{
		Attachments: []AttachmentDescription{
			{Format: core1_0.FormatB8G8R8A8SRGB, Samples: core1_0.Samples4},
			{Format: core1_0.FormatD32SignedFloat, Samples: core1_0.Samples4},
		},
		Subpasses: []SubpassDescription{
			{ColorAttachments: []uint32{0}, DepthStencilAttachment: &depth},
		},
	}

	a, err := device.CreateRenderPass(1, info)
	require.NoError(t, err)
	b, err := device.CreateRenderPass(2, info)
	require.NoError(t, err)

	info.Attachments = []AttachmentDescription{
		{Format: core1_0.FormatR8G8B8A8SRGB, Samples: core1_0.Samples4},
		{Format: core1_0.FormatD32SignedFloat, Samples: core1_0.Samples4},
	}
	c, err := device.CreateRenderPass(3, info)
	require.NoError(t, err)

	require.True(t, a.IsCompatible(b))
	require.False(t, a.IsCompatible(c))
	require.Equal(t, core1_0.Samples4, a.SubpassSampleCount(0))
	require.False(t, a.IsMultiview())

	_, err = device.CreateRenderPass(4, RenderPassCreateInfo{
		Subpasses: []SubpassDescription{{ColorAttachments: []uint32{3}}},
	})
	require.Error(t, err)
}
