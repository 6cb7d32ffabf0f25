package state

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Handle is the application-visible value of a Vulkan non-dispatchable handle. Handles may be reused
// after the object they named is destroyed.
type Handle uint64

// BindPoint is the pipeline bind point a command executes against
type BindPoint int32

const (
	BindPointGraphics BindPoint = iota
	BindPointCompute
	BindPointRayTracing

	bindPointCount
)

var bindPointMapping = make(map[BindPoint]string)

func (p BindPoint) String() string {
	return bindPointMapping[p]
}

// IsValid reports whether p names one of the three bind points
func (p BindPoint) IsValid() bool {
	return p >= BindPointGraphics && p < bindPointCount
}

// Shader stages beyond the classic set. They share core1_0.ShaderStageFlags so a single mask can
// describe any pipeline.
const (
	StageTask           core1_0.ShaderStageFlags = 0x00000040
	StageMesh           core1_0.ShaderStageFlags = 0x00000080
	StageRaygen         core1_0.ShaderStageFlags = 0x00000100
	StageAnyHit         core1_0.ShaderStageFlags = 0x00000200
	StageClosestHit     core1_0.ShaderStageFlags = 0x00000400
	StageMiss           core1_0.ShaderStageFlags = 0x00000800
	StageIntersection   core1_0.ShaderStageFlags = 0x00001000
	StageCallable       core1_0.ShaderStageFlags = 0x00002000
	StageClusterCulling core1_0.ShaderStageFlags = 0x00080000
)

const (
	// StagePreRasterClassic is every vertex-pipeline stage that cannot coexist with task/mesh stages
	StagePreRasterClassic = core1_0.StageVertex | core1_0.StageTessellationControl | core1_0.StageTessellationEvaluation | core1_0.StageGeometry
	StageMeshPipeline     = StageTask | StageMesh
)

// DescriptorType is the type of a descriptor set layout binding
type DescriptorType int32

const (
	DescriptorTypeSampler DescriptorType = iota
	DescriptorTypeCombinedImageSampler
	DescriptorTypeSampledImage
	DescriptorTypeStorageImage
	DescriptorTypeUniformTexelBuffer
	DescriptorTypeStorageTexelBuffer
	DescriptorTypeUniformBuffer
	DescriptorTypeStorageBuffer
	DescriptorTypeUniformBufferDynamic
	DescriptorTypeStorageBufferDynamic
	DescriptorTypeInputAttachment
	DescriptorTypeAccelerationStructure
	DescriptorTypeTensor
)

var descriptorTypeMapping = make(map[DescriptorType]string)

func (t DescriptorType) String() string {
	return descriptorTypeMapping[t]
}

// IsDynamic reports whether descriptors of this type consume a dynamic offset at bind time
func (t DescriptorType) IsDynamic() bool {
	return t == DescriptorTypeUniformBufferDynamic || t == DescriptorTypeStorageBufferDynamic
}

// IsBuffer reports whether descriptors of this type reference a VkBuffer range directly
func (t DescriptorType) IsBuffer() bool {
	switch t {
	case DescriptorTypeUniformBuffer, DescriptorTypeStorageBuffer,
		DescriptorTypeUniformBufferDynamic, DescriptorTypeStorageBufferDynamic:
		return true
	}
	return false
}

// IsImage reports whether descriptors of this type reference an image view
func (t DescriptorType) IsImage() bool {
	switch t {
	case DescriptorTypeCombinedImageSampler, DescriptorTypeSampledImage,
		DescriptorTypeStorageImage, DescriptorTypeInputAttachment:
		return true
	}
	return false
}

// UsesSampler reports whether descriptors of this type reference a sampler
func (t DescriptorType) UsesSampler() bool {
	return t == DescriptorTypeSampler || t == DescriptorTypeCombinedImageSampler
}

// RecordingPhase is the lifecycle state of a command buffer
type RecordingPhase int32

const (
	PhaseInitial RecordingPhase = iota
	PhaseRecording
	PhaseExecutable
	PhaseInvalid
)

var recordingPhaseMapping = make(map[RecordingPhase]string)

func (p RecordingPhase) String() string {
	return recordingPhaseMapping[p]
}

// TensorUsageFlags specify how a tensor may be used
type TensorUsageFlags int32

var tensorUsageMapping = common.NewFlagStringMapping[TensorUsageFlags]()

func (f TensorUsageFlags) Register(str string) {
	tensorUsageMapping.Register(f, str)
}
func (f TensorUsageFlags) String() string {
	return tensorUsageMapping.FlagsToString(f)
}

const (
	TensorUsageShader TensorUsageFlags = 1 << (iota + 1)
	TensorUsageTransferSrc
	TensorUsageTransferDst
	TensorUsageImageAliasing
	TensorUsageDataGraph
)

// BufferCreateFlags are the subset of buffer creation flags validation reads
type BufferCreateFlags int32

var bufferCreateMapping = common.NewFlagStringMapping[BufferCreateFlags]()

func (f BufferCreateFlags) Register(str string) {
	bufferCreateMapping.Register(f, str)
}
func (f BufferCreateFlags) String() string {
	return bufferCreateMapping.FlagsToString(f)
}

const (
	BufferCreateSparseBinding BufferCreateFlags = 0x00000001
	BufferCreateProtected     BufferCreateFlags = 0x00000008
)

// ResourceCreateFlags are the creation flags images and tensors share for validation purposes
type ResourceCreateFlags int32

var resourceCreateMapping = common.NewFlagStringMapping[ResourceCreateFlags]()

func (f ResourceCreateFlags) Register(str string) {
	resourceCreateMapping.Register(f, str)
}
func (f ResourceCreateFlags) String() string {
	return resourceCreateMapping.FlagsToString(f)
}

const (
	ResourceCreateMutableFormat ResourceCreateFlags = 1 << iota
	ResourceCreateProtected
	ResourceCreateSparseBinding
)

func init() {
	bindPointMapping[BindPointGraphics] = "VK_PIPELINE_BIND_POINT_GRAPHICS"
	bindPointMapping[BindPointCompute] = "VK_PIPELINE_BIND_POINT_COMPUTE"
	bindPointMapping[BindPointRayTracing] = "VK_PIPELINE_BIND_POINT_RAY_TRACING_KHR"

	StageTask.Register("Task")
	StageMesh.Register("Mesh")
	StageRaygen.Register("Raygen")
	StageAnyHit.Register("AnyHit")
	StageClosestHit.Register("ClosestHit")
	StageMiss.Register("Miss")
	StageIntersection.Register("Intersection")
	StageCallable.Register("Callable")
	StageClusterCulling.Register("ClusterCulling")

	descriptorTypeMapping[DescriptorTypeSampler] = "VK_DESCRIPTOR_TYPE_SAMPLER"
	descriptorTypeMapping[DescriptorTypeCombinedImageSampler] = "VK_DESCRIPTOR_TYPE_COMBINED_IMAGE_SAMPLER"
	descriptorTypeMapping[DescriptorTypeSampledImage] = "VK_DESCRIPTOR_TYPE_SAMPLED_IMAGE"
	descriptorTypeMapping[DescriptorTypeStorageImage] = "VK_DESCRIPTOR_TYPE_STORAGE_IMAGE"
	descriptorTypeMapping[DescriptorTypeUniformTexelBuffer] = "VK_DESCRIPTOR_TYPE_UNIFORM_TEXEL_BUFFER"
	descriptorTypeMapping[DescriptorTypeStorageTexelBuffer] = "VK_DESCRIPTOR_TYPE_STORAGE_TEXEL_BUFFER"
	descriptorTypeMapping[DescriptorTypeUniformBuffer] = "VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER"
	descriptorTypeMapping[DescriptorTypeStorageBuffer] = "VK_DESCRIPTOR_TYPE_STORAGE_BUFFER"
	descriptorTypeMapping[DescriptorTypeUniformBufferDynamic] = "VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER_DYNAMIC"
	descriptorTypeMapping[DescriptorTypeStorageBufferDynamic] = "VK_DESCRIPTOR_TYPE_STORAGE_BUFFER_DYNAMIC"
	descriptorTypeMapping[DescriptorTypeInputAttachment] = "VK_DESCRIPTOR_TYPE_INPUT_ATTACHMENT"
	descriptorTypeMapping[DescriptorTypeAccelerationStructure] = "VK_DESCRIPTOR_TYPE_ACCELERATION_STRUCTURE_KHR"
	descriptorTypeMapping[DescriptorTypeTensor] = "VK_DESCRIPTOR_TYPE_TENSOR_ARM"

	recordingPhaseMapping[PhaseInitial] = "Initial"
	recordingPhaseMapping[PhaseRecording] = "Recording"
	recordingPhaseMapping[PhaseExecutable] = "Executable"
	recordingPhaseMapping[PhaseInvalid] = "Invalid"

	TensorUsageShader.Register("Shader")
	TensorUsageTransferSrc.Register("TransferSrc")
	TensorUsageTransferDst.Register("TransferDst")
	TensorUsageImageAliasing.Register("ImageAliasing")
	TensorUsageDataGraph.Register("DataGraph")

	BufferCreateSparseBinding.Register("SparseBinding")
	BufferCreateProtected.Register("Protected")

	ResourceCreateMutableFormat.Register("MutableFormat")
	ResourceCreateProtected.Register("Protected")
	ResourceCreateSparseBinding.Register("SparseBinding")
}
