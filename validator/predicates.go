package validator

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

const (
	// bufferUsageTransformFeedbackCounterBuffer is VK_BUFFER_USAGE_TRANSFORM_FEEDBACK_COUNTER_BUFFER_BIT_EXT
	bufferUsageTransformFeedbackCounterBuffer core1_0.BufferUsageFlags = 0x00001000

	// Sizes and alignments of the parameter records indirect commands read from a buffer
	drawIndirectCommandSize           uint64 = 16
	drawIndexedIndirectCommandSize    uint64 = 20
	drawMeshTasksIndirectNVSize       uint64 = 8
	drawMeshTasksIndirectEXTSize      uint64 = 12
	dispatchIndirectCommandSize       uint64 = 12
	drawClusterIndirectCommandSize    uint64 = 12
	indirectCountSize                 uint64 = 4
	indirectOffsetAlignment           uint64 = 4
	indirectDeviceAddressAlignment    uint64 = 4
	transformFeedbackCounterAlignment uint64 = 4
)

// validateProtectedResource reports a protected resource used by an unprotected command buffer. The
// check does not apply when the device reports protectedNoFault.
func (v *Validator) validateProtectedResource(commandBuffer *state.CommandBuffer, resource diag.Named, protected bool, loc diag.Location, id string, description string) bool {
	if !protected || commandBuffer.IsProtected() || v.device.Properties().ProtectedNoFault {
		return false
	}

	return v.sink.LogError(id, objects(commandBuffer, resource), loc,
		"%s is an unprotected command buffer, but the %s %s is a protected resource.",
		commandBuffer.Object(), description, resource.Object())
}

// validateUnprotectedResource reports an unprotected resource written by a protected command buffer. The
// check does not apply when the device reports protectedNoFault.
func (v *Validator) validateUnprotectedResource(commandBuffer *state.CommandBuffer, resource diag.Named, protected bool, loc diag.Location, id string, description string) bool {
	if protected || !commandBuffer.IsProtected() || v.device.Properties().ProtectedNoFault {
		return false
	}

	return v.sink.LogError(id, objects(commandBuffer, resource), loc,
		"%s is a protected command buffer, but the %s %s is an unprotected resource.",
		commandBuffer.Object(), description, resource.Object())
}

func (v *Validator) validateBufferUsage(commandBuffer *state.CommandBuffer, buffer *state.Buffer, required core1_0.BufferUsageFlags, loc diag.Location, id string) bool {
	if buffer.Usage()&required == required {
		return false
	}

	return v.sink.LogError(id, objects(commandBuffer, buffer), loc,
		"%s was created with usage %s, but requires %s.", buffer.Object(), buffer.Usage(), required)
}

func (v *Validator) validateBufferMemoryIsBound(commandBuffer *state.CommandBuffer, buffer *state.Buffer, loc diag.Location, id string) bool {
	if buffer.IsMemoryBound() {
		return false
	}

	return v.sink.LogError(id, objects(commandBuffer, buffer), loc,
		"%s is used without memory bound to it. Non-sparse buffers must be bound completely and contiguously to a single VkDeviceMemory object.",
		buffer.Object())
}

// validateIndirectBuffer applies the rules every buffer an indirect command reads its parameters from
// must satisfy
func (v *Validator) validateIndirectBuffer(commandBuffer *state.CommandBuffer, buffer *state.Buffer, offset uint64, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)

	skip := v.validateBufferMemoryIsBound(commandBuffer, buffer, loc.Dot("buffer"), vuids.IndirectContiguousMemory02708)
	skip = v.validateBufferUsage(commandBuffer, buffer, core1_0.BufferUsageIndirectBuffer, loc.Dot("buffer"), vuids.IndirectBufferBit02709) || skip

	if !utils.IsAligned(offset, indirectOffsetAlignment) {
		skip = v.sink.LogError(vuids.IndirectOffset02710, objects(commandBuffer, buffer), loc.Dot("offset"),
			"(%d) must be a multiple of %d.", offset, indirectOffsetAlignment) || skip
	}

	return v.validateIndirectCommandBuffer(commandBuffer, kind, loc) || skip
}

// validateIndirectCommandBuffer reports an indirect command recorded into a protected command buffer
func (v *Validator) validateIndirectCommandBuffer(commandBuffer *state.CommandBuffer, kind vuid.CommandKind, loc diag.Location) bool {
	if !commandBuffer.IsProtected() {
		return false
	}

	return v.sink.LogError(vuid.Get(kind).IndirectProtectedCB02711, objects(commandBuffer), loc,
		"%s is a protected command buffer, and %s cannot be recorded into protected command buffers.",
		commandBuffer.Object(), kind.Function())
}

// validateIndirectDrawCount applies the stride, size, and limit rules of indirect commands that take a
// fixed draw count
func (v *Validator) validateIndirectDrawCount(commandBuffer *state.CommandBuffer, buffer *state.Buffer, offset uint64, drawCount, stride uint32, structSize uint64, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	features := v.device.Features()
	properties := v.device.Properties()
	skip := false

	if drawCount > 1 && !features.MultiDrawIndirect {
		skip = v.sink.LogError(vuids.MultiDrawIndirect02718, objects(commandBuffer), loc.Dot("drawCount"),
			"(%d) must be 0 or 1 when the multiDrawIndirect feature is not enabled.", drawCount) || skip
	}

	if drawCount > properties.MaxDrawIndirectCount {
		skip = v.sink.LogError(vuids.MaxDrawIndirectCount02719, objects(commandBuffer), loc.Dot("drawCount"),
			"(%d) is greater than maxDrawIndirectCount (%d).", drawCount, properties.MaxDrawIndirectCount) || skip
	}

	if drawCount == 1 {
		if utils.RangeExceeds(offset, structSize, buffer.Size()) {
			skip = v.sink.LogError(vuids.IndirectSingleSize, objects(commandBuffer, buffer), loc.Dot("drawCount"),
				"is 1 and (offset + %d) (%d) is greater than the size of %s (%d).",
				structSize, offset+structSize, buffer.Object(), buffer.Size()) || skip
		}
	} else if drawCount > 1 {
		skip = v.validateIndirectStride(commandBuffer, stride, structSize, vuids.IndirectStride, loc) || skip

		span := uint64(stride)*uint64(drawCount-1) + structSize
		if utils.RangeExceeds(offset, span, buffer.Size()) {
			skip = v.sink.LogError(vuids.IndirectSize, objects(commandBuffer, buffer), loc.Dot("drawCount"),
				"is %d, and (stride * (drawCount - 1) + offset + %d) is greater than the size of %s (%d) (stride %d, offset %d).",
				drawCount, structSize, buffer.Object(), buffer.Size(), stride, offset) || skip
		}
	}

	return skip
}

// validateIndirectMaxDrawCount applies the stride and size rules of indirect count commands, which read
// at most maxDrawCount records
func (v *Validator) validateIndirectMaxDrawCount(commandBuffer *state.CommandBuffer, buffer *state.Buffer, offset uint64, maxDrawCount, stride uint32, structSize uint64, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)

	skip := v.validateIndirectStride(commandBuffer, stride, structSize, vuids.IndirectStride, loc)
	if maxDrawCount == 0 {
		return skip
	}

	span := uint64(stride)*uint64(maxDrawCount-1) + structSize
	if utils.RangeExceeds(offset, span, buffer.Size()) {
		skip = v.sink.LogError(vuids.IndirectSize, objects(commandBuffer, buffer), loc.Dot("maxDrawCount"),
			"is %d, and (stride * (maxDrawCount - 1) + offset + %d) is greater than the size of %s (%d) (stride %d, offset %d).",
			maxDrawCount, structSize, buffer.Object(), buffer.Size(), stride, offset) || skip
	}
	return skip
}

func (v *Validator) validateIndirectStride(commandBuffer *state.CommandBuffer, stride uint32, structSize uint64, id string, loc diag.Location) bool {
	if uint64(stride)%4 == 0 && uint64(stride) >= structSize {
		return false
	}

	return v.sink.LogError(id, objects(commandBuffer), loc.Dot("stride"),
		"(%d) must be a multiple of 4 and greater than or equal to %d.", stride, structSize)
}

// validateIndirectCountBuffer applies the rules of the buffer an indirect count command reads its draw
// count from
func (v *Validator) validateIndirectCountBuffer(commandBuffer *state.CommandBuffer, countBuffer *state.Buffer, countBufferOffset uint64, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)

	skip := v.validateBufferMemoryIsBound(commandBuffer, countBuffer, loc.Dot("countBuffer"), vuids.IndirectCountContiguousMemory02714)
	skip = v.validateBufferUsage(commandBuffer, countBuffer, core1_0.BufferUsageIndirectBuffer, loc.Dot("countBuffer"), vuids.IndirectCountBufferBit02715) || skip

	if !utils.IsAligned(countBufferOffset, indirectOffsetAlignment) {
		skip = v.sink.LogError(vuids.IndirectCountOffsetAlign02716, objects(commandBuffer, countBuffer), loc.Dot("countBufferOffset"),
			"(%d) must be a multiple of %d.", countBufferOffset, indirectOffsetAlignment) || skip
	}

	if utils.RangeExceeds(countBufferOffset, indirectCountSize, countBuffer.Size()) {
		skip = v.sink.LogError(vuids.IndirectCountOffset04129, objects(commandBuffer, countBuffer), loc.Dot("countBufferOffset"),
			"(%d) + %d is greater than the size of %s (%d).",
			countBufferOffset, indirectCountSize, countBuffer.Object(), countBuffer.Size()) || skip
	}

	if id := vuids.DrawIndirectCountFeature04445; id != vuid.Undefined && !v.device.Features().DrawIndirectCount {
		skip = v.sink.LogError(id, objects(commandBuffer), loc,
			"The drawIndirectCount feature was not enabled.") || skip
	}

	return skip
}

func indexSize(indexType core1_0.IndexType) uint64 {
	switch indexType {
	case core1_0.IndexTypeUInt16:
		return 2
	case core1_0.IndexTypeUInt32:
		return 4
	default:
		return 1
	}
}

// validateIndexRange checks that an indexed draw reads only indices inside the bound index buffer
func (v *Validator) validateIndexRange(commandBuffer *state.CommandBuffer, indexCount, firstIndex uint32, kind vuid.CommandKind, loc diag.Location) bool {
	binding := commandBuffer.IndexBuffer()
	if !binding.Bound || binding.Buffer == nil {
		return false
	}

	size := indexSize(binding.IndexType)
	end := (uint64(firstIndex) + uint64(indexCount)) * size
	if end <= binding.Size {
		return false
	}

	return v.sink.LogError(vuid.Get(kind).IndexBufferSize08798, objects(commandBuffer, binding.Buffer), loc.Dot("indexCount"),
		"(%d) + firstIndex (%d) multiplied by the index size %d (%d) is greater than the bound index buffer range (%s, offset %d, size %d).",
		indexCount, firstIndex, size, end, binding.Buffer.Object(), binding.Offset, binding.Size)
}
