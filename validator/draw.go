package validator

import (
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

// MultiDrawInfo is a single draw of vkCmdDrawMultiEXT
type MultiDrawInfo struct {
	FirstVertex uint32
	VertexCount uint32
}

// MultiDrawIndexedInfo is a single draw of vkCmdDrawMultiIndexedEXT
type MultiDrawIndexedInfo struct {
	FirstIndex   uint32
	IndexCount   uint32
	VertexOffset int32
}

func (v *Validator) PreCallValidateCmdDraw(commandBuffer state.Handle, vertexCount, instanceCount, firstVertex, firstInstance uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDraw")

	kind := vuid.CommandDraw
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateMultiviewInstance(cb, kind, instanceCount, firstInstance, loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawIndexed(commandBuffer state.Handle, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndexed")

	kind := vuid.CommandDrawIndexed
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateMultiviewInstance(cb, kind, instanceCount, firstInstance, loc) || skip
	skip = v.validateIndexRange(cb, indexCount, firstIndex, kind, loc) || skip
	return v.finish(skip)
}

// validateIndirectDraw applies the checks every indirect draw with a fixed draw count shares
func (v *Validator) validateIndirectDraw(commandBuffer state.Handle, kind vuid.CommandKind, buffer state.Handle, offset uint64, drawCount, stride uint32, structSize uint64) bool {
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	if indirectBuffer, ok := lookup[*state.Buffer](v, loc.Dot("buffer"), buffer); ok {
		skip = v.validateIndirectBuffer(cb, indirectBuffer, offset, kind, loc) || skip
		skip = v.validateIndirectDrawCount(cb, indirectBuffer, offset, drawCount, stride, structSize, kind, loc) || skip
	}
	return v.finish(skip)
}

// validateIndirectCountDraw applies the checks every indirect draw that reads its draw count from a
// buffer shares
func (v *Validator) validateIndirectCountDraw(commandBuffer state.Handle, kind vuid.CommandKind, buffer state.Handle, offset uint64, countBuffer state.Handle, countBufferOffset uint64, maxDrawCount, stride uint32, structSize uint64) bool {
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	if indirectBuffer, ok := lookup[*state.Buffer](v, loc.Dot("buffer"), buffer); ok {
		skip = v.validateIndirectBuffer(cb, indirectBuffer, offset, kind, loc) || skip
		skip = v.validateIndirectMaxDrawCount(cb, indirectBuffer, offset, maxDrawCount, stride, structSize, kind, loc) || skip
	}
	if countBufferState, ok := lookup[*state.Buffer](v, loc.Dot("countBuffer"), countBuffer); ok {
		skip = v.validateIndirectCountBuffer(cb, countBufferState, countBufferOffset, kind, loc) || skip
	}
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawIndirect(commandBuffer, buffer state.Handle, offset uint64, drawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndirect")
	return v.validateIndirectDraw(commandBuffer, vuid.CommandDrawIndirect, buffer, offset, drawCount, stride, drawIndirectCommandSize)
}

func (v *Validator) PreCallValidateCmdDrawIndexedIndirect(commandBuffer, buffer state.Handle, offset uint64, drawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndexedIndirect")
	return v.validateIndirectDraw(commandBuffer, vuid.CommandDrawIndexedIndirect, buffer, offset, drawCount, stride, drawIndexedIndirectCommandSize)
}

func (v *Validator) PreCallValidateCmdDrawIndirectCount(commandBuffer, buffer state.Handle, offset uint64, countBuffer state.Handle, countBufferOffset uint64, maxDrawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndirectCount")
	return v.validateIndirectCountDraw(commandBuffer, vuid.CommandDrawIndirectCount, buffer, offset, countBuffer, countBufferOffset, maxDrawCount, stride, drawIndirectCommandSize)
}

func (v *Validator) PreCallValidateCmdDrawIndexedIndirectCount(commandBuffer, buffer state.Handle, offset uint64, countBuffer state.Handle, countBufferOffset uint64, maxDrawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndexedIndirectCount")
	return v.validateIndirectCountDraw(commandBuffer, vuid.CommandDrawIndexedIndirectCount, buffer, offset, countBuffer, countBufferOffset, maxDrawCount, stride, drawIndexedIndirectCommandSize)
}

// validateMultiDraw applies the feature, count, and stride rules of the multi draw commands
func (v *Validator) validateMultiDraw(cb *state.CommandBuffer, kind vuid.CommandKind, drawCount int, stride uint32, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	skip := false

	if !v.device.Features().MultiDraw {
		skip = v.sink.LogError(vuids.MultiDrawFeature04933, objects(cb), loc,
			"The multiDraw feature was not enabled.") || skip
	}

	maxCount := v.device.Properties().MaxMultiDrawCount
	if uint64(drawCount) > uint64(maxCount) {
		skip = v.sink.LogError(vuids.MaxMultiDrawCount04934, objects(cb), loc.Dot("drawCount"),
			"(%d) must be less than VkPhysicalDeviceMultiDrawPropertiesEXT::maxMultiDrawCount (%d).", drawCount, maxCount) || skip
	}

	if drawCount > 1 && stride%4 != 0 {
		skip = v.sink.LogError(vuids.MultiDrawStride, objects(cb), loc.Dot("stride"),
			"(%d) must be a multiple of 4 when drawCount is greater than 1.", stride) || skip
	}

	return skip
}

func (v *Validator) PreCallValidateCmdDrawMultiEXT(commandBuffer state.Handle, vertexInfo []MultiDrawInfo, instanceCount, firstInstance, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMultiEXT")

	kind := vuid.CommandDrawMultiEXT
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateMultiDraw(cb, kind, len(vertexInfo), stride, loc) || skip
	skip = v.validateMultiviewInstance(cb, kind, instanceCount, firstInstance, loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawMultiIndexedEXT(commandBuffer state.Handle, indexInfo []MultiDrawIndexedInfo, instanceCount, firstInstance, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMultiIndexedEXT")

	kind := vuid.CommandDrawMultiIndexedEXT
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateMultiDraw(cb, kind, len(indexInfo), stride, loc) || skip
	skip = v.validateMultiviewInstance(cb, kind, instanceCount, firstInstance, loc) || skip
	for i, info := range indexInfo {
		skip = v.validateIndexRange(cb, info.IndexCount, info.FirstIndex, kind, loc.DotIndex("pIndexInfo", i)) || skip
	}
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawIndirectByteCountEXT(commandBuffer state.Handle, instanceCount, firstInstance uint32, counterBuffer state.Handle, counterBufferOffset uint64, counterOffset, vertexStride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawIndirectByteCountEXT")

	kind := vuid.CommandDrawIndirectByteCountEXT
	vuids := vuid.Get(kind)
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)

	if !v.device.Features().TransformFeedback {
		skip = v.sink.LogError(vuids.TransformFeedbackFeature02287, objects(cb), loc,
			"The transformFeedback feature was not enabled.") || skip
	}

	maxStride := v.device.Properties().MaxTransformFeedbackBufferDataStride
	if vertexStride == 0 || vertexStride > maxStride {
		skip = v.sink.LogError(vuids.VertexStride02289, objects(cb), loc.Dot("vertexStride"),
			"(%d) must be between 0 and maxTransformFeedbackBufferDataStride (%d).", vertexStride, maxStride) || skip
	}

	if !utils.IsAligned(uint64(counterOffset), transformFeedbackCounterAlignment) || !utils.IsAligned(counterBufferOffset, transformFeedbackCounterAlignment) {
		skip = v.sink.LogError(vuids.CounterBufferOffset04568, objects(cb), loc.Dot("counterBufferOffset"),
			"(%d) and counterOffset (%d) must be multiples of %d.", counterBufferOffset, counterOffset, transformFeedbackCounterAlignment) || skip
	}

	if counter, ok := lookup[*state.Buffer](v, loc.Dot("counterBuffer"), counterBuffer); ok {
		skip = v.validateBufferUsage(cb, counter, bufferUsageTransformFeedbackCounterBuffer, loc.Dot("counterBuffer"), vuids.CounterBufferUsage02290) || skip
		skip = v.validateBufferMemoryIsBound(cb, counter, loc.Dot("counterBuffer"), vuids.CounterBufferMemory04567) || skip
	}

	skip = v.validateMultiviewInstance(cb, kind, instanceCount, firstInstance, loc) || skip
	return v.finish(skip)
}
