package validator

import (
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

func (v *Validator) PreCallValidateCmdDrawMeshTasksNV(commandBuffer state.Handle, taskCount, firstTask uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksNV")

	kind := vuid.CommandDrawMeshTasksNV
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)

	maxCount := v.device.Properties().MaxDrawMeshTasksCount
	if taskCount > maxCount {
		skip = v.sink.LogError(vuid.Get(kind).MeshTaskCount02119, objects(cb), loc.Dot("taskCount"),
			"(%d) must be less than or equal to VkPhysicalDeviceMeshShaderPropertiesNV::maxDrawMeshTasksCount (%d).",
			taskCount, maxCount) || skip
	}

	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawMeshTasksEXT(commandBuffer state.Handle, groupCountX, groupCountY, groupCountZ uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksEXT")

	kind := vuid.CommandDrawMeshTasksEXT
	vuids := vuid.Get(kind)
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)

	// The group count is consumed by the task shader if there is one, and the mesh shader otherwise
	hasTaskShader := false
	if lastBound := cb.LastBound(state.BindPointGraphics); lastBound != nil && lastBound.Pipeline != nil {
		hasTaskShader = lastBound.Pipeline.HasShaderStages(state.StageTask)
	}

	properties := v.device.Properties()
	id, limit, limitName := vuids.MeshGroupCountTotalNoTask, properties.MaxMeshWorkGroupTotalCount, "maxMeshWorkGroupTotalCount"
	if hasTaskShader {
		id, limit, limitName = vuids.MeshGroupCountTotal, properties.MaxTaskWorkGroupTotalCount, "maxTaskWorkGroupTotalCount"
	}

	if utils.ProductExceeds(uint64(limit), uint64(groupCountX), uint64(groupCountY), uint64(groupCountZ)) {
		skip = v.sink.LogError(id, objects(cb), loc,
			"The product of groupCountX (%d), groupCountY (%d), and groupCountZ (%d) is greater than %s (%d).",
			groupCountX, groupCountY, groupCountZ, limitName, limit) || skip
	}

	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawMeshTasksIndirectNV(commandBuffer, buffer state.Handle, offset uint64, drawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksIndirectNV")
	return v.validateIndirectDraw(commandBuffer, vuid.CommandDrawMeshTasksIndirectNV, buffer, offset, drawCount, stride, drawMeshTasksIndirectNVSize)
}

func (v *Validator) PreCallValidateCmdDrawMeshTasksIndirectEXT(commandBuffer, buffer state.Handle, offset uint64, drawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksIndirectEXT")
	return v.validateIndirectDraw(commandBuffer, vuid.CommandDrawMeshTasksIndirectEXT, buffer, offset, drawCount, stride, drawMeshTasksIndirectEXTSize)
}

func (v *Validator) PreCallValidateCmdDrawMeshTasksIndirectCountNV(commandBuffer, buffer state.Handle, offset uint64, countBuffer state.Handle, countBufferOffset uint64, maxDrawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksIndirectCountNV")
	return v.validateIndirectCountDraw(commandBuffer, vuid.CommandDrawMeshTasksIndirectCountNV, buffer, offset, countBuffer, countBufferOffset, maxDrawCount, stride, drawMeshTasksIndirectNVSize)
}

func (v *Validator) PreCallValidateCmdDrawMeshTasksIndirectCountEXT(commandBuffer, buffer state.Handle, offset uint64, countBuffer state.Handle, countBufferOffset uint64, maxDrawCount, stride uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawMeshTasksIndirectCountEXT")
	return v.validateIndirectCountDraw(commandBuffer, vuid.CommandDrawMeshTasksIndirectCountEXT, buffer, offset, countBuffer, countBufferOffset, maxDrawCount, stride, drawMeshTasksIndirectEXTSize)
}
