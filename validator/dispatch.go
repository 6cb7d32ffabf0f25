package validator

import (
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

var dimensionNames = [3]string{"X", "Y", "Z"}

// validateGroupCounts checks a workgroup range, starting at base, against per-dimension limits
func (v *Validator) validateGroupCounts(cb *state.CommandBuffer, kind vuid.CommandKind, base, counts, limits [3]uint32, limitName string, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	baseIDs := [3]string{vuids.BaseGroupX, vuids.BaseGroupY, vuids.BaseGroupZ}
	countIDs := [3]string{vuids.GroupCountX, vuids.GroupCountY, vuids.GroupCountZ}
	skip := false

	for i := range counts {
		if base[i] >= limits[i] && base[i] > 0 {
			skip = v.sink.LogError(baseIDs[i], objects(cb), loc.Dot("baseGroup"+dimensionNames[i]),
				"(%d) must be less than %s[%d] (%d).", base[i], limitName, i, limits[i]) || skip
			continue
		}

		if uint64(counts[i]) > uint64(limits[i])-uint64(base[i]) {
			skip = v.sink.LogError(countIDs[i], objects(cb), loc.Dot("groupCount"+dimensionNames[i]),
				"(%d) plus baseGroup%s (%d) must be less than or equal to %s[%d] (%d).",
				counts[i], dimensionNames[i], base[i], limitName, i, limits[i]) || skip
		}
	}

	return skip
}

// validateIndirectRecord checks that a single parameter record of structSize bytes at offset fits in buffer
func (v *Validator) validateIndirectRecord(cb *state.CommandBuffer, buffer *state.Buffer, offset, structSize uint64, kind vuid.CommandKind, loc diag.Location) bool {
	if !utils.RangeExceeds(offset, structSize, buffer.Size()) {
		return false
	}

	return v.sink.LogError(vuid.Get(kind).IndirectSize, objects(cb, buffer), loc.Dot("offset"),
		"(%d) + %d is greater than the size of %s (%d).", offset, structSize, buffer.Object(), buffer.Size())
}

func (v *Validator) PreCallValidateCmdDispatch(commandBuffer state.Handle, groupCountX, groupCountY, groupCountZ uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDispatch")

	kind := vuid.CommandDispatch
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateGroupCounts(cb, kind, [3]uint32{}, [3]uint32{groupCountX, groupCountY, groupCountZ},
		v.device.Properties().MaxComputeWorkGroupCount, "maxComputeWorkGroupCount", loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDispatchBase(commandBuffer state.Handle, baseGroupX, baseGroupY, baseGroupZ, groupCountX, groupCountY, groupCountZ uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDispatchBase")

	kind := vuid.CommandDispatchBase
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateGroupCounts(cb, kind,
		[3]uint32{baseGroupX, baseGroupY, baseGroupZ},
		[3]uint32{groupCountX, groupCountY, groupCountZ},
		v.device.Properties().MaxComputeWorkGroupCount, "maxComputeWorkGroupCount", loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDispatchIndirect(commandBuffer, buffer state.Handle, offset uint64) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDispatchIndirect")

	kind := vuid.CommandDispatchIndirect
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	if indirectBuffer, ok := lookup[*state.Buffer](v, loc.Dot("buffer"), buffer); ok {
		skip = v.validateIndirectBuffer(cb, indirectBuffer, offset, kind, loc) || skip
		skip = v.validateIndirectRecord(cb, indirectBuffer, offset, dispatchIndirectCommandSize, kind, loc) || skip
	}
	return v.finish(skip)
}

func (v *Validator) validateTraceRaysDimensions(commandBuffer state.Handle, kind vuid.CommandKind, width, height, depth uint32) bool {
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)

	limit := v.device.Properties().MaxRayDispatchInvocationCount
	if utils.ProductExceeds(uint64(limit), uint64(width), uint64(height), uint64(depth)) {
		skip = v.sink.LogError(vuid.Get(kind).RayDispatchInvocationCount, objects(cb), loc.Dot("width"),
			"(%d) * height (%d) * depth (%d) is greater than maxRayDispatchInvocationCount (%d).",
			width, height, depth, limit) || skip
	}

	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdTraceRaysNV(commandBuffer state.Handle, width, height, depth uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdTraceRaysNV")
	return v.validateTraceRaysDimensions(commandBuffer, vuid.CommandTraceRaysNV, width, height, depth)
}

func (v *Validator) PreCallValidateCmdTraceRaysKHR(commandBuffer state.Handle, width, height, depth uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdTraceRaysKHR")
	return v.validateTraceRaysDimensions(commandBuffer, vuid.CommandTraceRaysKHR, width, height, depth)
}

// validateTraceRaysIndirect applies the feature, alignment, and protection rules of the trace rays
// commands that read their dimensions from a device address
func (v *Validator) validateTraceRaysIndirect(commandBuffer state.Handle, kind vuid.CommandKind, indirectDeviceAddress uint64, featureEnabled bool, featureName string) bool {
	vuids := vuid.Get(kind)
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)

	if !featureEnabled {
		skip = v.sink.LogError(vuids.TraceRaysIndirectFeature, objects(cb), loc,
			"The %s feature was not enabled.", featureName) || skip
	}

	if !utils.IsAligned(indirectDeviceAddress, indirectDeviceAddressAlignment) {
		skip = v.sink.LogError(vuids.IndirectDeviceAddressAlign, objects(cb), loc.Dot("indirectDeviceAddress"),
			"(0x%x) must be a multiple of %d.", indirectDeviceAddress, indirectDeviceAddressAlignment) || skip
	}

	skip = v.validateIndirectCommandBuffer(cb, kind, loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdTraceRaysIndirectKHR(commandBuffer state.Handle, indirectDeviceAddress uint64) bool {
	v.logger.Debug("Validator::PreCallValidateCmdTraceRaysIndirectKHR")
	return v.validateTraceRaysIndirect(commandBuffer, vuid.CommandTraceRaysIndirectKHR, indirectDeviceAddress,
		v.device.Features().RayTracingPipelineTraceRaysIndirect, "rayTracingPipelineTraceRaysIndirect")
}

func (v *Validator) PreCallValidateCmdTraceRaysIndirect2KHR(commandBuffer state.Handle, indirectDeviceAddress uint64) bool {
	v.logger.Debug("Validator::PreCallValidateCmdTraceRaysIndirect2KHR")
	return v.validateTraceRaysIndirect(commandBuffer, vuid.CommandTraceRaysIndirect2KHR, indirectDeviceAddress,
		v.device.Features().RayTracingMaintenance1, "rayTracingPipelineTraceRaysIndirect2")
}

func (v *Validator) PreCallValidateCmdDrawClusterHUAWEI(commandBuffer state.Handle, groupCountX, groupCountY, groupCountZ uint32) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawClusterHUAWEI")

	kind := vuid.CommandDrawClusterHUAWEI
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	skip = v.validateGroupCounts(cb, kind, [3]uint32{}, [3]uint32{groupCountX, groupCountY, groupCountZ},
		v.device.Properties().MaxClusterWorkGroupCount, "maxWorkGroupCount", loc) || skip
	return v.finish(skip)
}

func (v *Validator) PreCallValidateCmdDrawClusterIndirectHUAWEI(commandBuffer, buffer state.Handle, offset uint64) bool {
	v.logger.Debug("Validator::PreCallValidateCmdDrawClusterIndirectHUAWEI")

	kind := vuid.CommandDrawClusterIndirectHUAWEI
	loc := diag.NewLocation(kind.Function())
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateDrawDispatch(cb, kind, loc)
	if indirectBuffer, ok := lookup[*state.Buffer](v, loc.Dot("buffer"), buffer); ok {
		skip = v.validateIndirectBuffer(cb, indirectBuffer, offset, kind, loc) || skip
		skip = v.validateIndirectRecord(cb, indirectBuffer, offset, drawClusterIndirectCommandSize, kind, loc) || skip
	}
	return v.finish(skip)
}
