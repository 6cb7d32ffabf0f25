package validator

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

// validateActionState validates the state bound at bindPoint against the command about to execute
// against it. Every check runs and reports independently, except that nothing past the pipeline-bound
// check runs without a bound pipeline.
func (v *Validator) validateActionState(commandBuffer *state.CommandBuffer, kind vuid.CommandKind, bindPoint state.BindPoint, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	skip := false

	// The index buffer does not depend on the pipeline, so it is checked even when none is bound
	if kind.Is(vuid.ClassIndexed) && !commandBuffer.IndexBuffer().Bound {
		skip = v.sink.LogError(vuids.IndexBinding07312, objects(commandBuffer), loc,
			"Index buffer object has not been bound to this command buffer.") || skip
	}

	lastBound := commandBuffer.LastBound(bindPoint)
	if lastBound == nil || lastBound.Pipeline == nil {
		return v.sink.LogError(vuids.PipelineBound08606, objects(commandBuffer), loc,
			"A valid %s pipeline must be bound with vkCmdBindPipeline before calling this command.", bindPoint) || skip
	}
	pipeline := lastBound.Pipeline

	skip = v.validateBindingModes(commandBuffer, lastBound, vuids, loc) || skip

	if bindPoint == state.BindPointGraphics {
		skip = v.validateDynamicStates(commandBuffer, pipeline, vuids, loc) || skip
		skip = v.validateDrawtimeState(commandBuffer, pipeline, vuids, loc) || skip
		skip = v.validateProtectedAttachments(commandBuffer, vuids, loc) || skip
	}

	if !pipeline.IsDescriptorBufferMode() {
		skip = v.validateBoundDescriptorSets(commandBuffer, lastBound, vuids, loc) || skip
	}

	skip = v.validatePushConstants(commandBuffer, pipeline, vuids, loc) || skip

	if bindPoint == state.BindPointGraphics {
		skip = v.validateShaderStageCombination(commandBuffer, pipeline, kind, loc) || skip
	}

	return skip
}

// validateBindingModes checks that each bound slot was bound the way the pipeline reads its resources.
// Only the first mismatching slot is reported.
func (v *Validator) validateBindingModes(commandBuffer *state.CommandBuffer, lastBound *state.LastBound, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	pipeline := lastBound.Pipeline

	for set := range lastBound.Slots {
		slot := &lastBound.Slots[set]

		if pipeline.IsDescriptorBufferMode() {
			// Push descriptors may be used alongside descriptor buffers
			if slot.Set != nil && !slot.Set.IsPushDescriptor() {
				return v.sink.LogError(vuids.DescriptorBufferBitSet08115, objects(commandBuffer, pipeline, slot.Set), loc,
					"%s was created with VK_PIPELINE_CREATE_DESCRIPTOR_BUFFER_BIT_EXT, but set %d is %s, which was bound with vkCmdBindDescriptorSets().",
					pipeline.Object(), set, slot.Set.Object())
			}
			continue
		}

		if slot.DescriptorBufferBound {
			return v.sink.LogError(vuids.DescriptorBufferBitNotSet08117, objects(commandBuffer, pipeline), loc,
				"%s was created without VK_PIPELINE_CREATE_DESCRIPTOR_BUFFER_BIT_EXT, but set %d was bound with vkCmdSetDescriptorBufferOffsetsEXT() (buffer index %d, offset %d).",
				pipeline.Object(), set, slot.DescriptorBufferIndex, slot.DescriptorBufferOffset)
		}
	}

	return false
}

func describeLayout(layout *state.PipelineLayout) string {
	if layout == nil {
		return "VK_NULL_HANDLE"
	}
	return layout.Describe()
}

// validateBoundDescriptorSets checks that the sets bound at the bind point are compatible with the
// pipeline's layout and that the descriptors its shaders use are valid
func (v *Validator) validateBoundDescriptorSets(commandBuffer *state.CommandBuffer, lastBound *state.LastBound, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	pipeline := lastBound.Pipeline
	layout := pipeline.Layout()

	maxSlot := pipeline.MaxActiveSlot()
	if maxSlot < 0 {
		return false
	}

	if !lastBound.IsBoundSetCompat(uint32(maxSlot), layout) {
		return v.sink.LogError(vuids.CompatiblePipeline08600, objects(commandBuffer, pipeline), loc,
			"The %s statically uses descriptor set %d, but the descriptor sets were bound with %s, which is not compatible with the pipeline layout %s: %s",
			pipeline.Object(), maxSlot, describeLayout(lastBound.Layout), layout.Describe(),
			lastBound.DescribeNonCompatibleSet(uint32(maxSlot), layout))
	}

	skip := false
	activeSlots := pipeline.ActiveSlots()
	for _, set := range pipeline.ActiveSlotIndices() {
		slot := lastBound.Slot(set)
		if slot == nil || slot.DescriptorBufferBound {
			// A descriptor buffer bound to a slot of a descriptor set pipeline was already reported as a
			// binding mode mismatch, and has no descriptor set contents to validate
			continue
		}

		if slot.Set == nil {
			skip = v.sink.LogError(vuids.CompatiblePipeline08600, objects(commandBuffer, pipeline), loc,
				"%s uses set %d but that set is not bound.", pipeline.Object(), set) || skip
			continue
		}

		if reason := layout.DescribeSetIncompatibility(set, slot.Set.Layout()); reason != "" {
			skip = v.sink.LogError(vuids.CompatiblePipeline08600, objects(commandBuffer, slot.Set, pipeline), loc,
				"%s bound as set %d is not compatible with overlapping %s due to: %s",
				slot.Set.Object(), set, layout.Describe(), reason) || skip
			continue
		}

		skip = v.validateDescriptorSet(commandBuffer, slot, set, activeSlots[set], vuids, loc) || skip
	}

	return skip
}

// validatePushConstants checks that push constants read by the pipeline's shaders were pushed.
//
// Only whether vkCmdPushConstants was ever recorded is checked. The pushed ranges are not compared
// against the ranges each stage reads, which can let some uninitialized reads through.
func (v *Validator) validatePushConstants(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	stages := pipeline.PushConstantStages()
	if stages == 0 || v.device.Features().Maintenance4 {
		return false
	}

	// Pushes that landed under a layout with the pipeline's push constant ranges are still live
	if commandBuffer.PushConstantRangesID() == pipeline.Layout().PushConstantRangesID() && len(commandBuffer.PushConstantChunks()) > 0 {
		return false
	}

	if commandBuffer.HasPushedConstants() {
		return false
	}

	return v.sink.LogError(vuids.PushConstantsSet08602, objects(commandBuffer, pipeline), loc,
		"Shader stages %s of %s use push constants, but vkCmdPushConstants() has not been called on %s, and the maintenance4 feature is not enabled.",
		stages, pipeline.Object(), commandBuffer.Object())
}

// validateShaderStageCombination checks that classic draws are not issued against mesh pipelines and
// that mesh draws are issued against pipelines with a mesh stage and no classic vertex stages
func (v *Validator) validateShaderStageCombination(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	skip := false

	if kind.Is(vuid.ClassDraw) && pipeline.HasShaderStages(state.StageMeshPipeline) {
		skip = v.sink.LogError(vuids.InvalidMeshShaderStages06481, objects(commandBuffer, pipeline), loc,
			"The bound graphics pipeline %s contains task or mesh shader stages (%s), which cannot be used with %s.",
			pipeline.Object(), pipeline.ActiveShaders()&state.StageMeshPipeline, kind.Function()) || skip
	}

	if kind.Is(vuid.ClassMesh) {
		if !pipeline.HasShaderStages(state.StageMesh) {
			skip = v.sink.LogError(vuids.MissingMeshShaderStages07080, objects(commandBuffer, pipeline), loc,
				"The bound graphics pipeline %s does not contain a mesh shader stage (stages are %s).",
				pipeline.Object(), pipeline.ActiveShaders()) || skip
		}

		if pipeline.HasShaderStages(state.StagePreRasterClassic) {
			skip = v.sink.LogError(vuids.MeshShaderStages07073, objects(commandBuffer, pipeline), loc,
				"The bound graphics pipeline %s contains vertex, tessellation, or geometry shader stages (%s), which cannot be used with %s.",
				pipeline.Object(), pipeline.ActiveShaders()&state.StagePreRasterClassic, kind.Function()) || skip
		}
	}

	return skip
}

// validateMultiviewInstance checks the instance range of a direct draw against the multiview limit
func (v *Validator) validateMultiviewInstance(commandBuffer *state.CommandBuffer, kind vuid.CommandKind, instanceCount, firstInstance uint32, loc diag.Location) bool {
	if !commandBuffer.IsMultiviewActive() {
		return false
	}

	maxInstanceIndex := v.device.Properties().MaxMultiviewInstanceIndex
	if uint64(firstInstance)+uint64(instanceCount) <= uint64(maxInstanceIndex) {
		return false
	}

	return v.sink.LogError(vuid.Get(kind).MaxMultiviewInstanceIndex02688, objects(commandBuffer), loc,
		"Multiview is enabled, and firstInstance (%d) + instanceCount (%d) = %d is greater than maxMultiviewInstanceIndex (%d).",
		firstInstance, instanceCount, uint64(firstInstance)+uint64(instanceCount), maxInstanceIndex)
}

// validateProtectedAttachments checks the protection of the attachments of the active subpass or rendering
// scope against the command buffer. Every attachment is read, so none may be protected in an unprotected
// command buffer. Input attachments are never written, so only color and depth/stencil attachments must
// be protected in a protected command buffer.
func (v *Validator) validateProtectedAttachments(commandBuffer *state.CommandBuffer, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	if !v.device.Features().ProtectedMemory {
		return false
	}

	skip := false
	for i, attachment := range commandBuffer.ActiveAttachments() {
		if attachment.View == nil || attachment.View.Image() == nil {
			continue
		}
		image := attachment.View.Image()
		attachmentLoc := loc.DotIndex("attachment", i)

		skip = v.validateProtectedResource(commandBuffer, image, image.IsProtected(), attachmentLoc, vuids.UnprotectedCommandBuffer02707,
			"attachment image") || skip

		if attachment.Usage&(core1_0.ImageUsageColorAttachment|core1_0.ImageUsageDepthStencilAttachment) != 0 {
			skip = v.validateUnprotectedResource(commandBuffer, image, image.IsProtected(), attachmentLoc, vuids.ProtectedCommandBuffer02712,
				"attachment image") || skip
		}
	}

	return skip
}
