package validator

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

func countMask(count uint32) uint32 {
	if count >= 32 {
		return ^uint32(0)
	}
	return (1 << count) - 1
}

// rasterizationSamples is the sample count the pipeline will rasterize with at draw time
func rasterizationSamples(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline) core1_0.SampleCountFlags {
	if pipeline.IsDynamic(state.DynamicStateRasterizationSamples) && commandBuffer.IsDynamicStateSet(state.DynamicStateRasterizationSamples) {
		return commandBuffer.DynamicValues().RasterizationSamples
	}
	return pipeline.Graphics().RasterizationSamples
}

// validateDrawtimeState checks the fixed-function state of the bound graphics pipeline against the
// dynamic state and the active render pass or rendering scope
func (v *Validator) validateDrawtimeState(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	skip := v.validateViewportScissor(commandBuffer, pipeline, vuids, loc)
	skip = v.validateVertexBindings(commandBuffer, pipeline, vuids, loc) || skip

	if commandBuffer.ActiveRenderPass() != nil {
		skip = v.validateRenderPassState(commandBuffer, pipeline, vuids, loc) || skip
	} else if commandBuffer.Rendering() != nil {
		skip = v.validateRenderingState(commandBuffer, pipeline, vuids, loc) || skip
	}

	return skip
}

func (v *Validator) validateViewportScissor(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	graphics := pipeline.Graphics()
	values := commandBuffer.DynamicValues()
	skip := false

	viewportWithCount := pipeline.IsDynamic(state.DynamicStateViewportWithCount)
	scissorWithCount := pipeline.IsDynamic(state.DynamicStateScissorWithCount)

	if pipeline.IsDynamic(state.DynamicStateViewport) && !viewportWithCount && commandBuffer.IsDynamicStateSet(state.DynamicStateViewport) {
		required := countMask(graphics.ViewportCount)
		if missing := required &^ values.ViewportMask; missing != 0 && vuids.DynamicViewport07831 != vuid.Undefined {
			skip = v.sink.LogError(vuids.DynamicViewport07831, objects(commandBuffer, pipeline), loc,
				"%s uses %d viewports, but viewports with mask 0x%x were never set with vkCmdSetViewport.",
				pipeline.Object(), graphics.ViewportCount, missing) || skip
		}
	}

	if pipeline.IsDynamic(state.DynamicStateScissor) && !scissorWithCount && commandBuffer.IsDynamicStateSet(state.DynamicStateScissor) {
		required := countMask(graphics.ScissorCount)
		if missing := required &^ values.ScissorMask; missing != 0 && vuids.DynamicScissor07832 != vuid.Undefined {
			skip = v.sink.LogError(vuids.DynamicScissor07832, objects(commandBuffer, pipeline), loc,
				"%s uses %d scissors, but scissors with mask 0x%x were never set with vkCmdSetScissor.",
				pipeline.Object(), graphics.ScissorCount, missing) || skip
		}
	}

	switch {
	case viewportWithCount && !scissorWithCount:
		if !commandBuffer.IsDynamicStateSet(state.DynamicStateViewportWithCount) || values.ViewportWithCount != graphics.ScissorCount {
			skip = v.sink.LogError(vuids.ViewportCount03417, objects(commandBuffer, pipeline), loc,
				"%s was created with VK_DYNAMIC_STATE_VIEWPORT_WITH_COUNT, so vkCmdSetViewportWithCount must be called with viewportCount equal to the pipeline's scissorCount (%d), but the last viewportCount set was %d.",
				pipeline.Object(), graphics.ScissorCount, values.ViewportWithCount) || skip
		}
	case scissorWithCount && !viewportWithCount:
		if !commandBuffer.IsDynamicStateSet(state.DynamicStateScissorWithCount) || values.ScissorWithCount != graphics.ViewportCount {
			skip = v.sink.LogError(vuids.ScissorCount03418, objects(commandBuffer, pipeline), loc,
				"%s was created with VK_DYNAMIC_STATE_SCISSOR_WITH_COUNT, so vkCmdSetScissorWithCount must be called with scissorCount equal to the pipeline's viewportCount (%d), but the last scissorCount set was %d.",
				pipeline.Object(), graphics.ViewportCount, values.ScissorWithCount) || skip
		}
	case viewportWithCount && scissorWithCount:
		viewportSet := commandBuffer.IsDynamicStateSet(state.DynamicStateViewportWithCount)
		scissorSet := commandBuffer.IsDynamicStateSet(state.DynamicStateScissorWithCount)
		if !viewportSet || !scissorSet || values.ViewportWithCount != values.ScissorWithCount {
			skip = v.sink.LogError(vuids.ViewportScissorCount03419, objects(commandBuffer, pipeline), loc,
				"%s was created with VK_DYNAMIC_STATE_VIEWPORT_WITH_COUNT and VK_DYNAMIC_STATE_SCISSOR_WITH_COUNT, so both must be set with matching counts, but viewportCount is %d and scissorCount is %d.",
				pipeline.Object(), values.ViewportWithCount, values.ScissorWithCount) || skip
		}
	}

	return skip
}

func (v *Validator) validateVertexBindings(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	if vuids.VertexBinding04007 == vuid.Undefined || pipeline.IsDynamic(state.DynamicStateVertexInput) {
		return false
	}

	skip := false
	for _, binding := range pipeline.Graphics().VertexBindings {
		vertexBuffer, bound := commandBuffer.VertexBuffer(binding)
		if bound && vertexBuffer.Buffer != nil {
			continue
		}

		skip = v.sink.LogError(vuids.VertexBinding04007, objects(commandBuffer, pipeline), loc,
			"%s reads vertex input binding %d, but no vertex buffer is bound to it.", pipeline.Object(), binding) || skip
	}
	return skip
}

func (v *Validator) validateRenderPassState(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	graphics := pipeline.Graphics()
	renderPass := commandBuffer.ActiveRenderPass()
	skip := false

	if graphics.RenderPass == nil {
		return v.sink.LogError(vuids.RenderPassCompatible02684, objects(commandBuffer, pipeline, renderPass), loc,
			"%s was created for dynamic rendering, but %s is active.", pipeline.Object(), renderPass.Object())
	}

	if !renderPass.IsCompatible(graphics.RenderPass) {
		skip = v.sink.LogError(vuids.RenderPassCompatible02684, objects(commandBuffer, pipeline, renderPass, graphics.RenderPass), loc,
			"The active %s is not compatible with %s, which %s was created with.",
			renderPass.Object(), graphics.RenderPass.Object(), pipeline.Object()) || skip
	}

	if graphics.Subpass != commandBuffer.ActiveSubpass() {
		skip = v.sink.LogError(vuids.Subpass02685, objects(commandBuffer, pipeline, renderPass), loc,
			"%s was created for subpass %d, but the active subpass of %s is %d.",
			pipeline.Object(), graphics.Subpass, renderPass.Object(), commandBuffer.ActiveSubpass()) || skip
	}

	subpassSamples := renderPass.SubpassSampleCount(commandBuffer.ActiveSubpass())
	samples := rasterizationSamples(commandBuffer, pipeline)
	if subpassSamples != 0 && samples != 0 && subpassSamples != samples {
		skip = v.sink.LogError(vuids.SampleCount07284, objects(commandBuffer, pipeline, renderPass), loc,
			"%s rasterizes with %s, but the attachments of subpass %d of %s use %s.",
			pipeline.Object(), samples, commandBuffer.ActiveSubpass(), renderPass.Object(), subpassSamples) || skip
	}

	return skip
}

func (v *Validator) validateRenderingState(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	graphics := pipeline.Graphics()
	rendering := commandBuffer.Rendering()

	if graphics.RenderPass != nil {
		return v.sink.LogError(vuids.DynamicRenderingRenderPass06198, objects(commandBuffer, pipeline, graphics.RenderPass), loc,
			"A dynamic rendering scope is active, but %s was created with %s instead of VK_NULL_HANDLE.",
			pipeline.Object(), graphics.RenderPass.Object())
	}

	formats := graphics.Rendering
	if formats == nil {
		formats = &state.RenderingFormats{}
	}
	skip := false

	if formats.ViewMask != rendering.ViewMask {
		skip = v.sink.LogError(vuids.DynamicRenderingViewMask06178, objects(commandBuffer, pipeline), loc,
			"%s was created with viewMask 0x%x, but the active rendering scope has viewMask 0x%x.",
			pipeline.Object(), formats.ViewMask, rendering.ViewMask) || skip
	}

	if len(formats.ColorFormats) != len(rendering.ColorAttachments) {
		skip = v.sink.LogError(vuids.DynamicRenderingColorCount06179, objects(commandBuffer, pipeline), loc,
			"%s was created with colorAttachmentCount %d, but the active rendering scope has %d color attachments.",
			pipeline.Object(), len(formats.ColorFormats), len(rendering.ColorAttachments)) || skip
	} else {
		for i, view := range rendering.ColorAttachments {
			if view == nil || view.Format() == formats.ColorFormats[i] {
				continue
			}
			skip = v.sink.LogError(vuids.DynamicRenderingColorFormats08910, objects(commandBuffer, pipeline, view), loc.DotIndex("pColorAttachments", i),
				"is %s with format %v, but %s was created with color attachment format %v.",
				view.Object(), view.Format(), pipeline.Object(), formats.ColorFormats[i]) || skip
		}
	}

	if view := rendering.DepthAttachment; view != nil && view.Format() != formats.DepthFormat {
		skip = v.sink.LogError(vuids.DynamicRenderingDepthFormat08914, objects(commandBuffer, pipeline, view), loc.Dot("pDepthAttachment"),
			"is %s with format %v, but %s was created with depth attachment format %v.",
			view.Object(), view.Format(), pipeline.Object(), formats.DepthFormat) || skip
	}

	if view := rendering.StencilAttachment; view != nil && view.Format() != formats.StencilFormat {
		skip = v.sink.LogError(vuids.DynamicRenderingStencilFormat08917, objects(commandBuffer, pipeline, view), loc.Dot("pStencilAttachment"),
			"is %s with format %v, but %s was created with stencil attachment format %v.",
			view.Object(), view.Format(), pipeline.Object(), formats.StencilFormat) || skip
	}

	samples := rasterizationSamples(commandBuffer, pipeline)
	if samples != 0 {
		for _, attachment := range commandBuffer.ActiveAttachments() {
			if attachment.View == nil || attachment.View.Image() == nil {
				continue
			}
			image := attachment.View.Image()
			if image.Samples() == samples {
				continue
			}

			skip = v.sink.LogError(vuids.DynamicRenderingSampleCount07285, objects(commandBuffer, pipeline, attachment.View), loc,
				"%s rasterizes with %s, but the attachment %s has %s.",
				pipeline.Object(), samples, attachment.View.Object(), image.Samples()) || skip
			break
		}
	}

	return skip
}
