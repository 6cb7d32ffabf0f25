package validator

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

type dynamicStateRule struct {
	state state.DynamicState
	vuid  func(v *vuid.DrawDispatchVuids) string
}

// dynamicStateRules lists every dynamic state that must have been set before a draw when the bound
// pipeline leaves it dynamic. Viewport and scissor with count are checked with the drawtime state.
var dynamicStateRules = []dynamicStateRule{
	{state: state.DynamicStateViewport, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicViewport07831 }},
	{state: state.DynamicStateScissor, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicScissor07832 }},
	{state: state.DynamicStateLineWidth, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicLineWidth07833 }},
	{state: state.DynamicStateDepthBias, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthBias07834 }},
	{state: state.DynamicStateBlendConstants, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicBlendConstants07835 }},
	{state: state.DynamicStateDepthBounds, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthBounds07836 }},
	{state: state.DynamicStateStencilCompareMask, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicStencilCompareMask07837 }},
	{state: state.DynamicStateStencilWriteMask, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicStencilWriteMask07838 }},
	{state: state.DynamicStateStencilReference, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicStencilReference07839 }},
	{state: state.DynamicStateCullMode, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicCullMode07840 }},
	{state: state.DynamicStateFrontFace, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicFrontFace07841 }},
	{state: state.DynamicStatePrimitiveTopology, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicPrimitiveTopology07842 }},
	{state: state.DynamicStateDepthTestEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthTestEnable07843 }},
	{state: state.DynamicStateDepthWriteEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthWriteEnable07844 }},
	{state: state.DynamicStateDepthCompareOp, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthCompareOp07845 }},
	{state: state.DynamicStateDepthBoundsTestEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthBoundsTestEnable07846 }},
	{state: state.DynamicStateStencilTestEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicStencilTestEnable07847 }},
	{state: state.DynamicStateStencilOp, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicStencilOp07848 }},
	{state: state.DynamicStatePatchControlPoints, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicPatchControlPoints04875 }},
	{state: state.DynamicStateRasterizerDiscardEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicRasterizerDiscardEnable04876 }},
	{state: state.DynamicStateDepthBiasEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicDepthBiasEnable04877 }},
	{state: state.DynamicStateLogicOp, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicLogicOp04878 }},
	{state: state.DynamicStatePrimitiveRestartEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicPrimitiveRestartEnable04879 }},
	{state: state.DynamicStateVertexInput, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicVertexInput04914 }},
	{state: state.DynamicStateColorWriteEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicColorWriteEnable07749 }},
	{state: state.DynamicStatePolygonMode, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicPolygonMode07621 }},
	{state: state.DynamicStateRasterizationSamples, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicRasterizationSamples07622 }},
	{state: state.DynamicStateColorBlendEnable, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicColorBlendEnable07476 }},
	{state: state.DynamicStateColorWriteMask, vuid: func(v *vuid.DrawDispatchVuids) string { return v.DynamicColorWriteMask07478 }},
}

// validateDynamicStates checks that every state the pipeline leaves dynamic has been set, and that the
// dynamic values the pipeline depends on are legal for it
func (v *Validator) validateDynamicStates(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	skip := false

	for _, rule := range dynamicStateRules {
		id := rule.vuid(vuids)
		if id == vuid.Undefined || !pipeline.IsDynamic(rule.state) || commandBuffer.IsDynamicStateSet(rule.state) {
			continue
		}

		skip = v.sink.LogError(id, objects(commandBuffer, pipeline), loc,
			"%s was created with %s, but the matching vkCmdSet* command was never recorded in %s.",
			pipeline.Object(), rule.state, commandBuffer.Object()) || skip
	}

	skip = v.validateTopologyClass(commandBuffer, pipeline, vuids, loc) || skip
	return skip
}

// topologyClass groups primitive topologies that may replace each other dynamically
type topologyClass int

const (
	topologyClassPoint topologyClass = iota
	topologyClassLine
	topologyClassTriangle
	topologyClassPatch
)

var topologyClassNames = map[topologyClass]string{
	topologyClassPoint:    "point",
	topologyClassLine:     "line",
	topologyClassTriangle: "triangle",
	topologyClassPatch:    "patch",
}

// classOfTopology follows the numbering of VkPrimitiveTopology
func classOfTopology(topology core1_0.PrimitiveTopology) topologyClass {
	switch {
	case topology == 0:
		return topologyClassPoint
	case topology <= 2, topology == 6, topology == 7:
		return topologyClassLine
	case topology == 10:
		return topologyClassPatch
	default:
		return topologyClassTriangle
	}
}

// validateTopologyClass checks that a dynamically set primitive topology is of the same class as the
// topology the pipeline was created with, unless dynamicPrimitiveTopologyUnrestricted is enabled
func (v *Validator) validateTopologyClass(commandBuffer *state.CommandBuffer, pipeline *state.Pipeline, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	if vuids.PrimitiveTopologyClass07500 == vuid.Undefined || v.device.Features().DynamicPrimitiveTopologyUnrestricted {
		return false
	}
	if !pipeline.IsDynamic(state.DynamicStatePrimitiveTopology) || !commandBuffer.IsDynamicStateSet(state.DynamicStatePrimitiveTopology) {
		return false
	}

	dynamicTopology := commandBuffer.DynamicValues().PrimitiveTopology
	pipelineTopology := pipeline.Graphics().Topology
	dynamicClass, pipelineClass := classOfTopology(dynamicTopology), classOfTopology(pipelineTopology)
	if dynamicClass == pipelineClass {
		return false
	}

	return v.sink.LogError(vuids.PrimitiveTopologyClass07500, objects(commandBuffer, pipeline), loc,
		"The topology set by vkCmdSetPrimitiveTopology (%v) is of the %s class, but %s was created with topology %v, of the %s class.",
		dynamicTopology, topologyClassNames[dynamicClass], pipeline.Object(), pipelineTopology, topologyClassNames[pipelineClass])
}
