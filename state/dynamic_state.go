package state

import "strings"

// DynamicState is a fixed-function value a pipeline may defer to a vkCmdSet* call
type DynamicState int32

const (
	DynamicStateViewport DynamicState = iota
	DynamicStateScissor
	DynamicStateLineWidth
	DynamicStateDepthBias
	DynamicStateBlendConstants
	DynamicStateDepthBounds
	DynamicStateStencilCompareMask
	DynamicStateStencilWriteMask
	DynamicStateStencilReference
	DynamicStateCullMode
	DynamicStateFrontFace
	DynamicStatePrimitiveTopology
	DynamicStateViewportWithCount
	DynamicStateScissorWithCount
	DynamicStateVertexInputBindingStride
	DynamicStateDepthTestEnable
	DynamicStateDepthWriteEnable
	DynamicStateDepthCompareOp
	DynamicStateDepthBoundsTestEnable
	DynamicStateStencilTestEnable
	DynamicStateStencilOp
	DynamicStatePatchControlPoints
	DynamicStateRasterizerDiscardEnable
	DynamicStateDepthBiasEnable
	DynamicStateLogicOp
	DynamicStatePrimitiveRestartEnable
	DynamicStateVertexInput
	DynamicStateColorWriteEnable
	DynamicStatePolygonMode
	DynamicStateRasterizationSamples
	DynamicStateColorBlendEnable
	DynamicStateColorWriteMask

	dynamicStateCount
)

var dynamicStateMapping = make(map[DynamicState]string)

func (s DynamicState) String() string {
	return dynamicStateMapping[s]
}

// DynamicStateSet is a bitset of DynamicState values
type DynamicStateSet uint64

func NewDynamicStateSet(states ...DynamicState) DynamicStateSet {
	var set DynamicStateSet
	for _, s := range states {
		set = set.With(s)
	}
	return set
}

func (s DynamicStateSet) Has(state DynamicState) bool {
	if state < 0 || state >= dynamicStateCount {
		return false
	}
	return s&(1<<uint(state)) != 0
}

func (s DynamicStateSet) With(state DynamicState) DynamicStateSet {
	if state < 0 || state >= dynamicStateCount {
		return s
	}
	return s | (1 << uint(state))
}

func (s DynamicStateSet) Without(state DynamicState) DynamicStateSet {
	if state < 0 || state >= dynamicStateCount {
		return s
	}
	return s &^ (1 << uint(state))
}

// States returns the members of the set in enumeration order
func (s DynamicStateSet) States() []DynamicState {
	var states []DynamicState
	for state := DynamicState(0); state < dynamicStateCount; state++ {
		if s.Has(state) {
			states = append(states, state)
		}
	}
	return states
}

func (s DynamicStateSet) String() string {
	states := s.States()
	if len(states) == 0 {
		return "None"
	}

	names := make([]string, 0, len(states))
	for _, state := range states {
		names = append(names, state.String())
	}
	return strings.Join(names, "|")
}

func init() {
	dynamicStateMapping[DynamicStateViewport] = "VK_DYNAMIC_STATE_VIEWPORT"
	dynamicStateMapping[DynamicStateScissor] = "VK_DYNAMIC_STATE_SCISSOR"
	dynamicStateMapping[DynamicStateLineWidth] = "VK_DYNAMIC_STATE_LINE_WIDTH"
	dynamicStateMapping[DynamicStateDepthBias] = "VK_DYNAMIC_STATE_DEPTH_BIAS"
	dynamicStateMapping[DynamicStateBlendConstants] = "VK_DYNAMIC_STATE_BLEND_CONSTANTS"
	dynamicStateMapping[DynamicStateDepthBounds] = "VK_DYNAMIC_STATE_DEPTH_BOUNDS"
	dynamicStateMapping[DynamicStateStencilCompareMask] = "VK_DYNAMIC_STATE_STENCIL_COMPARE_MASK"
	dynamicStateMapping[DynamicStateStencilWriteMask] = "VK_DYNAMIC_STATE_STENCIL_WRITE_MASK"
	dynamicStateMapping[DynamicStateStencilReference] = "VK_DYNAMIC_STATE_STENCIL_REFERENCE"
	dynamicStateMapping[DynamicStateCullMode] = "VK_DYNAMIC_STATE_CULL_MODE"
	dynamicStateMapping[DynamicStateFrontFace] = "VK_DYNAMIC_STATE_FRONT_FACE"
	dynamicStateMapping[DynamicStatePrimitiveTopology] = "VK_DYNAMIC_STATE_PRIMITIVE_TOPOLOGY"
	dynamicStateMapping[DynamicStateViewportWithCount] = "VK_DYNAMIC_STATE_VIEWPORT_WITH_COUNT"
	dynamicStateMapping[DynamicStateScissorWithCount] = "VK_DYNAMIC_STATE_SCISSOR_WITH_COUNT"
	dynamicStateMapping[DynamicStateVertexInputBindingStride] = "VK_DYNAMIC_STATE_VERTEX_INPUT_BINDING_STRIDE"
	dynamicStateMapping[DynamicStateDepthTestEnable] = "VK_DYNAMIC_STATE_DEPTH_TEST_ENABLE"
	dynamicStateMapping[DynamicStateDepthWriteEnable] = "VK_DYNAMIC_STATE_DEPTH_WRITE_ENABLE"
	dynamicStateMapping[DynamicStateDepthCompareOp] = "VK_DYNAMIC_STATE_DEPTH_COMPARE_OP"
	dynamicStateMapping[DynamicStateDepthBoundsTestEnable] = "VK_DYNAMIC_STATE_DEPTH_BOUNDS_TEST_ENABLE"
	dynamicStateMapping[DynamicStateStencilTestEnable] = "VK_DYNAMIC_STATE_STENCIL_TEST_ENABLE"
	dynamicStateMapping[DynamicStateStencilOp] = "VK_DYNAMIC_STATE_STENCIL_OP"
	dynamicStateMapping[DynamicStatePatchControlPoints] = "VK_DYNAMIC_STATE_PATCH_CONTROL_POINTS_EXT"
	dynamicStateMapping[DynamicStateRasterizerDiscardEnable] = "VK_DYNAMIC_STATE_RASTERIZER_DISCARD_ENABLE"
	dynamicStateMapping[DynamicStateDepthBiasEnable] = "VK_DYNAMIC_STATE_DEPTH_BIAS_ENABLE"
	dynamicStateMapping[DynamicStateLogicOp] = "VK_DYNAMIC_STATE_LOGIC_OP_EXT"
	dynamicStateMapping[DynamicStatePrimitiveRestartEnable] = "VK_DYNAMIC_STATE_PRIMITIVE_RESTART_ENABLE"
	dynamicStateMapping[DynamicStateVertexInput] = "VK_DYNAMIC_STATE_VERTEX_INPUT_EXT"
	dynamicStateMapping[DynamicStateColorWriteEnable] = "VK_DYNAMIC_STATE_COLOR_WRITE_ENABLE_EXT"
	dynamicStateMapping[DynamicStatePolygonMode] = "VK_DYNAMIC_STATE_POLYGON_MODE_EXT"
	dynamicStateMapping[DynamicStateRasterizationSamples] = "VK_DYNAMIC_STATE_RASTERIZATION_SAMPLES_EXT"
	dynamicStateMapping[DynamicStateColorBlendEnable] = "VK_DYNAMIC_STATE_COLOR_BLEND_ENABLE_EXT"
	dynamicStateMapping[DynamicStateColorWriteMask] = "VK_DYNAMIC_STATE_COLOR_WRITE_MASK_EXT"
}
