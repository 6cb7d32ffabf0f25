package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
)

func TestPipelineMustBeBound(t *testing.T) {
	testCases := map[string]struct {
		kind      vuid.CommandKind
		rendering bool
		validate  func(f *testFixture) bool
	}{
		"Draw": {
			kind:      vuid.CommandDraw,
			rendering: true,
			validate:  func(f *testFixture) bool { return f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0) },
		},
		"DrawIndexed": {
			kind:      vuid.CommandDrawIndexed,
			rendering: true,
			validate: func(f *testFixture) bool {
				require.NoError(f.t, f.cb.BindIndexBuffer(f.buffer(64, core1_0.BufferUsageIndexBuffer), 0, core1_0.IndexTypeUInt16))
				return f.validator.PreCallValidateCmdDrawIndexed(1, 3, 1, 0, 0, 0)
			},
		},
		"DrawMeshTasksEXT": {
			kind:      vuid.CommandDrawMeshTasksEXT,
			rendering: true,
			validate:  func(f *testFixture) bool { return f.validator.PreCallValidateCmdDrawMeshTasksEXT(1, 1, 1, 1) },
		},
		"Dispatch": {
			kind:     vuid.CommandDispatch,
			validate: func(f *testFixture) bool { return f.validator.PreCallValidateCmdDispatch(1, 1, 1, 1) },
		},
		"TraceRaysKHR": {
			kind:     vuid.CommandTraceRaysKHR,
			validate: func(f *testFixture) bool { return f.validator.PreCallValidateCmdTraceRaysKHR(1, 4, 4, 1) },
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			if testCase.rendering {
				f.beginRendering()
			}

			require.False(t, testCase.validate(f))
			require.Equal(t, []string{vuid.Get(testCase.kind).PipelineBound08606}, f.vuids())
		})
	}
}

func TestPipelineBoundAtOtherBindPoint(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.bindVertexPipeline()

	f.validator.PreCallValidateCmdDispatch(1, 1, 1, 1)
	require.Equal(t, []string{vuid.Get(vuid.CommandDispatch).PipelineBound08606}, f.vuids())
}

func TestIndexBufferCheckedBeforePipeline(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDrawIndexed)

	f := newFixture(t, fixtureOptions{})
	f.beginRendering()

	f.validator.PreCallValidateCmdDrawIndexed(1, 3, 1, 0, 0, 0)
	require.Equal(t, []string{vuids.IndexBinding07312, vuids.PipelineBound08606}, f.vuids())

	f.report.Clear()
	f.bindVertexPipeline()
	f.validator.PreCallValidateCmdDrawIndexed(1, 3, 1, 0, 0, 0)
	require.Equal(t, []string{vuids.IndexBinding07312}, f.vuids())
}

func uniformBinding(binding, count uint32) state.DescriptorSetLayoutBinding {
	return state.DescriptorSetLayoutBinding{
		Binding: binding,
		Type:    state.DescriptorTypeUniformBuffer,
		Count:   count,
		Stages:  core1_0.StageVertex,
	}
}

func vertexStageUsing(set, binding uint32) []state.ShaderStageState {
	return []state.ShaderStageState{{
		Stage:       core1_0.StageVertex,
		Descriptors: []state.DescriptorUse{{Set: set, Binding: binding}},
	}}
}

func TestDescriptorBufferPipelineRejectsDescriptorSets(t *testing.T) {
	f := newFixture(t, fixtureOptions{features: state.Features{DescriptorBuffer: true}})
	f.beginRendering()

	setLayout := f.setLayout(0, uniformBinding(0, 1))
	layout := f.pipelineLayout(nil, setLayout)
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Flags:     state.PipelineCreateDescriptorBuffer,
		Layouts:   []*state.PipelineLayout{layout},
		Stages:    vertexStageUsing(0, 0),
	})

	// The set is never written, but its contents must not be examined
	set := f.descriptorSet(setLayout)
	require.NoError(t, f.cb.BindDescriptorSets(state.BindPointGraphics, layout, 0, []*state.DescriptorSet{set}, nil))

	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuid.Get(vuid.CommandDraw).DescriptorBufferBitSet08115}, f.vuids())
	require.Equal(t, 0, f.validator.Statistics().BindingChecks)
}

func TestDescriptorBufferPipelineAllowsPushDescriptors(t *testing.T) {
	f := newFixture(t, fixtureOptions{features: state.Features{DescriptorBuffer: true}})
	f.beginRendering()

	setLayout := f.setLayout(state.LayoutCreatePushDescriptor, uniformBinding(0, 1))
	layout := f.pipelineLayout(nil, setLayout)
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Flags:     state.PipelineCreateDescriptorBuffer,
		Layouts:   []*state.PipelineLayout{layout},
		Stages:    vertexStageUsing(0, 0),
	})
	require.NoError(t, f.cb.PushDescriptorSet(state.BindPointGraphics, layout, 0))

	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Empty(t, f.report.Messages())
}

func TestDescriptorSetPipelineRejectsDescriptorBuffers(t *testing.T) {
	f := newFixture(t, fixtureOptions{features: state.Features{DescriptorBuffer: true}})
	f.beginRendering()

	setLayout := f.setLayout(0, uniformBinding(0, 1))
	layout := f.pipelineLayout(nil, setLayout)
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Layouts:   []*state.PipelineLayout{layout},
		Stages:    vertexStageUsing(0, 0),
	})
	require.NoError(t, f.cb.SetDescriptorBufferOffsets(state.BindPointGraphics, layout, 0, []uint32{0}, []uint64{256}))

	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuid.Get(vuid.CommandDraw).DescriptorBufferBitNotSet08117}, f.vuids())
	require.Equal(t, 0, f.validator.Statistics().BindingChecks)
}

func TestSlotBoundInBothModesIsNotValidated(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDraw)

	testCases := map[string]struct {
		flags    state.PipelineCreateFlags
		expected string
	}{
		"DescriptorBufferPipeline": {
			flags:    state.PipelineCreateDescriptorBuffer,
			expected: vuids.DescriptorBufferBitSet08115,
		},
		"DescriptorSetPipeline": {
			expected: vuids.DescriptorBufferBitNotSet08117,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{features: state.Features{DescriptorBuffer: true}})
			f.beginRendering()

			setLayout := f.setLayout(0, uniformBinding(0, 1))
			layout := f.pipelineLayout(nil, setLayout)
			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Flags:     testCase.flags,
				Layouts:   []*state.PipelineLayout{layout},
				Stages:    vertexStageUsing(0, 0),
			})

			// The set is never written, so reading its contents would report it
			set := f.descriptorSet(setLayout)
			require.NoError(t, f.cb.BindDescriptorSets(state.BindPointGraphics, layout, 0, []*state.DescriptorSet{set}, nil))
			slot := f.cb.LastBound(state.BindPointGraphics).Slot(0)
			slot.DescriptorBufferBound = true
			slot.DescriptorBufferOffset = 256

			f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			require.Equal(t, []string{testCase.expected}, f.vuids())
			require.Equal(t, 0, f.validator.Statistics().BindingChecks)
		})
	}
}

func TestBoundSetCompatibility(t *testing.T) {
	id := vuid.Get(vuid.CommandDraw).CompatiblePipeline08600

	t.Run("NothingBound", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		f.beginRendering()

		layout := f.pipelineLayout(nil, f.setLayout(0, uniformBinding(0, 1)))
		f.bindPipeline(state.PipelineCreateInfo{
			BindPoint: state.BindPointGraphics,
			Layouts:   []*state.PipelineLayout{layout},
			Stages:    vertexStageUsing(0, 0),
		})

		f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
		require.Equal(t, []string{id}, f.vuids())
	})

	t.Run("IncompatibleLayout", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		f.beginRendering()

		pipelineLayout := f.pipelineLayout(nil, f.setLayout(0, uniformBinding(0, 1)))
		f.bindPipeline(state.PipelineCreateInfo{
			BindPoint: state.BindPointGraphics,
			Layouts:   []*state.PipelineLayout{pipelineLayout},
			Stages:    vertexStageUsing(0, 0),
		})

		otherSetLayout := f.setLayout(0, state.DescriptorSetLayoutBinding{
			Binding: 0,
			Type:    state.DescriptorTypeStorageBuffer,
			Count:   1,
			Stages:  core1_0.StageVertex,
		})
		otherLayout := f.pipelineLayout(nil, otherSetLayout)
		set := f.descriptorSet(otherSetLayout)
		require.NoError(t, f.cb.BindDescriptorSets(state.BindPointGraphics, otherLayout, 0, []*state.DescriptorSet{set}, nil))

		f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
		require.Equal(t, []string{id}, f.vuids())
	})

	t.Run("IdenticallyDefinedLayout", func(t *testing.T) {
		f := newFixture(t, fixtureOptions{})
		f.beginRendering()

		pipelineLayout := f.pipelineLayout(nil, f.setLayout(0, uniformBinding(0, 1)))
		f.bindPipeline(state.PipelineCreateInfo{
			BindPoint: state.BindPointGraphics,
			Layouts:   []*state.PipelineLayout{pipelineLayout},
			Stages:    vertexStageUsing(0, 0),
		})

		setLayout := f.setLayout(0, uniformBinding(0, 1))
		set := f.descriptorSet(setLayout)
		require.NoError(t, set.Update(state.DescriptorWrite{
			Binding:     0,
			Descriptors: []state.Descriptor{{Buffer: f.buffer(64, core1_0.BufferUsageUniformBuffer), Range: 64}},
		}))
		require.NoError(t, f.cb.BindDescriptorSets(state.BindPointGraphics, f.pipelineLayout(nil, setLayout), 0, []*state.DescriptorSet{set}, nil))

		f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
		require.Empty(t, f.report.Messages())
	})
}

func TestPushConstants(t *testing.T) {
	testCases := map[string]struct {
		features state.Features
		push     bool
		expected []string
	}{
		"NeverPushed": {
			expected: []string{vuid.Get(vuid.CommandDraw).PushConstantsSet08602},
		},
		"Pushed": {
			push: true,
		},
		"Maintenance4": {
			features: state.Features{Maintenance4: true},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{features: testCase.features})
			f.beginRendering()

			layout := f.pipelineLayout([]state.PushConstantRange{{Stages: core1_0.StageVertex, Offset: 0, Size: 16}})
			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Layouts:   []*state.PipelineLayout{layout},
				Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex, UsesPushConstants: true}},
			})
			if testCase.push {
				require.NoError(t, f.cb.PushConstants(layout, core1_0.StageVertex, 0, 16))
			}

			f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestDynamicStateMustBeSet(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.beginRendering()
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics: &state.GraphicsPipelineState{
			DynamicStates: []state.DynamicState{state.DynamicStateLineWidth, state.DynamicStateCullMode},
		},
	})

	vuids := vuid.Get(vuid.CommandDraw)
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuids.DynamicLineWidth07833, vuids.DynamicCullMode07840}, f.vuids())

	f.report.Clear()
	f.cb.SetDynamicState(state.DynamicStateLineWidth, state.DynamicStateCullMode)
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Empty(t, f.report.Messages())
}

func TestViewportScissorCounts(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDraw)

	testCases := map[string]struct {
		dynamic  []state.DynamicState
		record   func(cb *state.CommandBuffer)
		expected []string
	}{
		"ViewportsMissing": {
			dynamic:  []state.DynamicState{state.DynamicStateViewport},
			record:   func(cb *state.CommandBuffer) { cb.SetViewport(0, 1) },
			expected: []string{vuids.DynamicViewport07831},
		},
		"ViewportsSet": {
			dynamic: []state.DynamicState{state.DynamicStateViewport},
			record:  func(cb *state.CommandBuffer) { cb.SetViewport(0, 2) },
		},
		"ViewportWithCountMismatch": {
			dynamic:  []state.DynamicState{state.DynamicStateViewportWithCount},
			record:   func(cb *state.CommandBuffer) { cb.SetViewportWithCount(1) },
			expected: []string{vuids.ViewportCount03417},
		},
		"ViewportWithCountMatches": {
			dynamic: []state.DynamicState{state.DynamicStateViewportWithCount},
			record:  func(cb *state.CommandBuffer) { cb.SetViewportWithCount(2) },
		},
		"ScissorWithCountNeverSet": {
			dynamic:  []state.DynamicState{state.DynamicStateScissorWithCount},
			record:   func(cb *state.CommandBuffer) {},
			expected: []string{vuids.ScissorCount03418},
		},
		"BothWithCountMismatch": {
			dynamic: []state.DynamicState{state.DynamicStateViewportWithCount, state.DynamicStateScissorWithCount},
			record: func(cb *state.CommandBuffer) {
				cb.SetViewportWithCount(2)
				cb.SetScissorWithCount(3)
			},
			expected: []string{vuids.ViewportScissorCount03419},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			f.beginRendering()
			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
				Graphics: &state.GraphicsPipelineState{
					ViewportCount: 2,
					ScissorCount:  2,
					DynamicStates: testCase.dynamic,
				},
			})
			testCase.record(f.cb)

			f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestPrimitiveTopologyClass(t *testing.T) {
	testCases := map[string]struct {
		features state.Features
		topology core1_0.PrimitiveTopology
		expected []string
	}{
		"SameClass": {
			topology: core1_0.PrimitiveTopologyTriangleList,
		},
		"DifferentClass": {
			topology: topologyLineList,
			expected: []string{vuid.Get(vuid.CommandDraw).PrimitiveTopologyClass07500},
		},
		"Unrestricted": {
			features: state.Features{DynamicPrimitiveTopologyUnrestricted: true},
			topology: topologyLineList,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{features: testCase.features})
			f.beginRendering()
			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
				Graphics: &state.GraphicsPipelineState{
					Topology:      core1_0.PrimitiveTopologyTriangleList,
					DynamicStates: []state.DynamicState{state.DynamicStatePrimitiveTopology},
				},
			})
			f.cb.SetPrimitiveTopology(testCase.topology)

			f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestVertexBindings(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.beginRendering()
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics:  &state.GraphicsPipelineState{VertexBindings: []uint32{0, 1}},
	})

	vertexBuffer := f.buffer(256, core1_0.BufferUsageVertexBuffer)
	require.NoError(t, f.cb.BindVertexBuffers(0, []*state.Buffer{vertexBuffer}, []uint64{0}))

	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuid.Get(vuid.CommandDraw).VertexBinding04007}, f.vuids())

	f.report.Clear()
	require.NoError(t, f.cb.BindVertexBuffers(1, []*state.Buffer{vertexBuffer}, []uint64{128}))
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Empty(t, f.report.Messages())
}

func TestShaderStageCombinations(t *testing.T) {
	testCases := map[string]struct {
		stages   core1_0.ShaderStageFlags
		kind     vuid.CommandKind
		expected func(v *vuid.DrawDispatchVuids) []string
	}{
		"DrawWithMeshPipeline": {
			stages: state.StageMesh | core1_0.StageFragment,
			kind:   vuid.CommandDraw,
			expected: func(v *vuid.DrawDispatchVuids) []string {
				return []string{v.InvalidMeshShaderStages06481}
			},
		},
		"MeshDrawWithoutMeshStage": {
			stages: core1_0.StageFragment,
			kind:   vuid.CommandDrawMeshTasksEXT,
			expected: func(v *vuid.DrawDispatchVuids) []string {
				return []string{v.MissingMeshShaderStages07080}
			},
		},
		"MeshDrawWithVertexStage": {
			stages: state.StageMesh | core1_0.StageVertex,
			kind:   vuid.CommandDrawMeshTasksEXT,
			expected: func(v *vuid.DrawDispatchVuids) []string {
				return []string{v.MeshShaderStages07073}
			},
		},
		"MeshDrawWithMeshPipeline": {
			stages: state.StageTask | state.StageMesh | core1_0.StageFragment,
			kind:   vuid.CommandDrawMeshTasksEXT,
			expected: func(v *vuid.DrawDispatchVuids) []string {
				return nil
			},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			f.beginRendering()
			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Stages:    []state.ShaderStageState{{Stage: testCase.stages}},
			})

			if testCase.kind == vuid.CommandDraw {
				f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			} else {
				f.validator.PreCallValidateCmdDrawMeshTasksEXT(1, 1, 1, 1)
			}
			require.Equal(t, testCase.expected(vuid.Get(testCase.kind)), f.vuids())
		})
	}
}

func TestMultiviewInstanceLimit(t *testing.T) {
	f := newFixture(t, fixtureOptions{features: state.Features{Multiview: true}})
	require.NoError(t, f.cb.BeginRendering(state.RenderingInfo{ViewMask: 0x3}))
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics:  &state.GraphicsPipelineState{Rendering: &state.RenderingFormats{ViewMask: 0x3}},
	})

	// 50 + 60 exceeds maxMultiviewInstanceIndex (100)
	f.validator.PreCallValidateCmdDraw(1, 3, 60, 0, 50)
	require.Equal(t, []string{vuid.Get(vuid.CommandDraw).MaxMultiviewInstanceIndex02688}, f.vuids())

	// 50 + 50 is exactly the limit
	f.report.Clear()
	f.validator.PreCallValidateCmdDraw(1, 3, 50, 0, 50)
	require.Empty(t, f.report.Messages())

	f.validator.PreCallValidateCmdDraw(1, 3, 51, 0, 50)
	require.Equal(t, []string{vuid.Get(vuid.CommandDraw).MaxMultiviewInstanceIndex02688}, f.vuids())
}

func TestMultiviewInactive(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.beginRendering()
	f.bindVertexPipeline()

	f.validator.PreCallValidateCmdDraw(1, 3, 500, 0, 500)
	require.Empty(t, f.report.Messages())
}

func TestProtectedAttachments(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDraw)

	testCases := map[string]struct {
		protectedImage bool
		protectedCB    bool
		noFault        bool
		expected       []string
	}{
		"ProtectedImageUnprotectedCommandBuffer": {
			protectedImage: true,
			expected:       []string{vuids.UnprotectedCommandBuffer02707},
		},
		"UnprotectedImageProtectedCommandBuffer": {
			protectedCB: true,
			expected:    []string{vuids.ProtectedCommandBuffer02712},
		},
		"BothProtected": {
			protectedImage: true,
			protectedCB:    true,
		},
		"ProtectedNoFault": {
			protectedImage: true,
			noFault:        true,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{
				features:  state.Features{ProtectedMemory: true},
				noFault:   testCase.noFault,
				protected: testCase.protectedCB,
			})

			var flags state.ResourceCreateFlags
			if testCase.protectedImage {
				flags = state.ResourceCreateProtected
			}
			view := f.imageView(flags, core1_0.FormatR8G8B8A8SRGB, core1_0.ImageViewType2D)
			require.NoError(t, f.cb.BeginRendering(state.RenderingInfo{ColorAttachments: []*state.ImageView{view}}))

			f.bindPipeline(state.PipelineCreateInfo{
				BindPoint: state.BindPointGraphics,
				Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
				Graphics: &state.GraphicsPipelineState{
					Rendering: &state.RenderingFormats{ColorFormats: []core1_0.Format{core1_0.FormatR8G8B8A8SRGB}},
				},
			})

			f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
			require.Equal(t, testCase.expected, f.vuids())
		})
	}
}

func TestDynamicRenderingFormats(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDraw)

	f := newFixture(t, fixtureOptions{})
	view := f.imageView(0, core1_0.FormatR8G8B8A8SRGB, core1_0.ImageViewType2D)
	require.NoError(t, f.cb.BeginRendering(state.RenderingInfo{ColorAttachments: []*state.ImageView{view}}))

	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics: &state.GraphicsPipelineState{
			Rendering: &state.RenderingFormats{ColorFormats: []core1_0.Format{core1_0.FormatB8G8R8A8SRGB}},
		},
	})
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuids.DynamicRenderingColorFormats08910}, f.vuids())

	f.report.Clear()
	f.bindVertexPipeline()
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuids.DynamicRenderingColorCount06179}, f.vuids())
}

func TestRenderPassCompatibility(t *testing.T) {
	vuids := vuid.Get(vuid.CommandDraw)

	f := newFixture(t, fixtureOptions{})
	renderPass, err := f.device.CreateRenderPass(f.handle(), state.RenderPassCreateInfo{
		Subpasses: []state.SubpassDescription{{}},
	})
	require.NoError(t, err)
	framebuffer, err := f.device.CreateFramebuffer(f.handle(), state.FramebufferCreateInfo{RenderPass: renderPass})
	require.NoError(t, err)
	require.NoError(t, f.cb.BeginRenderPass(renderPass, framebuffer))

	// A pipeline created for dynamic rendering cannot be used in a render pass
	f.bindVertexPipeline()
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuids.RenderPassCompatible02684}, f.vuids())

	f.report.Clear()
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics:  &state.GraphicsPipelineState{RenderPass: renderPass},
	})
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Empty(t, f.report.Messages())

	f.report.Clear()
	f.bindPipeline(state.PipelineCreateInfo{
		BindPoint: state.BindPointGraphics,
		Stages:    []state.ShaderStageState{{Stage: core1_0.StageVertex}},
		Graphics:  &state.GraphicsPipelineState{RenderPass: renderPass, Subpass: 1},
	})
	f.validator.PreCallValidateCmdDraw(1, 3, 1, 0, 0)
	require.Equal(t, []string{vuids.Subpass02685}, f.vuids())
}
