package vuid

import "sync"

// Undefined is the VUID of a rule that does not apply to a command. It is safe to format in a diagnostic.
const Undefined = "VUID_Undefined"

// DrawDispatchVuids names, for one command, the VUID attached to each class of draw-time violation.
// Fields that do not apply to the command hold Undefined.
type DrawDispatchVuids struct {
	CommandBufferRecording string
	RenderPassScope        string

	PipelineBound08606             string
	DescriptorBufferBitSet08115    string
	DescriptorBufferBitNotSet08117 string
	CompatiblePipeline08600        string
	DescriptorValid08114           string
	ImageViewType07752             string
	PushConstantsSet08602          string
	ProtectedCommandBuffer02712    string
	UnprotectedCommandBuffer02707  string

	DynamicViewport07831                string
	DynamicScissor07832                 string
	DynamicLineWidth07833               string
	DynamicDepthBias07834               string
	DynamicBlendConstants07835          string
	DynamicDepthBounds07836             string
	DynamicStencilCompareMask07837      string
	DynamicStencilWriteMask07838        string
	DynamicStencilReference07839        string
	DynamicCullMode07840                string
	DynamicFrontFace07841               string
	DynamicPrimitiveTopology07842       string
	DynamicDepthTestEnable07843         string
	DynamicDepthWriteEnable07844        string
	DynamicDepthCompareOp07845          string
	DynamicDepthBoundsTestEnable07846   string
	DynamicStencilTestEnable07847       string
	DynamicStencilOp07848               string
	DynamicPatchControlPoints04875      string
	DynamicRasterizerDiscardEnable04876 string
	DynamicDepthBiasEnable04877         string
	DynamicLogicOp04878                 string
	DynamicPrimitiveRestartEnable04879  string
	DynamicVertexInput04914             string
	DynamicColorWriteEnable07749        string
	DynamicPolygonMode07621             string
	DynamicRasterizationSamples07622    string
	DynamicColorBlendEnable07476        string
	DynamicColorWriteMask07478          string
	PrimitiveTopologyClass07500         string
	ViewportCount03417                  string
	ScissorCount03418                   string
	ViewportScissorCount03419           string
	VertexBinding04007                  string

	RenderPassCompatible02684          string
	Subpass02685                       string
	SampleCount07284                   string
	DynamicRenderingViewMask06178      string
	DynamicRenderingColorCount06179    string
	DynamicRenderingColorFormats08910  string
	DynamicRenderingDepthFormat08914   string
	DynamicRenderingStencilFormat08917 string
	DynamicRenderingRenderPass06198    string
	DynamicRenderingSampleCount07285   string

	InvalidMeshShaderStages06481 string
	MissingMeshShaderStages07080 string
	MeshShaderStages07073        string

	MaxMultiviewInstanceIndex02688 string
	IndexBinding07312              string
	IndexBufferSize08798           string

	IndirectContiguousMemory02708 string
	IndirectBufferBit02709        string
	IndirectOffset02710           string
	IndirectProtectedCB02711      string
	IndirectStride                string
	IndirectSize                  string
	IndirectSingleSize            string
	MultiDrawIndirect02718        string
	MaxDrawIndirectCount02719     string

	IndirectCountContiguousMemory02714 string
	IndirectCountBufferBit02715        string
	IndirectCountOffsetAlign02716      string
	IndirectCountOffset04129           string
	DrawIndirectCountFeature04445      string

	GroupCountX string
	GroupCountY string
	GroupCountZ string
	BaseGroupX  string
	BaseGroupY  string
	BaseGroupZ  string

	RayDispatchInvocationCount string
	TraceRaysIndirectFeature   string
	IndirectDeviceAddressAlign string

	MeshTaskCount02119        string
	MeshGroupCountTotal       string
	MeshGroupCountTotalNoTask string

	MultiDrawFeature04933  string
	MaxMultiDrawCount04934 string
	MultiDrawStride        string

	TransformFeedbackFeature02287 string
	VertexStride02289             string
	CounterBufferUsage02290       string
	CounterBufferMemory04567      string
	CounterBufferOffset04568      string
}

type rule struct {
	field     func(v *DrawDispatchVuids) *string
	suffix    string
	classes   CommandClass
	overrides map[CommandKind]string
}

func (r rule) suffixFor(kind CommandKind) (string, bool) {
	if s, ok := r.overrides[kind]; ok {
		return s, true
	}
	if r.classes != 0 && kind.Is(r.classes) {
		return r.suffix, r.suffix != ""
	}
	return "", false
}

var rules = []rule{
	{field: func(v *DrawDispatchVuids) *string { return &v.CommandBufferRecording }, suffix: "commandBuffer-recording", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.RenderPassScope }, suffix: "renderpass", classes: ClassAll},

	{field: func(v *DrawDispatchVuids) *string { return &v.PipelineBound08606 }, suffix: "None-08606", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.DescriptorBufferBitSet08115 }, suffix: "None-08115", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.DescriptorBufferBitNotSet08117 }, suffix: "None-08117", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.CompatiblePipeline08600 }, suffix: "None-08600", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.DescriptorValid08114 }, suffix: "None-08114", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.ImageViewType07752 }, suffix: "viewType-07752", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.PushConstantsSet08602 }, suffix: "maintenance4-08602", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.ProtectedCommandBuffer02712 }, suffix: "commandBuffer-02712", classes: ClassAll},
	{field: func(v *DrawDispatchVuids) *string { return &v.UnprotectedCommandBuffer02707 }, suffix: "commandBuffer-02707", classes: ClassAll},

	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicViewport07831 }, suffix: "None-07831", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicScissor07832 }, suffix: "None-07832", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicLineWidth07833 }, suffix: "None-07833", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthBias07834 }, suffix: "None-07834", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicBlendConstants07835 }, suffix: "None-07835", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthBounds07836 }, suffix: "None-07836", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicStencilCompareMask07837 }, suffix: "None-07837", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicStencilWriteMask07838 }, suffix: "None-07838", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicStencilReference07839 }, suffix: "None-07839", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicCullMode07840 }, suffix: "None-07840", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicFrontFace07841 }, suffix: "None-07841", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicPrimitiveTopology07842 }, suffix: "None-07842", classes: ClassDraw},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthTestEnable07843 }, suffix: "None-07843", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthWriteEnable07844 }, suffix: "None-07844", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthCompareOp07845 }, suffix: "None-07845", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthBoundsTestEnable07846 }, suffix: "None-07846", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicStencilTestEnable07847 }, suffix: "None-07847", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicStencilOp07848 }, suffix: "None-07848", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicPatchControlPoints04875 }, suffix: "None-04875", classes: ClassDraw},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRasterizerDiscardEnable04876 }, suffix: "None-04876", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicDepthBiasEnable04877 }, suffix: "None-04877", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicLogicOp04878 }, suffix: "logicOp-04878", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicPrimitiveRestartEnable04879 }, suffix: "None-04879", classes: ClassDraw},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicVertexInput04914 }, suffix: "None-04914", classes: ClassDraw},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicColorWriteEnable07749 }, suffix: "None-07749", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicPolygonMode07621 }, suffix: "None-07621", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRasterizationSamples07622 }, suffix: "None-07622", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicColorBlendEnable07476 }, suffix: "None-07476", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicColorWriteMask07478 }, suffix: "None-07478", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.PrimitiveTopologyClass07500 }, suffix: "dynamicPrimitiveTopologyUnrestricted-07500", classes: ClassDraw},
	{field: func(v *DrawDispatchVuids) *string { return &v.ViewportCount03417 }, suffix: "viewportCount-03417", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.ScissorCount03418 }, suffix: "scissorCount-03418", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.ViewportScissorCount03419 }, suffix: "viewportCount-03419", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.VertexBinding04007 }, suffix: "None-04007", classes: ClassDraw},

	{field: func(v *DrawDispatchVuids) *string { return &v.RenderPassCompatible02684 }, suffix: "renderPass-02684", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.Subpass02685 }, suffix: "subpass-02685", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.SampleCount07284 }, suffix: "multisampledRenderToSingleSampled-07284", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingViewMask06178 }, suffix: "viewMask-06178", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingColorCount06179 }, suffix: "colorAttachmentCount-06179", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingColorFormats08910 }, suffix: "dynamicRenderingUnusedAttachments-08910", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingDepthFormat08914 }, suffix: "dynamicRenderingUnusedAttachments-08914", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingStencilFormat08917 }, suffix: "dynamicRenderingUnusedAttachments-08917", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingRenderPass06198 }, suffix: "renderPass-06198", classes: ClassGraphics},
	{field: func(v *DrawDispatchVuids) *string { return &v.DynamicRenderingSampleCount07285 }, suffix: "multisampledRenderToSingleSampled-07285", classes: ClassGraphics},

	{field: func(v *DrawDispatchVuids) *string { return &v.InvalidMeshShaderStages06481 }, suffix: "stage-06481", classes: ClassDraw},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.MissingMeshShaderStages07080 },
		overrides: map[CommandKind]string{
			CommandDrawMeshTasksNV:               "MeshNV-07080",
			CommandDrawMeshTasksIndirectNV:       "MeshNV-07081",
			CommandDrawMeshTasksIndirectCountNV:  "MeshNV-07082",
			CommandDrawMeshTasksEXT:              "MeshEXT-07087",
			CommandDrawMeshTasksIndirectEXT:      "MeshEXT-07091",
			CommandDrawMeshTasksIndirectCountEXT: "MeshEXT-07100",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.MeshShaderStages07073 },
		overrides: map[CommandKind]string{
			CommandDrawMeshTasksNV:               "stage-07073",
			CommandDrawMeshTasksIndirectNV:       "stage-07074",
			CommandDrawMeshTasksIndirectCountNV:  "stage-07075",
			CommandDrawMeshTasksEXT:              "stage-07088",
			CommandDrawMeshTasksIndirectEXT:      "stage-07092",
			CommandDrawMeshTasksIndirectCountEXT: "stage-07101",
		},
	},

	{field: func(v *DrawDispatchVuids) *string { return &v.MaxMultiviewInstanceIndex02688 }, suffix: "maxMultiviewInstanceIndex-02688", classes: ClassInstanced},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndexBinding07312 }, suffix: "None-07312", classes: ClassIndexed},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.IndexBufferSize08798 },
		overrides: map[CommandKind]string{
			CommandDrawIndexed:         "robustBufferAccess2-08798",
			CommandDrawMultiIndexedEXT: "robustBufferAccess2-08798",
		},
	},

	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectContiguousMemory02708 }, suffix: "buffer-02708", classes: ClassIndirect},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectBufferBit02709 }, suffix: "buffer-02709", classes: ClassIndirect},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectOffset02710 }, suffix: "offset-02710", classes: ClassIndirect},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectProtectedCB02711 }, suffix: "commandBuffer-02711", classes: ClassIndirect},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.IndirectStride },
		overrides: map[CommandKind]string{
			CommandDrawIndirect:                  "drawCount-00476",
			CommandDrawIndexedIndirect:           "drawCount-00528",
			CommandDrawIndirectCount:             "stride-03110",
			CommandDrawIndexedIndirectCount:      "stride-03142",
			CommandDrawMeshTasksIndirectNV:       "drawCount-02146",
			CommandDrawMeshTasksIndirectCountNV:  "stride-02182",
			CommandDrawMeshTasksIndirectEXT:      "drawCount-07088",
			CommandDrawMeshTasksIndirectCountEXT: "stride-07096",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.IndirectSize },
		overrides: map[CommandKind]string{
			CommandDrawIndirect:                  "drawCount-00488",
			CommandDrawIndexedIndirect:           "drawCount-00540",
			CommandDrawIndirectCount:             "countBuffer-03122",
			CommandDrawIndexedIndirectCount:      "countBuffer-03154",
			CommandDrawMeshTasksIndirectNV:       "drawCount-02157",
			CommandDrawMeshTasksIndirectCountNV:  "countBuffer-02192",
			CommandDrawMeshTasksIndirectEXT:      "drawCount-07090",
			CommandDrawMeshTasksIndirectCountEXT: "countBuffer-07099",
			CommandDispatchIndirect:              "offset-00407",
			CommandDrawClusterIndirectHUAWEI:     "offset-07918",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.IndirectSingleSize },
		overrides: map[CommandKind]string{
			CommandDrawIndirect:             "drawCount-00487",
			CommandDrawIndexedIndirect:      "drawCount-00539",
			CommandDrawMeshTasksIndirectNV:  "drawCount-02156",
			CommandDrawMeshTasksIndirectEXT: "drawCount-07089",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.MultiDrawIndirect02718 },
		overrides: map[CommandKind]string{
			CommandDrawIndirect:             "drawCount-02718",
			CommandDrawIndexedIndirect:      "drawCount-02718",
			CommandDrawMeshTasksIndirectNV:  "drawCount-02718",
			CommandDrawMeshTasksIndirectEXT: "drawCount-02718",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.MaxDrawIndirectCount02719 },
		overrides: map[CommandKind]string{
			CommandDrawIndirect:             "drawCount-02719",
			CommandDrawIndexedIndirect:      "drawCount-02719",
			CommandDrawMeshTasksIndirectNV:  "drawCount-02719",
			CommandDrawMeshTasksIndirectEXT: "drawCount-02719",
		},
	},

	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectCountContiguousMemory02714 }, suffix: "countBuffer-02714", classes: ClassIndirectCount},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectCountBufferBit02715 }, suffix: "countBuffer-02715", classes: ClassIndirectCount},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectCountOffsetAlign02716 }, suffix: "countBufferOffset-02716", classes: ClassIndirectCount},
	{field: func(v *DrawDispatchVuids) *string { return &v.IndirectCountOffset04129 }, suffix: "countBufferOffset-04129", classes: ClassIndirectCount},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.DrawIndirectCountFeature04445 },
		overrides: map[CommandKind]string{
			CommandDrawIndirectCount:        "None-04445",
			CommandDrawIndexedIndirectCount: "None-04445",
		},
	},

	{
		field: func(v *DrawDispatchVuids) *string { return &v.GroupCountX },
		overrides: map[CommandKind]string{
			CommandDispatch:          "groupCountX-00386",
			CommandDispatchBase:      "groupCountX-00424",
			CommandDrawClusterHUAWEI: "groupCountX-07815",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.GroupCountY },
		overrides: map[CommandKind]string{
			CommandDispatch:          "groupCountY-00387",
			CommandDispatchBase:      "groupCountY-00425",
			CommandDrawClusterHUAWEI: "groupCountY-07816",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.GroupCountZ },
		overrides: map[CommandKind]string{
			CommandDispatch:          "groupCountZ-00388",
			CommandDispatchBase:      "groupCountZ-00426",
			CommandDrawClusterHUAWEI: "groupCountZ-07817",
		},
	},
	{field: func(v *DrawDispatchVuids) *string { return &v.BaseGroupX }, overrides: map[CommandKind]string{CommandDispatchBase: "baseGroupX-00421"}},
	{field: func(v *DrawDispatchVuids) *string { return &v.BaseGroupY }, overrides: map[CommandKind]string{CommandDispatchBase: "baseGroupY-00422"}},
	{field: func(v *DrawDispatchVuids) *string { return &v.BaseGroupZ }, overrides: map[CommandKind]string{CommandDispatchBase: "baseGroupZ-00423"}},

	{
		field: func(v *DrawDispatchVuids) *string { return &v.RayDispatchInvocationCount },
		overrides: map[CommandKind]string{
			CommandTraceRaysNV:  "width-02469",
			CommandTraceRaysKHR: "width-03641",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.TraceRaysIndirectFeature },
		overrides: map[CommandKind]string{
			CommandTraceRaysIndirectKHR:  "rayTracingPipelineTraceRaysIndirect-03637",
			CommandTraceRaysIndirect2KHR: "rayTracingPipelineTraceRaysIndirect2-03637",
		},
	},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.IndirectDeviceAddressAlign },
		overrides: map[CommandKind]string{
			CommandTraceRaysIndirectKHR:  "indirectDeviceAddress-03634",
			CommandTraceRaysIndirect2KHR: "indirectDeviceAddress-03634",
		},
	},

	{field: func(v *DrawDispatchVuids) *string { return &v.MeshTaskCount02119 }, overrides: map[CommandKind]string{CommandDrawMeshTasksNV: "taskCount-02119"}},
	{field: func(v *DrawDispatchVuids) *string { return &v.MeshGroupCountTotal }, overrides: map[CommandKind]string{CommandDrawMeshTasksEXT: "TaskEXT-07325"}},
	{field: func(v *DrawDispatchVuids) *string { return &v.MeshGroupCountTotalNoTask }, overrides: map[CommandKind]string{CommandDrawMeshTasksEXT: "MeshEXT-07329"}},

	{field: func(v *DrawDispatchVuids) *string { return &v.MultiDrawFeature04933 }, suffix: "None-04933", classes: ClassMulti},
	{field: func(v *DrawDispatchVuids) *string { return &v.MaxMultiDrawCount04934 }, suffix: "drawCount-04934", classes: ClassMulti},
	{
		field: func(v *DrawDispatchVuids) *string { return &v.MultiDrawStride },
		overrides: map[CommandKind]string{
			CommandDrawMultiEXT:        "drawCount-09628",
			CommandDrawMultiIndexedEXT: "drawCount-09629",
		},
	},

	{field: func(v *DrawDispatchVuids) *string { return &v.TransformFeedbackFeature02287 }, suffix: "transformFeedback-02287", classes: ClassTransformFeedback},
	{field: func(v *DrawDispatchVuids) *string { return &v.VertexStride02289 }, suffix: "vertexStride-02289", classes: ClassTransformFeedback},
	{field: func(v *DrawDispatchVuids) *string { return &v.CounterBufferUsage02290 }, suffix: "counterBuffer-02290", classes: ClassTransformFeedback},
	{field: func(v *DrawDispatchVuids) *string { return &v.CounterBufferMemory04567 }, suffix: "counterBuffer-04567", classes: ClassTransformFeedback},
	{field: func(v *DrawDispatchVuids) *string { return &v.CounterBufferOffset04568 }, suffix: "counterBufferOffset-04568", classes: ClassTransformFeedback},
}

var (
	tableOnce sync.Once
	table     [commandKindCount]*DrawDispatchVuids
)

func undefinedVuids() *DrawDispatchVuids {
	v := &DrawDispatchVuids{}
	for _, r := range rules {
		*r.field(v) = Undefined
	}
	return v
}

func buildVuids(kind CommandKind) *DrawDispatchVuids {
	v := undefinedVuids()
	if !kind.IsValid() {
		return v
	}

	prefix := "VUID-" + kind.Function() + "-"
	for _, r := range rules {
		suffix, ok := r.suffixFor(kind)
		if ok {
			*r.field(v) = prefix + suffix
		}
	}
	return v
}

func buildTable() {
	for kind := CommandNone; kind < commandKindCount; kind++ {
		table[kind] = buildVuids(kind)
	}
}

// Get returns the VUIDs for a command. The returned record is shared and must not be modified. Kinds
// outside the enumeration map to the record for CommandNone, whose every field is Undefined.
func Get(kind CommandKind) *DrawDispatchVuids {
	tableOnce.Do(buildTable)

	if !kind.IsValid() {
		return table[CommandNone]
	}
	return table[kind]
}
