package state

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PipelineCreateFlags are the pipeline creation flags validation reads
type PipelineCreateFlags int32

var pipelineCreateMapping = common.NewFlagStringMapping[PipelineCreateFlags]()

func (f PipelineCreateFlags) Register(str string) {
	pipelineCreateMapping.Register(f, str)
}
func (f PipelineCreateFlags) String() string {
	return pipelineCreateMapping.FlagsToString(f)
}

const (
	// PipelineCreateDescriptorBuffer puts the pipeline in descriptor buffer mode: its resources are
	// read from descriptor buffers instead of bound descriptor sets
	PipelineCreateDescriptorBuffer PipelineCreateFlags = 1 << iota
	PipelineCreateLibrary
)

func init() {
	PipelineCreateDescriptorBuffer.Register("DescriptorBuffer")
	PipelineCreateLibrary.Register("Library")
}

// DescriptorRequirement is what a shader's declaration of a binding demands of the descriptors bound
// to it. Requirements are compared by value.
type DescriptorRequirement struct {
	// RequiresViewType is set when the shader declaration fixes the image view type, in ViewType
	RequiresViewType bool
	ViewType         core1_0.ImageViewType
}

// BindingRequirements maps a binding number to the requirement the pipeline places on it
type BindingRequirements map[uint32]DescriptorRequirement

// IsSubsetOf reports whether every requirement in r is present, with an equal value, in other
func (r BindingRequirements) IsSubsetOf(other BindingRequirements) bool {
	for binding, requirement := range r {
		existing, ok := other[binding]
		if !ok || existing != requirement {
			return false
		}
	}
	return true
}

// Difference returns the requirements in r that are not present, with an equal value, in other
func (r BindingRequirements) Difference(other BindingRequirements) BindingRequirements {
	delta := make(BindingRequirements)
	for binding, requirement := range r {
		existing, ok := other[binding]
		if !ok || existing != requirement {
			delta[binding] = requirement
		}
	}
	return delta
}

// SortedBindings returns the binding numbers of r in ascending order
func (r BindingRequirements) SortedBindings() []uint32 {
	bindings := maps.Keys(r)
	slices.Sort(bindings)
	return bindings
}

// DescriptorUse is a single binding statically referenced by a shader stage
type DescriptorUse struct {
	Set         uint32
	Binding     uint32
	Requirement DescriptorRequirement
}

type ShaderStageState struct {
	Stage             core1_0.ShaderStageFlags
	UsesPushConstants bool
	Descriptors       []DescriptorUse
}

// RenderingFormats are the attachment formats a pipeline was built against for dynamic rendering
type RenderingFormats struct {
	ViewMask      uint32
	ColorFormats  []core1_0.Format
	DepthFormat   core1_0.Format
	StencilFormat core1_0.Format
}

// GraphicsPipelineState holds fixed-function state baked into a graphics pipeline
type GraphicsPipelineState struct {
	Topology             core1_0.PrimitiveTopology
	ViewportCount        uint32
	ScissorCount         uint32
	RasterizationSamples core1_0.SampleCountFlags
	// VertexBindings lists the vertex input binding numbers the pipeline reads
	VertexBindings []uint32

	// RenderPass is nil for pipelines built for dynamic rendering
	RenderPass *RenderPass
	Subpass    uint32
	Rendering  *RenderingFormats

	DynamicStates []DynamicState
}

type PipelineCreateInfo struct {
	BindPoint BindPoint
	Flags     PipelineCreateFlags
	// Layouts usually holds one layout. Pipelines linked from several libraries hold the layout of
	// each library, and the pipeline uses their union.
	Layouts  []*PipelineLayout
	Stages   []ShaderStageState
	Graphics *GraphicsPipelineState
}

type Pipeline struct {
	objectState
	bindPoint BindPoint
	flags     PipelineCreateFlags
	layouts   []*PipelineLayout
	layout    *PipelineLayout
	stages    []ShaderStageState

	activeShaders      core1_0.ShaderStageFlags
	pushConstantStages core1_0.ShaderStageFlags
	activeSlots        map[uint32]BindingRequirements
	maxActiveSlot      int
	dynamicStates      DynamicStateSet
	graphics           GraphicsPipelineState
}

func buildPipeline(pipeline *Pipeline, info PipelineCreateInfo, mergeLayouts func([]*PipelineLayout) *PipelineLayout) error {
	if !info.BindPoint.IsValid() {
		return errors.Newf("invalid bind point %d", info.BindPoint)
	}
	if len(info.Layouts) == 0 {
		return errors.New("a pipeline requires at least one layout")
	}
	for i, layout := range info.Layouts {
		if layout == nil {
			return errors.Newf("layout %d is nil", i)
		}
	}

	pipeline.bindPoint = info.BindPoint
	pipeline.flags = info.Flags
	pipeline.layouts = slices.Clone(info.Layouts)
	if len(info.Layouts) == 1 {
		pipeline.layout = info.Layouts[0]
	} else {
		pipeline.layout = mergeLayouts(info.Layouts)
	}

	pipeline.stages = slices.Clone(info.Stages)
	pipeline.activeSlots = make(map[uint32]BindingRequirements)
	pipeline.maxActiveSlot = -1
	for _, stage := range info.Stages {
		pipeline.activeShaders |= stage.Stage
		if stage.UsesPushConstants {
			pipeline.pushConstantStages |= stage.Stage
		}

		for _, use := range stage.Descriptors {
			slot, ok := pipeline.activeSlots[use.Set]
			if !ok {
				slot = make(BindingRequirements)
				pipeline.activeSlots[use.Set] = slot
			}
			slot[use.Binding] = use.Requirement

			if int(use.Set) > pipeline.maxActiveSlot {
				pipeline.maxActiveSlot = int(use.Set)
			}
		}
	}

	if info.Graphics != nil {
		if info.BindPoint != BindPointGraphics {
			return errors.Newf("graphics state was supplied for a pipeline bound at %s", info.BindPoint)
		}
		pipeline.graphics = *info.Graphics
		pipeline.graphics.VertexBindings = slices.Clone(info.Graphics.VertexBindings)
		pipeline.dynamicStates = NewDynamicStateSet(info.Graphics.DynamicStates...)
	}

	return nil
}

func (p *Pipeline) BindPoint() BindPoint {
	return p.bindPoint
}

func (p *Pipeline) Flags() PipelineCreateFlags {
	return p.flags
}

func (p *Pipeline) IsDescriptorBufferMode() bool {
	return p.flags&PipelineCreateDescriptorBuffer != 0
}

// Layout returns the layout the pipeline's shaders are validated against. For pipelines linked from
// libraries this is the union of the library layouts.
func (p *Pipeline) Layout() *PipelineLayout {
	return p.layout
}

func (p *Pipeline) Layouts() []*PipelineLayout {
	return p.layouts
}

func (p *Pipeline) Stages() []ShaderStageState {
	return p.stages
}

func (p *Pipeline) ActiveShaders() core1_0.ShaderStageFlags {
	return p.activeShaders
}

// HasShaderStages reports whether any stage in mask is active in the pipeline
func (p *Pipeline) HasShaderStages(mask core1_0.ShaderStageFlags) bool {
	return p.activeShaders&mask != 0
}

// PushConstantStages is the set of active stages that statically use push constants
func (p *Pipeline) PushConstantStages() core1_0.ShaderStageFlags {
	return p.pushConstantStages
}

// ActiveSlots returns the requirements of every set statically referenced by the pipeline's shaders.
// The map must not be modified.
func (p *Pipeline) ActiveSlots() map[uint32]BindingRequirements {
	return p.activeSlots
}

// ActiveSlotIndices returns the referenced sets in ascending order
func (p *Pipeline) ActiveSlotIndices() []uint32 {
	sets := maps.Keys(p.activeSlots)
	slices.Sort(sets)
	return sets
}

// MaxActiveSlot is the highest set index referenced by the pipeline's shaders, or -1 if none is
func (p *Pipeline) MaxActiveSlot() int {
	return p.maxActiveSlot
}

func (p *Pipeline) DynamicStates() DynamicStateSet {
	return p.dynamicStates
}

func (p *Pipeline) IsDynamic(state DynamicState) bool {
	return p.dynamicStates.Has(state)
}

// Graphics returns the fixed-function state of a graphics pipeline
func (p *Pipeline) Graphics() *GraphicsPipelineState {
	return &p.graphics
}
