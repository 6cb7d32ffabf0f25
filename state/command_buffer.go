package state

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

type IndexBufferBinding struct {
	Buffer    *Buffer
	Offset    uint64
	Size      uint64
	IndexType core1_0.IndexType
	Bound     bool
}

type VertexBufferBinding struct {
	Buffer *Buffer
	Offset uint64
	Size   uint64
}

// ActiveAttachment is an image view used by the current subpass or rendering scope, with the usage it
// is declared with there
type ActiveAttachment struct {
	View  *ImageView
	Usage core1_0.ImageUsageFlags
}

// RenderingInfo is the state of an active dynamic rendering scope
type RenderingInfo struct {
	ViewMask          uint32
	ColorAttachments  []*ImageView
	DepthAttachment   *ImageView
	StencilAttachment *ImageView
}

// PushConstantChunk is a single vkCmdPushConstants write
type PushConstantChunk struct {
	Stages core1_0.ShaderStageFlags
	Offset uint32
	Size   uint32
}

// DynamicStateValues holds the last values set for dynamic states whose values are checked at draw time
type DynamicStateValues struct {
	// ViewportMask has bit i set when viewport i has been set with vkCmdSetViewport
	ViewportMask uint32
	ScissorMask  uint32

	ViewportWithCount uint32
	ScissorWithCount  uint32

	PrimitiveTopology    core1_0.PrimitiveTopology
	RasterizationSamples core1_0.SampleCountFlags
}

// CommandBuffer is the recording state of a single command buffer. Command buffers are externally
// synchronized, so it carries no lock of its own.
type CommandBuffer struct {
	objectState
	device    *Device
	logger    *slog.Logger
	protected bool

	phase RecordingPhase

	activeRenderPass  *RenderPass
	activeSubpass     uint32
	activeFramebuffer *Framebuffer
	rendering         *RenderingInfo
	activeAttachments []ActiveAttachment

	lastBound     [bindPointCount]LastBound
	indexBuffer   IndexBufferBinding
	vertexBuffers map[uint32]VertexBufferBinding

	pushConstantRangesID    uint64
	pushConstantChunks      []PushConstantChunk
	pushConstantStages      core1_0.ShaderStageFlags
	pushConstantsEverPushed bool

	dynamicStatesSet DynamicStateSet
	dynamicValues    DynamicStateValues

	imageLayoutChangeCount uint64
	drawCount              int
}

func newCommandBuffer(device *Device, info CommandBufferCreateInfo) *CommandBuffer {
	commandBuffer := &CommandBuffer{
		device:    device,
		logger:    device.logger,
		protected: info.Protected,
	}
	commandBuffer.resetRecording()
	return commandBuffer
}

func (c *CommandBuffer) resetRecording() {
	c.activeRenderPass = nil
	c.activeSubpass = 0
	c.activeFramebuffer = nil
	c.rendering = nil
	c.activeAttachments = nil

	for i := range c.lastBound {
		c.lastBound[i].reset()
	}
	c.indexBuffer = IndexBufferBinding{}
	c.vertexBuffers = make(map[uint32]VertexBufferBinding)

	c.pushConstantRangesID = 0
	c.pushConstantChunks = nil
	c.pushConstantStages = 0
	c.pushConstantsEverPushed = false

	c.dynamicStatesSet = 0
	c.dynamicValues = DynamicStateValues{}

	c.imageLayoutChangeCount = 0
	c.drawCount = 0
}

func (c *CommandBuffer) Device() *Device {
	return c.device
}

func (c *CommandBuffer) IsProtected() bool {
	return c.protected
}

func (c *CommandBuffer) Phase() RecordingPhase {
	return c.phase
}

func (c *CommandBuffer) ActiveRenderPass() *RenderPass {
	return c.activeRenderPass
}

func (c *CommandBuffer) ActiveSubpass() uint32 {
	return c.activeSubpass
}

func (c *CommandBuffer) ActiveFramebuffer() *Framebuffer {
	return c.activeFramebuffer
}

// Rendering returns the active dynamic rendering scope, or nil outside of one
func (c *CommandBuffer) Rendering() *RenderingInfo {
	return c.rendering
}

// InRenderPassScope reports whether a legacy render pass or a dynamic rendering scope is active
func (c *CommandBuffer) InRenderPassScope() bool {
	return c.activeRenderPass != nil || c.rendering != nil
}

// IsMultiviewActive reports whether the active render pass or rendering scope renders to several views
func (c *CommandBuffer) IsMultiviewActive() bool {
	if c.activeRenderPass != nil {
		return c.activeRenderPass.IsMultiview()
	}
	return c.rendering != nil && c.rendering.ViewMask != 0
}

func (c *CommandBuffer) ActiveAttachments() []ActiveAttachment {
	return c.activeAttachments
}

// LastBound returns the binding state of a bind point, or nil for an invalid bind point
func (c *CommandBuffer) LastBound(bindPoint BindPoint) *LastBound {
	if !bindPoint.IsValid() {
		return nil
	}
	return &c.lastBound[bindPoint]
}

func (c *CommandBuffer) IndexBuffer() IndexBufferBinding {
	return c.indexBuffer
}

func (c *CommandBuffer) VertexBuffer(binding uint32) (VertexBufferBinding, bool) {
	vertexBuffer, ok := c.vertexBuffers[binding]
	return vertexBuffer, ok
}

func (c *CommandBuffer) PushConstantRangesID() uint64 {
	return c.pushConstantRangesID
}

func (c *CommandBuffer) PushConstantChunks() []PushConstantChunk {
	return c.pushConstantChunks
}

// PushConstantStages is the set of stages written by push constants since the push constant layout
// last changed
func (c *CommandBuffer) PushConstantStages() core1_0.ShaderStageFlags {
	return c.pushConstantStages
}

// HasPushedConstants reports whether vkCmdPushConstants has been recorded at any point since the
// command buffer began recording
func (c *CommandBuffer) HasPushedConstants() bool {
	return c.pushConstantsEverPushed
}

func (c *CommandBuffer) IsDynamicStateSet(state DynamicState) bool {
	return c.dynamicStatesSet.Has(state)
}

func (c *CommandBuffer) DynamicStatesSet() DynamicStateSet {
	return c.dynamicStatesSet
}

func (c *CommandBuffer) DynamicValues() *DynamicStateValues {
	return &c.dynamicValues
}

// ImageLayoutChangeCount increases each time an image layout transition is recorded
func (c *CommandBuffer) ImageLayoutChangeCount() uint64 {
	return c.imageLayoutChangeCount
}

func (c *CommandBuffer) DrawCount() int {
	return c.drawCount
}

func (c *CommandBuffer) Begin() {
	c.logger.Debug("CommandBuffer::Begin", slog.String("commandBuffer", c.Object().String()))

	c.resetRecording()
	c.phase = PhaseRecording
}

func (c *CommandBuffer) End() error {
	if c.phase != PhaseRecording {
		return errors.Newf("%s is in the %s state and cannot be ended", c.Object(), c.phase)
	}
	c.phase = PhaseExecutable
	return nil
}

func (c *CommandBuffer) Reset() {
	c.resetRecording()
	c.phase = PhaseInitial
}

// Invalidate moves the command buffer to the invalid state, as when a resource it recorded is destroyed
func (c *CommandBuffer) Invalidate() {
	if c.phase == PhaseRecording || c.phase == PhaseExecutable {
		c.phase = PhaseInvalid
	}
}

func (c *CommandBuffer) resetPushConstantsIfIncompatible(layout *PipelineLayout) {
	if layout.PushConstantRangesID() == c.pushConstantRangesID {
		return
	}

	c.pushConstantRangesID = layout.PushConstantRangesID()
	c.pushConstantChunks = nil
	c.pushConstantStages = 0
}

func (c *CommandBuffer) BindPipeline(pipeline *Pipeline) error {
	if pipeline == nil {
		return errors.New("cannot bind a nil pipeline")
	}

	lastBound := &c.lastBound[pipeline.BindPoint()]
	lastBound.Pipeline = pipeline

	c.resetPushConstantsIfIncompatible(pipeline.Layout())

	if pipeline.BindPoint() == BindPointGraphics {
		// State the new pipeline treats as static is no longer set
		c.dynamicStatesSet &= pipeline.DynamicStates()
	}

	utils.DebugValidate(c)
	return nil
}

func (c *CommandBuffer) checkBindRange(bindPoint BindPoint, layout *PipelineLayout, firstSet uint32, count int) error {
	if !bindPoint.IsValid() {
		return errors.Newf("invalid bind point %d", bindPoint)
	}
	if layout == nil {
		return errors.New("a pipeline layout is required")
	}
	if count == 0 {
		return errors.New("at least one set must be bound")
	}
	if int(firstSet)+count > layout.SetCount() {
		return errors.Newf("binding sets [%d, %d) exceeds the %d sets of %s", firstSet, int(firstSet)+count, layout.SetCount(), layout.Describe())
	}
	return nil
}

func (c *CommandBuffer) BindDescriptorSets(bindPoint BindPoint, layout *PipelineLayout, firstSet uint32, sets []*DescriptorSet, dynamicOffsets []uint32) error {
	if err := c.checkBindRange(bindPoint, layout, firstSet, len(sets)); err != nil {
		return err
	}

	dynamicCount := 0
	for i, set := range sets {
		if set == nil {
			return errors.Newf("set %d is nil", int(firstSet)+i)
		}
		dynamicCount += set.DynamicDescriptorCount()
	}
	if dynamicCount != len(dynamicOffsets) {
		return errors.Newf("the bound sets contain %d dynamic descriptors, but %d dynamic offsets were provided", dynamicCount, len(dynamicOffsets))
	}

	lastBound := &c.lastBound[bindPoint]
	lastBound.updateSlots(layout, firstSet, len(sets))
	lastBound.clearOtherBindingMode(false)

	remaining := dynamicOffsets
	for i, set := range sets {
		index := firstSet + uint32(i)
		slot := &lastBound.Slots[index]
		slot.reset()

		slot.Set = set
		slot.CompatID = layout.SetCompatID(index)

		count := set.DynamicDescriptorCount()
		slot.DynamicOffsets = slices.Clone(remaining[:count])
		remaining = remaining[count:]
	}

	utils.DebugValidate(c)
	return nil
}

// PushDescriptorSet writes descriptors directly into set index of the bind point. The command buffer
// owns the pushed set, which is reused and updated by later pushes to the same set layout.
func (c *CommandBuffer) PushDescriptorSet(bindPoint BindPoint, layout *PipelineLayout, set uint32, writes ...DescriptorWrite) error {
	if err := c.checkBindRange(bindPoint, layout, set, 1); err != nil {
		return err
	}

	setLayout := layout.SetLayout(set)
	if setLayout == nil || !setLayout.IsPushDescriptor() {
		return errors.Newf("set %d of %s is not a push descriptor set layout", set, layout.Describe())
	}

	lastBound := &c.lastBound[bindPoint]
	var pushed *DescriptorSet
	if slot := lastBound.Slot(set); slot != nil && slot.Set != nil && slot.Set.IsPushDescriptor() && slot.Set.Layout() == setLayout {
		pushed = slot.Set
	} else {
		pushed = c.device.newDescriptorSet(setLayout, true)
		pushed.init(diag.ObjectTypeDescriptorSet, 0, c.device.useMutex())
	}

	if err := pushed.Update(writes...); err != nil {
		return err
	}

	lastBound.updateSlots(layout, set, 1)
	lastBound.clearOtherBindingMode(false)

	slot := &lastBound.Slots[set]
	slot.reset()
	slot.Set = pushed
	slot.CompatID = layout.SetCompatID(set)

	utils.DebugValidate(c)
	return nil
}

func (c *CommandBuffer) SetDescriptorBufferOffsets(bindPoint BindPoint, layout *PipelineLayout, firstSet uint32, bufferIndices []uint32, offsets []uint64) error {
	if err := c.checkBindRange(bindPoint, layout, firstSet, len(bufferIndices)); err != nil {
		return err
	}
	if len(bufferIndices) != len(offsets) {
		return errors.Newf("%d buffer indices were provided with %d offsets", len(bufferIndices), len(offsets))
	}

	lastBound := &c.lastBound[bindPoint]
	lastBound.updateSlots(layout, firstSet, len(bufferIndices))
	lastBound.clearOtherBindingMode(true)

	for i := range bufferIndices {
		index := firstSet + uint32(i)
		slot := &lastBound.Slots[index]
		slot.reset()

		slot.DescriptorBufferBound = true
		slot.DescriptorBufferIndex = bufferIndices[i]
		slot.DescriptorBufferOffset = offsets[i]
		slot.CompatID = layout.SetCompatID(index)
	}

	utils.DebugValidate(c)
	return nil
}

func (c *CommandBuffer) BindIndexBuffer(buffer *Buffer, offset uint64, indexType core1_0.IndexType) error {
	if buffer == nil {
		return errors.New("cannot bind a nil index buffer")
	}

	var size uint64
	if offset < buffer.Size() {
		size = buffer.Size() - offset
	}

	c.indexBuffer = IndexBufferBinding{
		Buffer:    buffer,
		Offset:    offset,
		Size:      size,
		IndexType: indexType,
		Bound:     true,
	}
	return nil
}

func (c *CommandBuffer) BindVertexBuffers(firstBinding uint32, buffers []*Buffer, offsets []uint64) error {
	if len(buffers) != len(offsets) {
		return errors.Newf("%d vertex buffers were provided with %d offsets", len(buffers), len(offsets))
	}

	for i, buffer := range buffers {
		binding := firstBinding + uint32(i)
		if buffer == nil {
			delete(c.vertexBuffers, binding)
			continue
		}

		var size uint64
		if offsets[i] < buffer.Size() {
			size = buffer.Size() - offsets[i]
		}
		c.vertexBuffers[binding] = VertexBufferBinding{Buffer: buffer, Offset: offsets[i], Size: size}
	}
	return nil
}

func (c *CommandBuffer) PushConstants(layout *PipelineLayout, stages core1_0.ShaderStageFlags, offset, size uint32) error {
	if layout == nil {
		return errors.New("a pipeline layout is required")
	}

	c.resetPushConstantsIfIncompatible(layout)
	c.pushConstantChunks = append(c.pushConstantChunks, PushConstantChunk{Stages: stages, Offset: offset, Size: size})
	c.pushConstantStages |= stages
	c.pushConstantsEverPushed = true
	return nil
}

func maskRange(first, count uint32) uint32 {
	var mask uint32
	for i := first; i < first+count && i < 32; i++ {
		mask |= 1 << i
	}
	return mask
}

func (c *CommandBuffer) SetViewport(firstViewport, viewportCount uint32) {
	c.dynamicValues.ViewportMask |= maskRange(firstViewport, viewportCount)
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStateViewport)
}

func (c *CommandBuffer) SetScissor(firstScissor, scissorCount uint32) {
	c.dynamicValues.ScissorMask |= maskRange(firstScissor, scissorCount)
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStateScissor)
}

func (c *CommandBuffer) SetViewportWithCount(viewportCount uint32) {
	c.dynamicValues.ViewportWithCount = viewportCount
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStateViewportWithCount)
}

func (c *CommandBuffer) SetScissorWithCount(scissorCount uint32) {
	c.dynamicValues.ScissorWithCount = scissorCount
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStateScissorWithCount)
}

func (c *CommandBuffer) SetPrimitiveTopology(topology core1_0.PrimitiveTopology) {
	c.dynamicValues.PrimitiveTopology = topology
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStatePrimitiveTopology)
}

func (c *CommandBuffer) SetRasterizationSamples(samples core1_0.SampleCountFlags) {
	c.dynamicValues.RasterizationSamples = samples
	c.dynamicStatesSet = c.dynamicStatesSet.With(DynamicStateRasterizationSamples)
}

// SetDynamicState records that vkCmdSet* was called for states whose values are not checked at draw time
func (c *CommandBuffer) SetDynamicState(states ...DynamicState) {
	for _, state := range states {
		c.dynamicStatesSet = c.dynamicStatesSet.With(state)
	}
}

func (c *CommandBuffer) BeginRenderPass(renderPass *RenderPass, framebuffer *Framebuffer) error {
	if c.InRenderPassScope() {
		return errors.Newf("%s is already inside a render pass", c.Object())
	}
	if renderPass == nil || framebuffer == nil {
		return errors.New("a render pass and framebuffer are required")
	}

	c.activeRenderPass = renderPass
	c.activeFramebuffer = framebuffer
	c.activeSubpass = 0
	c.updateSubpassAttachments()
	return nil
}

func (c *CommandBuffer) NextSubpass() error {
	if c.activeRenderPass == nil {
		return errors.Newf("%s is not inside a render pass", c.Object())
	}
	if int(c.activeSubpass)+1 >= c.activeRenderPass.SubpassCount() {
		return errors.Newf("%s is already in the final subpass of %s", c.Object(), c.activeRenderPass.Object())
	}

	c.activeSubpass++
	c.updateSubpassAttachments()
	return nil
}

func (c *CommandBuffer) EndRenderPass() error {
	if c.activeRenderPass == nil {
		return errors.Newf("%s is not inside a render pass", c.Object())
	}

	c.activeRenderPass = nil
	c.activeFramebuffer = nil
	c.activeSubpass = 0
	c.activeAttachments = nil
	return nil
}

func (c *CommandBuffer) updateSubpassAttachments() {
	subpass, _ := c.activeRenderPass.Subpass(c.activeSubpass)

	usages := make(map[uint32]core1_0.ImageUsageFlags)
	add := func(attachment uint32, usage core1_0.ImageUsageFlags) {
		if attachment != AttachmentUnused {
			usages[attachment] |= usage
		}
	}

	for _, attachment := range subpass.ColorAttachments {
		add(attachment, core1_0.ImageUsageColorAttachment)
	}
	for _, attachment := range subpass.InputAttachments {
		add(attachment, core1_0.ImageUsageInputAttachment)
	}
	if subpass.DepthStencilAttachment != nil {
		add(*subpass.DepthStencilAttachment, core1_0.ImageUsageDepthStencilAttachment)
	}

	attachments := maps.Keys(usages)
	slices.Sort(attachments)

	c.activeAttachments = make([]ActiveAttachment, 0, len(attachments))
	for _, attachment := range attachments {
		c.activeAttachments = append(c.activeAttachments, ActiveAttachment{
			View:  c.activeFramebuffer.Attachment(attachment),
			Usage: usages[attachment],
		})
	}
}

func (c *CommandBuffer) BeginRendering(info RenderingInfo) error {
	if c.InRenderPassScope() {
		return errors.Newf("%s is already inside a render pass", c.Object())
	}

	rendering := info
	rendering.ColorAttachments = slices.Clone(info.ColorAttachments)
	c.rendering = &rendering

	c.activeAttachments = nil
	for _, view := range rendering.ColorAttachments {
		if view != nil {
			c.activeAttachments = append(c.activeAttachments, ActiveAttachment{View: view, Usage: core1_0.ImageUsageColorAttachment})
		}
	}
	if rendering.DepthAttachment != nil {
		c.activeAttachments = append(c.activeAttachments, ActiveAttachment{View: rendering.DepthAttachment, Usage: core1_0.ImageUsageDepthStencilAttachment})
	}
	if rendering.StencilAttachment != nil && rendering.StencilAttachment != rendering.DepthAttachment {
		c.activeAttachments = append(c.activeAttachments, ActiveAttachment{View: rendering.StencilAttachment, Usage: core1_0.ImageUsageDepthStencilAttachment})
	}
	return nil
}

func (c *CommandBuffer) EndRendering() error {
	if c.rendering == nil {
		return errors.Newf("%s is not inside a dynamic rendering scope", c.Object())
	}

	c.rendering = nil
	c.activeAttachments = nil
	return nil
}

// TransitionImageLayout records that an image layout transition was recorded. Only the count of
// transitions is tracked, which invalidates every descriptor validation cache.
func (c *CommandBuffer) TransitionImageLayout() {
	c.imageLayoutChangeCount++
}

// RecordDraw updates the descriptor validation cache of every set the bound pipeline uses, after a
// draw, dispatch, or trace rays command at bindPoint has been validated and recorded
func (c *CommandBuffer) RecordDraw(bindPoint BindPoint) {
	c.drawCount++

	lastBound := c.LastBound(bindPoint)
	if lastBound == nil || lastBound.Pipeline == nil || lastBound.Pipeline.IsDescriptorBufferMode() {
		return
	}

	for set, requirements := range lastBound.Pipeline.ActiveSlots() {
		slot := lastBound.Slot(set)
		if slot == nil || slot.Set == nil {
			continue
		}

		cache := &slot.Cache
		if cache.Matches(slot.Set, c.imageLayoutChangeCount) {
			maps.Copy(cache.Validated, requirements)
			continue
		}

		*cache = ValidationCache{
			SetID:                  slot.Set.ID(),
			ChangeCount:            slot.Set.ChangeCount(),
			ImageLayoutChangeCount: c.imageLayoutChangeCount,
			Validated:              maps.Clone(requirements),
		}
	}

	c.logger.Debug("CommandBuffer::RecordDraw",
		slog.String("commandBuffer", c.Object().String()),
		slog.String("bindPoint", bindPoint.String()),
		slog.Int("drawCount", c.drawCount),
	)
}

// Validate checks internal invariants of the recording state
func (c *CommandBuffer) Validate() error {
	for bindPoint := range c.lastBound {
		for set, slot := range c.lastBound[bindPoint].Slots {
			if slot.Set != nil && slot.DescriptorBufferBound {
				return errors.Newf("set %d at %s has both a descriptor set and a descriptor buffer bound", set, BindPoint(bindPoint))
			}
		}
	}

	if c.activeRenderPass != nil && c.rendering != nil {
		return errors.New("a render pass and a dynamic rendering scope are both active")
	}

	if c.activeRenderPass != nil && int(c.activeSubpass) >= c.activeRenderPass.SubpassCount() {
		return errors.Newf("active subpass %d is out of range", c.activeSubpass)
	}

	return nil
}
