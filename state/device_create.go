package state

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/validation/diag"
	"golang.org/x/exp/slices"
)

func (d *Device) CreateDeviceMemory(handle Handle, info DeviceMemoryCreateInfo) (*DeviceMemory, error) {
	memory := &DeviceMemory{size: info.Size, protected: info.Protected}
	memory.init(diag.ObjectTypeDeviceMemory, handle, d.useMutex())

	if info.Size == 0 {
		return nil, errors.New("device memory size must be greater than 0")
	}
	if err := d.register(memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (d *Device) CreateBuffer(handle Handle, info BufferCreateInfo) (*Buffer, error) {
	buffer := &Buffer{createInfo: info}
	buffer.init(diag.ObjectTypeBuffer, handle, d.useMutex())

	if info.Size == 0 {
		return nil, errors.New("buffer size must be greater than 0")
	}
	if err := d.register(buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

func (d *Device) CreateImage(handle Handle, info ImageCreateInfo) (*Image, error) {
	image := &Image{createInfo: info}
	image.init(diag.ObjectTypeImage, handle, d.useMutex())

	if err := d.register(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (d *Device) CreateImageView(handle Handle, info ImageViewCreateInfo) (*ImageView, error) {
	if info.Image == nil {
		return nil, errors.New("an image view requires an image")
	}

	view := &ImageView{image: info.Image, viewType: info.ViewType, format: info.Format}
	view.init(diag.ObjectTypeImageView, handle, d.useMutex())

	if err := d.register(view); err != nil {
		return nil, err
	}
	return view, nil
}

func (d *Device) CreateSampler(handle Handle) (*Sampler, error) {
	sampler := &Sampler{}
	sampler.init(diag.ObjectTypeSampler, handle, d.useMutex())

	if err := d.register(sampler); err != nil {
		return nil, err
	}
	return sampler, nil
}

func (d *Device) CreateAccelerationStructure(handle Handle, info AccelerationStructureCreateInfo) (*AccelerationStructure, error) {
	if info.Buffer == nil {
		return nil, errors.New("an acceleration structure requires a buffer")
	}

	accelerationStructure := &AccelerationStructure{createInfo: info}
	accelerationStructure.init(diag.ObjectTypeAccelerationStructure, handle, d.useMutex())

	if err := d.register(accelerationStructure); err != nil {
		return nil, err
	}
	return accelerationStructure, nil
}

func (d *Device) CreateTensor(handle Handle, info TensorCreateInfo) (*Tensor, error) {
	for i, dimension := range info.Description.Dimensions {
		if dimension <= 0 {
			return nil, errors.Newf("tensor dimension %d is %d, but must be greater than 0", i, dimension)
		}
	}

	description := info.Description
	description.Dimensions = slices.Clone(info.Description.Dimensions)

	tensor := &Tensor{flags: info.Flags, description: description}
	tensor.init(diag.ObjectTypeTensor, handle, d.useMutex())

	if err := d.register(tensor); err != nil {
		return nil, err
	}
	return tensor, nil
}

func (d *Device) CreateTensorView(handle Handle, info TensorViewCreateInfo) (*TensorView, error) {
	if info.Tensor == nil {
		return nil, errors.New("a tensor view requires a tensor")
	}

	view := &TensorView{tensor: info.Tensor, format: info.Format}
	view.init(diag.ObjectTypeTensorView, handle, d.useMutex())

	if err := d.register(view); err != nil {
		return nil, err
	}
	return view, nil
}

func (d *Device) CreateDescriptorSetLayout(handle Handle, info DescriptorSetLayoutCreateInfo) (*DescriptorSetLayout, error) {
	layout := &DescriptorSetLayout{}
	layout.init(diag.ObjectTypeDescriptorSetLayout, handle, d.useMutex())

	if err := buildDescriptorSetLayout(layout, info); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", layout.Object())
	}
	layout.definitionID = d.canonicalID(descriptorSetLayoutKey(layout))

	if err := d.register(layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (d *Device) AllocateDescriptorSet(handle Handle, layout *DescriptorSetLayout) (*DescriptorSet, error) {
	if layout == nil {
		return nil, errors.New("a descriptor set requires a layout")
	}
	if layout.IsPushDescriptor() {
		return nil, errors.Newf("%s is a push descriptor layout and cannot be used to allocate sets", layout.Object())
	}

	set := d.newDescriptorSet(layout, false)
	set.init(diag.ObjectTypeDescriptorSet, handle, d.useMutex())

	if err := d.register(set); err != nil {
		return nil, err
	}
	return set, nil
}

func (d *Device) newDescriptorSet(layout *DescriptorSetLayout, push bool) *DescriptorSet {
	set := &DescriptorSet{push: push}
	set.mutex.UseMutex = d.useMutex()
	newDescriptorSetContents(set, layout)
	return set
}

func (d *Device) CreatePipelineLayout(handle Handle, info PipelineLayoutCreateInfo) (*PipelineLayout, error) {
	layout := d.buildPipelineLayout(info.SetLayouts, info.PushConstantRanges)
	layout.init(diag.ObjectTypePipelineLayout, handle, d.useMutex())

	if err := d.register(layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (d *Device) buildPipelineLayout(setLayouts []*DescriptorSetLayout, ranges []PushConstantRange) *PipelineLayout {
	layout := &PipelineLayout{
		setLayouts:         slices.Clone(setLayouts),
		pushConstantRanges: slices.Clone(ranges),
	}
	layout.pushConstantRangesID = d.canonicalID(pushConstantRangesKey(ranges))

	layout.setCompatIDs = make([]uint64, len(setLayouts))
	for i := range setLayouts {
		layout.setCompatIDs[i] = d.canonicalID(setCompatKey(layout.pushConstantRangesID, setLayouts, i))
	}
	return layout
}

// mergePipelineLayouts builds the union of the layouts of several pipeline libraries. Each set takes
// the first layout that specifies it, and push constant ranges come from the first layout that
// declares any.
func (d *Device) mergePipelineLayouts(layouts []*PipelineLayout) *PipelineLayout {
	setCount := 0
	for _, layout := range layouts {
		if len(layout.setLayouts) > setCount {
			setCount = len(layout.setLayouts)
		}
	}

	setLayouts := make([]*DescriptorSetLayout, setCount)
	for i := range setLayouts {
		for _, layout := range layouts {
			if setLayout := layout.SetLayout(uint32(i)); setLayout != nil {
				setLayouts[i] = setLayout
				break
			}
		}
	}

	var ranges []PushConstantRange
	for _, layout := range layouts {
		if len(layout.pushConstantRanges) > 0 {
			ranges = layout.pushConstantRanges
			break
		}
	}

	merged := d.buildPipelineLayout(setLayouts, ranges)
	merged.init(diag.ObjectTypePipelineLayout, 0, d.useMutex())
	merged.sources = slices.Clone(layouts)
	return merged
}

func (d *Device) CreatePipeline(handle Handle, info PipelineCreateInfo) (*Pipeline, error) {
	pipeline := &Pipeline{}
	pipeline.init(diag.ObjectTypePipeline, handle, d.useMutex())

	if err := buildPipeline(pipeline, info, d.mergePipelineLayouts); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", pipeline.Object())
	}

	if err := d.register(pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func (d *Device) CreateRenderPass(handle Handle, info RenderPassCreateInfo) (*RenderPass, error) {
	renderPass := &RenderPass{}
	renderPass.init(diag.ObjectTypeRenderPass, handle, d.useMutex())

	if err := buildRenderPass(renderPass, info); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", renderPass.Object())
	}

	if err := d.register(renderPass); err != nil {
		return nil, err
	}
	return renderPass, nil
}

func (d *Device) CreateFramebuffer(handle Handle, info FramebufferCreateInfo) (*Framebuffer, error) {
	if info.RenderPass == nil {
		return nil, errors.New("a framebuffer requires a render pass")
	}
	if len(info.Attachments) != len(info.RenderPass.attachments) {
		return nil, errors.Newf("a framebuffer for %s requires %d attachments, but %d were provided",
			info.RenderPass.Object(), len(info.RenderPass.attachments), len(info.Attachments))
	}

	framebuffer := &Framebuffer{renderPass: info.RenderPass, attachments: slices.Clone(info.Attachments)}
	framebuffer.init(diag.ObjectTypeFramebuffer, handle, d.useMutex())

	if err := d.register(framebuffer); err != nil {
		return nil, err
	}
	return framebuffer, nil
}

// CommandBufferCreateInfo describes a command buffer allocation
type CommandBufferCreateInfo struct {
	// Protected is set when the command buffer was allocated from a protected command pool
	Protected bool
}

func (d *Device) AllocateCommandBuffer(handle Handle, info CommandBufferCreateInfo) (*CommandBuffer, error) {
	commandBuffer := newCommandBuffer(d, info)
	commandBuffer.init(diag.ObjectTypeCommandBuffer, handle, d.useMutex())

	if err := d.register(commandBuffer); err != nil {
		return nil, err
	}
	return commandBuffer, nil
}
