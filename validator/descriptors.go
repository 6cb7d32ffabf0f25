package validator

import (
	"fmt"

	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
	"golang.org/x/exp/slog"
)

// wholeSize is VK_WHOLE_SIZE
const wholeSize = ^uint64(0)

// descriptorContext carries what the checks of a single binding need to know about where it is bound
type descriptorContext struct {
	commandBuffer *state.CommandBuffer
	set           *state.DescriptorSet
	setIndex      uint32
	binding       state.DescriptorSetLayoutBinding
	requirement   state.DescriptorRequirement
	vuids         *vuid.DrawDispatchVuids
	loc           diag.Location

	dynamicOffsets     []uint32
	dynamicOffsetIndex int
}

func (c *descriptorContext) describe(index int) string {
	return fmt.Sprintf("descriptor [%s, set %d, binding %d, index %d]", c.set.Object(), c.setIndex, c.binding.Binding, index)
}

// cachedRequirements returns the requirements of a bound set that still need validation, or false if
// the set's validation cache covers all of them
func (v *Validator) cachedRequirements(commandBuffer *state.CommandBuffer, slot *state.SetSlot, requirements state.BindingRequirements) (state.BindingRequirements, bool) {
	if v.flags&ValidatorCreateDisableDescriptorCache != 0 {
		return requirements, true
	}

	set := slot.Set
	if set.DescriptorCount() <= v.device.ManyDescriptorsThreshold() || set.DynamicDescriptorCount() > 0 {
		return requirements, true
	}

	cache := &slot.Cache
	imageLayoutChangeCount := commandBuffer.ImageLayoutChangeCount()
	if v.flags&ValidatorCreateDisableImageLayoutValidation != 0 {
		imageLayoutChangeCount = cache.ImageLayoutChangeCount
	}
	if !cache.Matches(set, imageLayoutChangeCount) {
		return requirements, true
	}

	if requirements.IsSubsetOf(cache.Validated) {
		return nil, false
	}
	return requirements.Difference(cache.Validated), true
}

// validateDescriptorSet validates the descriptors of a bound, compatible set that the pipeline's shaders
// reference. Bindings already validated against the set's current contents are skipped.
func (v *Validator) validateDescriptorSet(commandBuffer *state.CommandBuffer, slot *state.SetSlot, setIndex uint32, requirements state.BindingRequirements, vuids *vuid.DrawDispatchVuids, loc diag.Location) bool {
	set := slot.Set
	layout := set.Layout()

	// Requirements for bindings the set does not have were reported as a layout mismatch
	present := make(state.BindingRequirements, len(requirements))
	for binding, requirement := range requirements {
		if _, ok := layout.Binding(binding); ok {
			present[binding] = requirement
		}
	}

	toValidate, validate := v.cachedRequirements(commandBuffer, slot, present)
	if !validate {
		v.counters.cachedSetSkips.Add(1)
		v.logger.Debug("Validator::validateDescriptorSet",
			slog.String("set", set.Object().String()),
			slog.Int("bindings", len(present)),
			slog.Bool("cached", true),
		)
		return false
	}

	skip := false
	for _, bindingNumber := range toValidate.SortedBindings() {
		binding, _ := layout.Binding(bindingNumber)
		context := descriptorContext{
			commandBuffer:      commandBuffer,
			set:                set,
			setIndex:           setIndex,
			binding:            binding,
			requirement:        toValidate[bindingNumber],
			vuids:              vuids,
			loc:                loc,
			dynamicOffsets:     slot.DynamicOffsets,
			dynamicOffsetIndex: dynamicOffsetIndex(layout, bindingNumber),
		}

		v.counters.bindingChecks.Add(1)
		skip = v.validateBinding(&context) || skip
	}

	return skip
}

// dynamicOffsetIndex is the index into a set's dynamic offsets of the first element of binding.
// Dynamic offsets are ordered by binding number, then array element.
func dynamicOffsetIndex(layout *state.DescriptorSetLayout, binding uint32) int {
	index := 0
	for _, other := range layout.Bindings() {
		if other.Binding >= binding {
			break
		}
		if other.Type.IsDynamic() {
			index += int(other.Count)
		}
	}
	return index
}

func (v *Validator) validateBinding(context *descriptorContext) bool {
	descriptors, ok := context.set.Descriptors(context.binding.Binding)
	if !ok {
		return false
	}

	skip := false
	for index, descriptor := range descriptors {
		skip = v.validateDescriptor(context, index, descriptor) || skip
	}
	return skip
}

func (v *Validator) validateDescriptor(context *descriptorContext, index int, descriptor state.DescriptorState) bool {
	commandBuffer := context.commandBuffer
	id := context.vuids.DescriptorValid08114

	if !descriptor.Updated {
		if context.binding.Flags&state.DescriptorBindingPartiallyBound != 0 {
			return false
		}
		return v.sink.LogError(id, objects(commandBuffer, context.set), context.loc,
			"the %s is being used in %s but has never been updated via vkUpdateDescriptorSets() or a similar call.",
			context.describe(index), context.loc.Function)
	}

	if descriptor.IsNull() {
		if v.device.Features().NullDescriptor {
			return false
		}
		return v.sink.LogError(id, objects(commandBuffer, context.set), context.loc,
			"the %s is using a null descriptor, but the nullDescriptor feature is not enabled.",
			context.describe(index))
	}

	skip := v.validateDescriptorResources(context, index, descriptor.Descriptor)
	if skip {
		return skip
	}

	if buffer := descriptor.Buffer; buffer != nil && context.binding.Type.IsDynamic() {
		skip = v.validateDynamicOffset(context, index, descriptor.Descriptor) || skip
	}

	if view := descriptor.ImageView; view != nil && context.requirement.RequiresViewType && view.ViewType() != context.requirement.ViewType {
		skip = v.sink.LogError(context.vuids.ImageViewType07752, objects(commandBuffer, context.set, view), context.loc,
			"the %s requires an image view of type %v, but %s has type %v.",
			context.describe(index), context.requirement.ViewType, view.Object(), view.ViewType()) || skip
	}

	skip = v.validateDescriptorProtection(context, index, descriptor.Descriptor) || skip
	return skip
}

// validateDescriptorResources reports descriptors that reference destroyed resources or resources
// without memory bound to them
func (v *Validator) validateDescriptorResources(context *descriptorContext, index int, descriptor state.Descriptor) bool {
	commandBuffer := context.commandBuffer
	id := context.vuids.DescriptorValid08114
	skip := false

	destroyed := func(resource diag.Named) bool {
		return v.sink.LogError(id, objects(commandBuffer, context.set, resource), context.loc,
			"the %s references %s, which has been destroyed.", context.describe(index), resource.Object())
	}
	unbound := func(resource diag.Named) bool {
		return v.sink.LogError(id, objects(commandBuffer, context.set, resource), context.loc,
			"the %s references %s, which has no memory bound to it.", context.describe(index), resource.Object())
	}

	if buffer := descriptor.Buffer; buffer != nil {
		if buffer.Destroyed() {
			skip = destroyed(buffer) || skip
		} else if !buffer.IsMemoryBound() {
			skip = unbound(buffer) || skip
		}
	}

	if view := descriptor.ImageView; view != nil {
		if view.Destroyed() {
			skip = destroyed(view) || skip
		} else if image := view.Image(); image != nil {
			if image.Destroyed() {
				skip = destroyed(image) || skip
			} else if !image.IsMemoryBound() {
				skip = unbound(image) || skip
			}
		}
	}

	if sampler := descriptor.Sampler; sampler != nil && sampler.Destroyed() {
		skip = destroyed(sampler) || skip
	}

	if view := descriptor.TensorView; view != nil {
		if view.Destroyed() {
			skip = destroyed(view) || skip
		} else if tensor := view.Tensor(); tensor != nil {
			if tensor.Destroyed() {
				skip = destroyed(tensor) || skip
			} else if !tensor.IsMemoryBound() {
				skip = unbound(tensor) || skip
			}
		}
	}

	if accelerationStructure := descriptor.AccelerationStructure; accelerationStructure != nil {
		if accelerationStructure.Destroyed() {
			skip = destroyed(accelerationStructure) || skip
		} else if !accelerationStructure.IsMemoryBound() {
			skip = unbound(accelerationStructure) || skip
		}
	}

	return skip
}

// validateDynamicOffset reports a dynamic buffer descriptor whose range, moved by its dynamic offset,
// extends past the end of the buffer
func (v *Validator) validateDynamicOffset(context *descriptorContext, index int, descriptor state.Descriptor) bool {
	offsetIndex := context.dynamicOffsetIndex + index
	if offsetIndex >= len(context.dynamicOffsets) {
		return false
	}

	buffer := descriptor.Buffer
	dynamicOffset := uint64(context.dynamicOffsets[offsetIndex])
	start := descriptor.Offset + dynamicOffset

	if descriptor.Range == wholeSize {
		if start <= buffer.Size() {
			return false
		}
		return v.sink.LogError(context.vuids.DescriptorValid08114, objects(context.commandBuffer, context.set, buffer), context.loc,
			"the %s has offset %d and dynamic offset %d, which is beyond the size of %s (%d).",
			context.describe(index), descriptor.Offset, dynamicOffset, buffer.Object(), buffer.Size())
	}

	if start+descriptor.Range <= buffer.Size() {
		return false
	}
	return v.sink.LogError(context.vuids.DescriptorValid08114, objects(context.commandBuffer, context.set, buffer), context.loc,
		"the %s has offset %d, dynamic offset %d, and range %d, which overflows the size of %s (%d).",
		context.describe(index), descriptor.Offset, dynamicOffset, descriptor.Range, buffer.Object(), buffer.Size())
}

// writableDescriptorType reports whether shaders may write through descriptors of t
func writableDescriptorType(t state.DescriptorType) bool {
	switch t {
	case state.DescriptorTypeStorageBuffer, state.DescriptorTypeStorageBufferDynamic,
		state.DescriptorTypeStorageImage, state.DescriptorTypeStorageTexelBuffer, state.DescriptorTypeTensor:
		return true
	}
	return false
}

// validateDescriptorProtection checks the protection of the resources a descriptor references against
// the command buffer. Only resources that may be written must be protected in a protected command buffer.
func (v *Validator) validateDescriptorProtection(context *descriptorContext, index int, descriptor state.Descriptor) bool {
	commandBuffer := context.commandBuffer
	writable := writableDescriptorType(context.binding.Type)
	description := context.describe(index)
	loc := context.loc
	skip := false

	check := func(resource diag.Named, protected bool) {
		skip = v.validateProtectedResource(commandBuffer, resource, protected, loc, context.vuids.UnprotectedCommandBuffer02707, description) || skip
		if writable {
			skip = v.validateUnprotectedResource(commandBuffer, resource, protected, loc, context.vuids.ProtectedCommandBuffer02712, description) || skip
		}
	}

	if buffer := descriptor.Buffer; buffer != nil {
		check(buffer, buffer.IsProtected())
	}
	if view := descriptor.ImageView; view != nil && view.Image() != nil {
		check(view.Image(), view.Image().IsProtected())
	}
	if view := descriptor.TensorView; view != nil && view.Tensor() != nil {
		check(view.Tensor(), view.Tensor().IsProtected())
	}

	return skip
}
