package state

import (
	"fmt"
	"github.com/vkngwrapper/validation/diag"
)

// ValidationCache remembers which binding requirements of a bound set were last validated, and the
// state the set and command buffer were in at the time. It is only trustworthy while every identity
// and counter still matches.
type ValidationCache struct {
	SetID                  uint64
	ChangeCount            uint64
	ImageLayoutChangeCount uint64
	Validated              BindingRequirements
}

// Matches reports whether the cache was populated for set in its current state
func (c *ValidationCache) Matches(set *DescriptorSet, imageLayoutChangeCount uint64) bool {
	return set != nil &&
		c.Validated != nil &&
		c.SetID == set.ID() &&
		c.ChangeCount == set.ChangeCount() &&
		c.ImageLayoutChangeCount == imageLayoutChangeCount
}

// SetSlot is the binding state of a single descriptor set index. A slot holds a descriptor set or
// a descriptor buffer offset, never both.
type SetSlot struct {
	Set *DescriptorSet

	DescriptorBufferBound  bool
	DescriptorBufferIndex  uint32
	DescriptorBufferOffset uint64

	DynamicOffsets []uint32
	// CompatID is the set compatibility id of the pipeline layout the slot was last bound with
	CompatID uint64

	Cache ValidationCache
}

func (s *SetSlot) IsBound() bool {
	return s.Set != nil || s.DescriptorBufferBound
}

func (s *SetSlot) reset() {
	*s = SetSlot{}
}

// LastBound is the binding state of a single pipeline bind point
type LastBound struct {
	Pipeline *Pipeline
	// Layout is the pipeline layout most recently used to bind descriptor sets, push descriptors, or
	// set descriptor buffer offsets
	Layout *PipelineLayout
	Slots  []SetSlot
}

// Slot returns the slot for set, or nil if nothing has been bound at or above set
func (b *LastBound) Slot(set uint32) *SetSlot {
	if int(set) >= len(b.Slots) {
		return nil
	}
	return &b.Slots[set]
}

// IsBoundSetCompat reports whether the sets bound through set are compatible with layout
func (b *LastBound) IsBoundSetCompat(set uint32, layout *PipelineLayout) bool {
	slot := b.Slot(set)
	if slot == nil || layout == nil || int(set) >= layout.SetCount() {
		return false
	}
	return slot.CompatID == layout.SetCompatID(set)
}

// DescribeNonCompatibleSet explains why IsBoundSetCompat failed
func (b *LastBound) DescribeNonCompatibleSet(set uint32, layout *PipelineLayout) string {
	if int(set) >= len(b.Slots) {
		return fmt.Sprintf("set %d has not been bound; only %d sets are bound", set, len(b.Slots))
	}
	if int(set) >= layout.SetCount() {
		return fmt.Sprintf("set %d is out of range for %s, which has %d sets", set, layout.Describe(), layout.SetCount())
	}
	if b.Layout != nil && b.Layout.PushConstantRangesID() != layout.PushConstantRangesID() {
		return fmt.Sprintf("the push constant ranges of %s differ from those of %s", diag.FormatHandle(b.Layout), layout.Describe())
	}
	return fmt.Sprintf("the set layouts bound through set %d are not identically defined to those of %s", set, layout.Describe())
}

func (b *LastBound) reset() {
	*b = LastBound{}
}

// updateSlots resizes and disturbs slots for a bind of count sets starting at firstSet with layout.
// Slots below firstSet whose compatibility changes are invalidated, as are all slots above the bound
// range if the last bound set's compatibility changed.
func (b *LastBound) updateSlots(layout *PipelineLayout, firstSet uint32, count int) {
	required := int(firstSet) + count
	current := len(b.Slots)

	if required < current {
		last := uint32(required - 1)
		if b.Slots[last].CompatID == layout.SetCompatID(last) {
			required = current
		}
	}

	if required > current {
		b.Slots = append(b.Slots, make([]SetSlot, required-current)...)
	} else if required < current {
		b.Slots = b.Slots[:required]
	}

	for set := uint32(0); set < firstSet; set++ {
		slot := &b.Slots[set]
		if slot.CompatID != layout.SetCompatID(set) {
			slot.reset()
			slot.CompatID = layout.SetCompatID(set)
		}
	}

	b.Layout = layout
}

// clearOtherBindingMode unbinds every slot bound in the opposite mode. Descriptor sets and descriptor
// buffers cannot be mixed at a bind point.
func (b *LastBound) clearOtherBindingMode(descriptorBuffers bool) {
	for i := range b.Slots {
		slot := &b.Slots[i]
		unbind := (descriptorBuffers && slot.Set != nil) || (!descriptorBuffers && slot.DescriptorBufferBound)
		if unbind {
			compatID := slot.CompatID
			slot.reset()
			slot.CompatID = compatID
		}
	}
}
