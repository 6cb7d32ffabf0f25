package state

import (
	"fmt"
	"github.com/vkngwrapper/core/v2/core1_0"
	"strings"
)

type PushConstantRange struct {
	Stages core1_0.ShaderStageFlags
	Offset uint32
	Size   uint32
}

type PipelineLayoutCreateInfo struct {
	// SetLayouts may contain nil entries for sets a pipeline library leaves unspecified
	SetLayouts         []*DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

type PipelineLayout struct {
	objectState
	setLayouts           []*DescriptorSetLayout
	pushConstantRanges   []PushConstantRange
	pushConstantRangesID uint64
	setCompatIDs         []uint64

	// sources is set when the layout is the union of several library layouts
	sources []*PipelineLayout
}

func (l *PipelineLayout) SetCount() int {
	return len(l.setLayouts)
}

// SetLayout returns the layout of set, or nil if set is out of range or was left unspecified
func (l *PipelineLayout) SetLayout(set uint32) *DescriptorSetLayout {
	if int(set) >= len(l.setLayouts) {
		return nil
	}
	return l.setLayouts[set]
}

func (l *PipelineLayout) PushConstantRanges() []PushConstantRange {
	return l.pushConstantRanges
}

// PushConstantRangesID is shared by every layout declaring identical push constant ranges
func (l *PipelineLayout) PushConstantRangesID() uint64 {
	return l.pushConstantRangesID
}

// SetCompatID identifies the chain of push constant ranges and set layouts 0 through set. Two layouts
// are compatible for set when their ids for it are equal. Out of range sets return 0, which no valid
// chain uses.
func (l *PipelineLayout) SetCompatID(set uint32) uint64 {
	if int(set) >= len(l.setCompatIDs) {
		return 0
	}
	return l.setCompatIDs[set]
}

func (l *PipelineLayout) IsCompatibleForSet(other *PipelineLayout, set uint32) bool {
	if l == nil || other == nil {
		return false
	}
	id := l.SetCompatID(set)
	return id != 0 && id == other.SetCompatID(set)
}

// IsUnion reports whether the layout was merged from the layouts of several pipeline libraries
func (l *PipelineLayout) IsUnion() bool {
	return len(l.sources) > 0
}

func (l *PipelineLayout) Sources() []*PipelineLayout {
	return l.sources
}

// Describe names the layout in diagnostics
func (l *PipelineLayout) Describe() string {
	if !l.IsUnion() {
		return l.Object().String()
	}

	names := make([]string, 0, len(l.sources))
	for _, source := range l.sources {
		names = append(names, source.Object().String())
	}
	return "union of (" + strings.Join(names, ", ") + ")"
}

// DescribeSetIncompatibility explains why set layout bound is not compatible with this layout at set.
// It returns an empty string when they are compatible.
func (l *PipelineLayout) DescribeSetIncompatibility(set uint32, bound *DescriptorSetLayout) string {
	if int(set) >= len(l.setLayouts) {
		return fmt.Sprintf("set index %d is out of range for %s, which has %d sets", set, l.Describe(), len(l.setLayouts))
	}

	expected := l.setLayouts[set]
	if expected == nil {
		return fmt.Sprintf("%s leaves set %d unspecified", l.Describe(), set)
	}
	if bound == nil {
		return fmt.Sprintf("no set layout is bound at set %d", set)
	}
	if expected.IsCompatible(bound) {
		return ""
	}

	if len(expected.bindings) != len(bound.bindings) {
		return fmt.Sprintf("%s has %d bindings but %s has %d", bound.Object(), len(bound.bindings), expected.Object(), len(expected.bindings))
	}
	if expected.flags != bound.flags {
		return fmt.Sprintf("%s was created with flags %s but %s was created with %s", bound.Object(), bound.flags, expected.Object(), expected.flags)
	}
	for i := range expected.bindings {
		e, b := expected.bindings[i], bound.bindings[i]
		switch {
		case e.Binding != b.Binding:
			return fmt.Sprintf("binding index %d is binding %d in %s but binding %d in %s", i, b.Binding, bound.Object(), e.Binding, expected.Object())
		case e.Type != b.Type:
			return fmt.Sprintf("binding %d is type %s in %s but type %s in %s", e.Binding, b.Type, bound.Object(), e.Type, expected.Object())
		case e.Count != b.Count:
			return fmt.Sprintf("binding %d has descriptorCount %d in %s but %d in %s", e.Binding, b.Count, bound.Object(), e.Count, expected.Object())
		case e.Stages != b.Stages:
			return fmt.Sprintf("binding %d has stageFlags %s in %s but %s in %s", e.Binding, b.Stages, bound.Object(), e.Stages, expected.Object())
		case e.Flags != b.Flags:
			return fmt.Sprintf("binding %d has binding flags %s in %s but %s in %s", e.Binding, b.Flags, bound.Object(), e.Flags, expected.Object())
		}
	}
	return fmt.Sprintf("%s and %s have different definitions", bound.Object(), expected.Object())
}

func pushConstantRangesKey(ranges []PushConstantRange) string {
	var b strings.Builder
	b.WriteString("pcr")
	for _, r := range ranges {
		fmt.Fprintf(&b, ";%d,%d,%d", r.Stages, r.Offset, r.Size)
	}
	return b.String()
}

func setCompatKey(pushConstantRangesID uint64, setLayouts []*DescriptorSetLayout, set int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "compat:%d", pushConstantRangesID)
	for i := 0; i <= set; i++ {
		var definitionID uint64
		if setLayouts[i] != nil {
			definitionID = setLayouts[i].definitionID
		}
		fmt.Fprintf(&b, ";%d", definitionID)
	}
	return b.String()
}
