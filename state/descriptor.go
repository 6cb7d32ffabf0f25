package state

import (
	"fmt"
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/internal/utils"
	"golang.org/x/exp/slices"
	"strings"
	"sync/atomic"
)

// DescriptorBindingFlags are per-binding flags of a descriptor set layout
type DescriptorBindingFlags int32

var descriptorBindingFlagsMapping = common.NewFlagStringMapping[DescriptorBindingFlags]()

func (f DescriptorBindingFlags) Register(str string) {
	descriptorBindingFlagsMapping.Register(f, str)
}
func (f DescriptorBindingFlags) String() string {
	return descriptorBindingFlagsMapping.FlagsToString(f)
}

const (
	DescriptorBindingUpdateAfterBind DescriptorBindingFlags = 1 << iota
	DescriptorBindingUpdateUnusedWhilePending
	// DescriptorBindingPartiallyBound allows descriptors the shader does not dynamically access to be
	// left unwritten
	DescriptorBindingPartiallyBound
	DescriptorBindingVariableDescriptorCount
)

// DescriptorSetLayoutCreateFlags are the layout creation flags validation reads
type DescriptorSetLayoutCreateFlags int32

var descriptorSetLayoutCreateMapping = common.NewFlagStringMapping[DescriptorSetLayoutCreateFlags]()

func (f DescriptorSetLayoutCreateFlags) Register(str string) {
	descriptorSetLayoutCreateMapping.Register(f, str)
}
func (f DescriptorSetLayoutCreateFlags) String() string {
	return descriptorSetLayoutCreateMapping.FlagsToString(f)
}

const (
	LayoutCreatePushDescriptor DescriptorSetLayoutCreateFlags = 1 << iota
	LayoutCreateDescriptorBuffer
)

func init() {
	DescriptorBindingUpdateAfterBind.Register("UpdateAfterBind")
	DescriptorBindingUpdateUnusedWhilePending.Register("UpdateUnusedWhilePending")
	DescriptorBindingPartiallyBound.Register("PartiallyBound")
	DescriptorBindingVariableDescriptorCount.Register("VariableDescriptorCount")

	LayoutCreatePushDescriptor.Register("PushDescriptor")
	LayoutCreateDescriptorBuffer.Register("DescriptorBuffer")
}

type DescriptorSetLayoutBinding struct {
	Binding uint32
	Type    DescriptorType
	Count   uint32
	Stages  core1_0.ShaderStageFlags
	Flags   DescriptorBindingFlags
}

type DescriptorSetLayoutCreateInfo struct {
	Flags    DescriptorSetLayoutCreateFlags
	Bindings []DescriptorSetLayoutBinding
}

type DescriptorSetLayout struct {
	objectState
	flags        DescriptorSetLayoutCreateFlags
	bindings     []DescriptorSetLayoutBinding
	bindingIndex map[uint32]int
	definitionID uint64

	descriptorCount        int
	dynamicDescriptorCount int
}

func (l *DescriptorSetLayout) Flags() DescriptorSetLayoutCreateFlags {
	return l.flags
}

func (l *DescriptorSetLayout) IsPushDescriptor() bool {
	return l.flags&LayoutCreatePushDescriptor != 0
}

// Bindings returns the layout's bindings ordered by binding number. The slice must not be modified.
func (l *DescriptorSetLayout) Bindings() []DescriptorSetLayoutBinding {
	return l.bindings
}

func (l *DescriptorSetLayout) Binding(binding uint32) (DescriptorSetLayoutBinding, bool) {
	index, ok := l.bindingIndex[binding]
	if !ok {
		return DescriptorSetLayoutBinding{}, false
	}
	return l.bindings[index], true
}

// DefinitionID is shared by every layout with an identical definition, and is the basis of set
// compatibility
func (l *DescriptorSetLayout) DefinitionID() uint64 {
	return l.definitionID
}

// DescriptorCount is the total number of descriptors across every binding
func (l *DescriptorSetLayout) DescriptorCount() int {
	return l.descriptorCount
}

func (l *DescriptorSetLayout) DynamicDescriptorCount() int {
	return l.dynamicDescriptorCount
}

// IsCompatible reports whether sets allocated from other may be used where l is expected
func (l *DescriptorSetLayout) IsCompatible(other *DescriptorSetLayout) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	return l.definitionID == other.definitionID
}

func buildDescriptorSetLayout(layout *DescriptorSetLayout, info DescriptorSetLayoutCreateInfo) error {
	layout.flags = info.Flags
	layout.bindings = slices.Clone(info.Bindings)
	slices.SortFunc(layout.bindings, func(a, b DescriptorSetLayoutBinding) bool {
		return a.Binding < b.Binding
	})

	layout.bindingIndex = make(map[uint32]int, len(layout.bindings))
	for i, binding := range layout.bindings {
		if _, duplicate := layout.bindingIndex[binding.Binding]; duplicate {
			return errors.Newf("binding %d appears more than once", binding.Binding)
		}
		layout.bindingIndex[binding.Binding] = i

		layout.descriptorCount += int(binding.Count)
		if binding.Type.IsDynamic() {
			layout.dynamicDescriptorCount += int(binding.Count)
		}
	}

	if layout.dynamicDescriptorCount > 0 && layout.IsPushDescriptor() {
		return errors.New("push descriptor layouts cannot contain dynamic descriptors")
	}

	return nil
}

func descriptorSetLayoutKey(layout *DescriptorSetLayout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "dsl:%d", layout.flags)
	for _, binding := range layout.bindings {
		fmt.Fprintf(&b, ";%d,%d,%d,%d,%d", binding.Binding, binding.Type, binding.Count, binding.Stages, binding.Flags)
	}
	return b.String()
}

// Descriptor is the content of one array element of a descriptor binding. A descriptor that was
// written with every resource nil is a null descriptor.
type Descriptor struct {
	Buffer                *Buffer
	Offset                uint64
	Range                 uint64
	ImageView             *ImageView
	Sampler               *Sampler
	TensorView            *TensorView
	AccelerationStructure *AccelerationStructure
}

func (d Descriptor) IsNull() bool {
	return d.Buffer == nil && d.ImageView == nil && d.Sampler == nil && d.TensorView == nil && d.AccelerationStructure == nil
}

// DescriptorState is a descriptor together with whether it has ever been written
type DescriptorState struct {
	Descriptor
	Updated bool
}

// DescriptorWrite writes consecutive array elements of a single binding
type DescriptorWrite struct {
	Binding      uint32
	ArrayElement uint32
	Descriptors  []Descriptor
}

type DescriptorSet struct {
	objectState
	layout      *DescriptorSetLayout
	push        bool
	mutex       utils.OptionalRWMutex
	bindings    [][]DescriptorState
	changeCount atomic.Uint64
}

func newDescriptorSetContents(set *DescriptorSet, layout *DescriptorSetLayout) {
	set.layout = layout
	set.bindings = make([][]DescriptorState, len(layout.bindings))
	for i, binding := range layout.bindings {
		set.bindings[i] = make([]DescriptorState, binding.Count)
	}
}

func (s *DescriptorSet) Layout() *DescriptorSetLayout {
	return s.layout
}

// IsPushDescriptor reports whether the set holds descriptors pushed directly into a command buffer
func (s *DescriptorSet) IsPushDescriptor() bool {
	return s.push
}

// ChangeCount increases by exactly one each time the set's contents are updated
func (s *DescriptorSet) ChangeCount() uint64 {
	return s.changeCount.Load()
}

func (s *DescriptorSet) DescriptorCount() int {
	return s.layout.DescriptorCount()
}

func (s *DescriptorSet) DynamicDescriptorCount() int {
	return s.layout.DynamicDescriptorCount()
}

// Update applies writes atomically: either every write is applied and the change count advances by
// one, or an error is returned and the set is unchanged
func (s *DescriptorSet) Update(writes ...DescriptorWrite) error {
	for i, write := range writes {
		index, ok := s.layout.bindingIndex[write.Binding]
		if !ok {
			return errors.Newf("write %d targets binding %d, which is not present in %s", i, write.Binding, s.layout.Object())
		}

		count := uint64(s.layout.bindings[index].Count)
		if uint64(write.ArrayElement)+uint64(len(write.Descriptors)) > count {
			return errors.Newf("write %d writes elements [%d, %d) of binding %d, which has %d descriptors",
				i, write.ArrayElement, uint64(write.ArrayElement)+uint64(len(write.Descriptors)), write.Binding, count)
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, write := range writes {
		descriptors := s.bindings[s.layout.bindingIndex[write.Binding]]
		for i, descriptor := range write.Descriptors {
			descriptors[int(write.ArrayElement)+i] = DescriptorState{Descriptor: descriptor, Updated: true}
		}
	}

	s.changeCount.Add(1)
	return nil
}

// Descriptors returns a copy of the descriptors of a binding
func (s *DescriptorSet) Descriptors(binding uint32) ([]DescriptorState, bool) {
	index, ok := s.layout.bindingIndex[binding]
	if !ok {
		return nil, false
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return slices.Clone(s.bindings[index]), true
}
