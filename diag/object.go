package diag

import (
	"fmt"
	"strings"
)

// ObjectType names the Vulkan object type of a handle that appears in a diagnostic
type ObjectType int32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeDevice
	ObjectTypeCommandBuffer
	ObjectTypeDeviceMemory
	ObjectTypeBuffer
	ObjectTypeImage
	ObjectTypeImageView
	ObjectTypeSampler
	ObjectTypeAccelerationStructure
	ObjectTypeTensor
	ObjectTypeTensorView
	ObjectTypeDescriptorSetLayout
	ObjectTypeDescriptorSet
	ObjectTypePipelineLayout
	ObjectTypePipeline
	ObjectTypeRenderPass
	ObjectTypeFramebuffer
)

var objectTypeMapping = make(map[ObjectType]string)

func (t ObjectType) String() string {
	return objectTypeMapping[t]
}

func init() {
	objectTypeMapping[ObjectTypeUnknown] = "Unknown"
	objectTypeMapping[ObjectTypeDevice] = "VkDevice"
	objectTypeMapping[ObjectTypeCommandBuffer] = "VkCommandBuffer"
	objectTypeMapping[ObjectTypeDeviceMemory] = "VkDeviceMemory"
	objectTypeMapping[ObjectTypeBuffer] = "VkBuffer"
	objectTypeMapping[ObjectTypeImage] = "VkImage"
	objectTypeMapping[ObjectTypeImageView] = "VkImageView"
	objectTypeMapping[ObjectTypeSampler] = "VkSampler"
	objectTypeMapping[ObjectTypeAccelerationStructure] = "VkAccelerationStructureKHR"
	objectTypeMapping[ObjectTypeTensor] = "VkTensorARM"
	objectTypeMapping[ObjectTypeTensorView] = "VkTensorViewARM"
	objectTypeMapping[ObjectTypeDescriptorSetLayout] = "VkDescriptorSetLayout"
	objectTypeMapping[ObjectTypeDescriptorSet] = "VkDescriptorSet"
	objectTypeMapping[ObjectTypePipelineLayout] = "VkPipelineLayout"
	objectTypeMapping[ObjectTypePipeline] = "VkPipeline"
	objectTypeMapping[ObjectTypeRenderPass] = "VkRenderPass"
	objectTypeMapping[ObjectTypeFramebuffer] = "VkFramebuffer"
}

// Object is a typed handle named by a diagnostic
type Object struct {
	Type   ObjectType
	Handle uint64
}

func (o Object) String() string {
	return fmt.Sprintf("%s 0x%x", o.Type, o.Handle)
}

// Named is implemented by every state object so diagnostics can name it
type Named interface {
	Object() Object
}

// FormatHandle renders a state object the way diagnostics refer to it. A nil object renders as
// VK_NULL_HANDLE.
func FormatHandle(n Named) string {
	if n == nil {
		return "VK_NULL_HANDLE"
	}
	return n.Object().String()
}

// ObjectList is the ordered list of objects implicated by a diagnostic
type ObjectList []Object

// NewObjectList builds an ObjectList from state objects, skipping nils
func NewObjectList(objects ...Named) ObjectList {
	list := make(ObjectList, 0, len(objects))
	for _, o := range objects {
		list = list.Add(o)
	}
	return list
}

// Add appends a state object to the list if it is not nil
func (l ObjectList) Add(o Named) ObjectList {
	if o == nil {
		return l
	}
	return append(l, o.Object())
}

func (l ObjectList) String() string {
	parts := make([]string, 0, len(l))
	for _, o := range l {
		parts = append(parts, o.String())
	}
	return strings.Join(parts, ", ")
}
