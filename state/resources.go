package state

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"sync/atomic"
)

// DeviceMemoryCreateInfo describes a VkDeviceMemory allocation
type DeviceMemoryCreateInfo struct {
	Size      uint64
	Protected bool
}

type DeviceMemory struct {
	objectState
	size      uint64
	protected bool
}

func (m *DeviceMemory) Size() uint64 {
	return m.size
}

func (m *DeviceMemory) IsProtected() bool {
	return m.protected
}

type memoryBinding struct {
	memory *DeviceMemory
	offset uint64
}

// boundMemory tracks the single memory binding of a non-sparse resource. The binding is swapped
// atomically so command buffers on other threads may query it while it is bound.
type boundMemory struct {
	binding atomic.Pointer[memoryBinding]
}

func (b *boundMemory) bind(memory *DeviceMemory, offset uint64) error {
	if memory == nil {
		return errors.New("cannot bind a nil memory object")
	}
	if memory.Destroyed() {
		return errors.Wrapf(ErrDestroyed, "cannot bind %s", memory.Object())
	}
	if offset >= memory.Size() {
		return errors.Newf("offset %d is past the end of %s, which is size %d", offset, memory.Object(), memory.Size())
	}

	if !b.binding.CompareAndSwap(nil, &memoryBinding{memory: memory, offset: offset}) {
		return errors.New("resource already has memory bound")
	}
	return nil
}

// BoundMemory returns the memory object bound to the resource and the offset it was bound at, or nil
func (b *boundMemory) BoundMemory() (*DeviceMemory, uint64) {
	binding := b.binding.Load()
	if binding == nil {
		return nil, 0
	}
	return binding.memory, binding.offset
}

func (b *boundMemory) memoryBound() bool {
	binding := b.binding.Load()
	return binding != nil && !binding.memory.Destroyed()
}

// BufferCreateInfo holds the creation parameters of a buffer that validation reads
type BufferCreateInfo struct {
	Flags BufferCreateFlags
	Size  uint64
	Usage core1_0.BufferUsageFlags
	// DeviceAddress is the address reported for the buffer, or 0 if device addresses are not in use
	DeviceAddress uint64
}

type Buffer struct {
	objectState
	boundMemory
	createInfo BufferCreateInfo
}

func (b *Buffer) Size() uint64 {
	return b.createInfo.Size
}

func (b *Buffer) Usage() core1_0.BufferUsageFlags {
	return b.createInfo.Usage
}

func (b *Buffer) Flags() BufferCreateFlags {
	return b.createInfo.Flags
}

func (b *Buffer) DeviceAddress() uint64 {
	return b.createInfo.DeviceAddress
}

func (b *Buffer) IsProtected() bool {
	return b.createInfo.Flags&BufferCreateProtected != 0
}

func (b *Buffer) IsSparse() bool {
	return b.createInfo.Flags&BufferCreateSparseBinding != 0
}

// IsMemoryBound reports whether reads from the buffer are backed by live memory. Sparse buffers are
// always considered bound.
func (b *Buffer) IsMemoryBound() bool {
	return b.IsSparse() || b.memoryBound()
}

func (b *Buffer) BindMemory(memory *DeviceMemory, offset uint64) error {
	if b.IsSparse() {
		return errors.Newf("%s was created with sparse binding and cannot be bound with BindMemory", b.Object())
	}
	return b.bind(memory, offset)
}

// ImageCreateInfo holds the creation parameters of an image that validation reads
type ImageCreateInfo struct {
	Flags   ResourceCreateFlags
	Format  core1_0.Format
	Usage   core1_0.ImageUsageFlags
	Samples core1_0.SampleCountFlags
}

type Image struct {
	objectState
	boundMemory
	createInfo ImageCreateInfo
}

func (i *Image) Format() core1_0.Format {
	return i.createInfo.Format
}

func (i *Image) Usage() core1_0.ImageUsageFlags {
	return i.createInfo.Usage
}

func (i *Image) Samples() core1_0.SampleCountFlags {
	if i.createInfo.Samples == 0 {
		return core1_0.Samples1
	}
	return i.createInfo.Samples
}

func (i *Image) IsProtected() bool {
	return i.createInfo.Flags&ResourceCreateProtected != 0
}

func (i *Image) IsMemoryBound() bool {
	return i.createInfo.Flags&ResourceCreateSparseBinding != 0 || i.memoryBound()
}

func (i *Image) BindMemory(memory *DeviceMemory, offset uint64) error {
	return i.bind(memory, offset)
}

// ImageViewCreateInfo describes a view of an image
type ImageViewCreateInfo struct {
	Image    *Image
	ViewType core1_0.ImageViewType
	Format   core1_0.Format
}

type ImageView struct {
	objectState
	image    *Image
	viewType core1_0.ImageViewType
	format   core1_0.Format
}

func (v *ImageView) Image() *Image {
	return v.image
}

func (v *ImageView) ViewType() core1_0.ImageViewType {
	return v.viewType
}

func (v *ImageView) Format() core1_0.Format {
	return v.format
}

// IsProtected reports whether the underlying image was created protected
func (v *ImageView) IsProtected() bool {
	return v.image != nil && v.image.IsProtected()
}

type Sampler struct {
	objectState
}

// AccelerationStructureCreateInfo places an acceleration structure inside a buffer
type AccelerationStructureCreateInfo struct {
	Buffer *Buffer
	Offset uint64
	Size   uint64
}

type AccelerationStructure struct {
	objectState
	createInfo AccelerationStructureCreateInfo
}

func (a *AccelerationStructure) Buffer() *Buffer {
	return a.createInfo.Buffer
}

// IsMemoryBound reports whether the backing buffer is alive and bound to memory
func (a *AccelerationStructure) IsMemoryBound() bool {
	buffer := a.createInfo.Buffer
	return buffer != nil && !buffer.Destroyed() && buffer.IsMemoryBound()
}

var _ diag.Named = &Buffer{}
