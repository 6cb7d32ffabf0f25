package state

import "github.com/vkngwrapper/core/v2/core1_0"

// TensorDescription is the shape and format of a tensor
type TensorDescription struct {
	Format     core1_0.Format
	Dimensions []int64
	Usage      TensorUsageFlags
}

type TensorCreateInfo struct {
	Flags       ResourceCreateFlags
	Description TensorDescription
}

type Tensor struct {
	objectState
	boundMemory
	flags       ResourceCreateFlags
	description TensorDescription
}

func (t *Tensor) Format() core1_0.Format {
	return t.description.Format
}

func (t *Tensor) Usage() TensorUsageFlags {
	return t.description.Usage
}

func (t *Tensor) Flags() ResourceCreateFlags {
	return t.flags
}

func (t *Tensor) DimensionCount() int {
	return len(t.description.Dimensions)
}

// Dimension returns the extent of dimension i. The caller must keep i below DimensionCount.
func (t *Tensor) Dimension(i int) int64 {
	return t.description.Dimensions[i]
}

func (t *Tensor) IsProtected() bool {
	return t.flags&ResourceCreateProtected != 0
}

func (t *Tensor) IsMemoryBound() bool {
	return t.memoryBound()
}

func (t *Tensor) BindMemory(memory *DeviceMemory, offset uint64) error {
	return t.bind(memory, offset)
}

type TensorViewCreateInfo struct {
	Tensor *Tensor
	Format core1_0.Format
}

type TensorView struct {
	objectState
	tensor *Tensor
	format core1_0.Format
}

func (v *TensorView) Tensor() *Tensor {
	return v.tensor
}

func (v *TensorView) Format() core1_0.Format {
	return v.format
}

func (v *TensorView) IsProtected() bool {
	return v.tensor != nil && v.tensor.IsProtected()
}
