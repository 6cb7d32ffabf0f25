package validator

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"golang.org/x/exp/slog"
)

const (
	copyTensorFunction       = "vkCmdCopyTensorARM"
	createTensorViewFunction = "vkCreateTensorViewARM"
)

const (
	vuidCopyTensorRecording  = "VUID-vkCmdCopyTensorARM-commandBuffer-recording"
	vuidCopyTensorRenderPass = "VUID-vkCmdCopyTensorARM-renderpass"
	vuidCopyTensorProtected  = "VUID-vkCmdCopyTensorARM-commandBuffer-09780"
	vuidCopyTensorUnprotect  = "VUID-vkCmdCopyTensorARM-commandBuffer-09781"

	vuidCopyTensorDimensionCount  = "VUID-VkCopyTensorInfoARM-dimensionCount-09684"
	vuidCopyTensorDimensions      = "VUID-VkCopyTensorInfoARM-pDimensions-09685"
	vuidCopyTensorRegionCount     = "VUID-VkCopyTensorInfoARM-regionCount-09686"
	vuidCopyTensorSrcOffset       = "VUID-VkCopyTensorInfoARM-pRegions-09687"
	vuidCopyTensorDstOffset       = "VUID-VkCopyTensorInfoARM-pRegions-09688"
	vuidCopyTensorExtent          = "VUID-VkCopyTensorInfoARM-pRegions-09689"
	vuidCopyTensorFormat          = "VUID-VkCopyTensorInfoARM-dstTensor-09690"
	vuidCopyTensorSrcUsage        = "VUID-VkCopyTensorInfoARM-srcTensor-09691"
	vuidCopyTensorSrcMemory       = "VUID-VkCopyTensorInfoARM-srcTensor-09692"
	vuidCopyTensorDstUsage        = "VUID-VkCopyTensorInfoARM-dstTensor-09693"
	vuidCopyTensorDstMemory       = "VUID-VkCopyTensorInfoARM-dstTensor-09694"
	vuidTensorCopyDimensionCount  = "VUID-VkTensorCopyARM-dimensionCount-09955"
	vuidTensorCopyZeroDimensions  = "VUID-VkTensorCopyARM-dimensionCount-09956"
	vuidTensorCopySliceDimensions = "VUID-VkTensorCopyARM-dimensionCount-09957"

	vuidTensorViewUsage  = "VUID-VkTensorViewCreateInfoARM-usage-09747"
	vuidTensorViewMemory = "VUID-VkTensorViewCreateInfoARM-tensor-09749"
	vuidTensorViewFormat = "VUID-VkTensorViewCreateInfoARM-tensor-09750"
)

// TensorCopy is a single region of vkCmdCopyTensorARM. A nil slice stands for a null pointer.
type TensorCopy struct {
	DimensionCount uint32
	SrcOffset      []uint64
	DstOffset      []uint64
	Extent         []uint64
}

type CopyTensorInfo struct {
	SrcTensor state.Handle
	DstTensor state.Handle
	Regions   []TensorCopy
}

type TensorViewCreateInfo struct {
	Tensor state.Handle
	Format core1_0.Format
}

// validateTensorCmd applies the rules every transfer command shares: the command buffer must be
// recording, and the command must be outside a render pass
func (v *Validator) validateTensorCmd(cb *state.CommandBuffer, loc diag.Location) bool {
	skip := false

	if cb.Phase() != state.PhaseRecording {
		skip = v.sink.LogError(vuidCopyTensorRecording, objects(cb), loc,
			"%s is in the %s state, but must be in the recording state.", cb.Object(), cb.Phase()) || skip
	}

	if cb.InRenderPassScope() {
		skip = v.sink.LogError(vuidCopyTensorRenderPass, objects(cb), loc,
			"This call must be issued outside of a render pass or dynamic rendering scope.") || skip
	}

	return skip
}

func (v *Validator) PreCallValidateCmdCopyTensorARM(commandBuffer state.Handle, info CopyTensorInfo) bool {
	v.logger.Debug("Validator::PreCallValidateCmdCopyTensorARM",
		slog.Int("regionCount", len(info.Regions)),
	)

	loc := diag.NewLocation(copyTensorFunction)
	cb, ok := lookup[*state.CommandBuffer](v, loc, commandBuffer)
	if !ok {
		return false
	}

	skip := v.validateTensorCmd(cb, loc)

	infoLoc := loc.Dot("pCopyTensorInfo")
	if len(info.Regions) != 1 {
		skip = v.sink.LogError(vuidCopyTensorRegionCount, objects(cb), infoLoc.Dot("regionCount"),
			"(%d) must be 1.", len(info.Regions)) || skip
	}

	src, srcOk := lookup[*state.Tensor](v, infoLoc.Dot("srcTensor"), info.SrcTensor)
	dst, dstOk := lookup[*state.Tensor](v, infoLoc.Dot("dstTensor"), info.DstTensor)
	if !srcOk || !dstOk {
		return v.finish(skip)
	}

	skip = v.validateTensorCopyDimensions(cb, src, dst, info.Regions, infoLoc) || skip
	skip = v.validateTensorCopyResources(cb, src, dst, infoLoc) || skip
	return v.finish(skip)
}

// validateTensorCopyDimensions checks the shapes of the two tensors and of each copy region. Only copies
// of whole tensors between tensors of identical shape are legal. When the dimension counts differ no
// per-dimension check is made.
func (v *Validator) validateTensorCopyDimensions(cb *state.CommandBuffer, src, dst *state.Tensor, regions []TensorCopy, loc diag.Location) bool {
	srcCount, dstCount := src.DimensionCount(), dst.DimensionCount()
	if srcCount != dstCount {
		return v.sink.LogError(vuidCopyTensorDimensionCount, objects(cb, src, dst), loc,
			"srcTensor %s has dimensionCount %d, but dstTensor %s has dimensionCount %d.",
			src.Object(), srcCount, dst.Object(), dstCount)
	}

	skip := false
	for i := 0; i < srcCount; i++ {
		if src.Dimension(i) != dst.Dimension(i) {
			skip = v.sink.LogError(vuidCopyTensorDimensions, objects(cb, src, dst), loc,
				"dimension %d of srcTensor %s is %d, but dimension %d of dstTensor %s is %d.",
				i, src.Object(), src.Dimension(i), i, dst.Object(), dst.Dimension(i)) || skip
		}
	}

	for i, region := range regions {
		skip = v.validateTensorCopyRegion(cb, src, region, loc.DotIndex("pRegions", i)) || skip
	}

	return skip
}

func (v *Validator) validateTensorCopyRegion(cb *state.CommandBuffer, src *state.Tensor, region TensorCopy, loc diag.Location) bool {
	if region.DimensionCount == 0 {
		if region.SrcOffset == nil && region.DstOffset == nil && region.Extent == nil {
			return false
		}
		return v.sink.LogError(vuidTensorCopyZeroDimensions, objects(cb), loc.Dot("dimensionCount"),
			"is 0, but pSrcOffset, pDstOffset, and pExtent are not all NULL.")
	}

	dimensionCount := src.DimensionCount()
	if int(region.DimensionCount) != dimensionCount {
		return v.sink.LogError(vuidTensorCopyDimensionCount, objects(cb, src), loc.Dot("dimensionCount"),
			"(%d) must be equal to the dimensionCount of the tensors (%d).", region.DimensionCount, dimensionCount)
	}

	skip := false
	slices := []struct {
		name   string
		values []uint64
	}{
		{name: "pSrcOffset", values: region.SrcOffset},
		{name: "pDstOffset", values: region.DstOffset},
		{name: "pExtent", values: region.Extent},
	}
	for _, slice := range slices {
		if slice.values != nil && len(slice.values) != dimensionCount {
			skip = v.sink.LogError(vuidTensorCopySliceDimensions, objects(cb), loc.Dot(slice.name),
				"has %d elements, but dimensionCount is %d.", len(slice.values), dimensionCount) || skip
		}
	}
	if skip {
		return skip
	}

	for i, offset := range region.SrcOffset {
		if offset != 0 {
			skip = v.sink.LogError(vuidCopyTensorSrcOffset, objects(cb, src), loc.DotIndex("pSrcOffset", i),
				"is %d, but only copies of whole tensors are supported and every offset must be 0.", offset) || skip
		}
	}
	for i, offset := range region.DstOffset {
		if offset != 0 {
			skip = v.sink.LogError(vuidCopyTensorDstOffset, objects(cb), loc.DotIndex("pDstOffset", i),
				"is %d, but only copies of whole tensors are supported and every offset must be 0.", offset) || skip
		}
	}
	for i, extent := range region.Extent {
		if dimension := src.Dimension(i); extent != uint64(dimension) {
			skip = v.sink.LogError(vuidCopyTensorExtent, objects(cb, src), loc.DotIndex("pExtent", i),
				"is %d, but dimension %d of srcTensor %s is %d.", extent, i, src.Object(), dimension) || skip
		}
	}

	return skip
}

func (v *Validator) validateTensorCopyResources(cb *state.CommandBuffer, src, dst *state.Tensor, loc diag.Location) bool {
	skip := false

	if src.Format() != dst.Format() {
		skip = v.sink.LogError(vuidCopyTensorFormat, objects(cb, src, dst), loc,
			"srcTensor %s has format %v, but dstTensor %s has format %v.",
			src.Object(), src.Format(), dst.Object(), dst.Format()) || skip
	}

	if src.Usage()&state.TensorUsageTransferSrc == 0 {
		skip = v.sink.LogError(vuidCopyTensorSrcUsage, objects(cb, src), loc.Dot("srcTensor"),
			"%s was created with usage %s, but requires TransferSrc.", src.Object(), src.Usage()) || skip
	}
	if dst.Usage()&state.TensorUsageTransferDst == 0 {
		skip = v.sink.LogError(vuidCopyTensorDstUsage, objects(cb, dst), loc.Dot("dstTensor"),
			"%s was created with usage %s, but requires TransferDst.", dst.Object(), dst.Usage()) || skip
	}

	if !src.IsMemoryBound() {
		skip = v.sink.LogError(vuidCopyTensorSrcMemory, objects(cb, src), loc.Dot("srcTensor"),
			"%s is used without memory bound to it.", src.Object()) || skip
	}
	if !dst.IsMemoryBound() {
		skip = v.sink.LogError(vuidCopyTensorDstMemory, objects(cb, dst), loc.Dot("dstTensor"),
			"%s is used without memory bound to it.", dst.Object()) || skip
	}

	skip = v.validateProtectedResource(cb, src, src.IsProtected(), loc.Dot("srcTensor"), vuidCopyTensorProtected, "source tensor") || skip
	skip = v.validateProtectedResource(cb, dst, dst.IsProtected(), loc.Dot("dstTensor"), vuidCopyTensorProtected, "destination tensor") || skip
	skip = v.validateUnprotectedResource(cb, dst, dst.IsProtected(), loc.Dot("dstTensor"), vuidCopyTensorUnprotect, "destination tensor") || skip

	return skip
}

// PreCallValidateCreateTensorView checks a tensor view against the tensor it views
func (v *Validator) PreCallValidateCreateTensorView(info TensorViewCreateInfo) bool {
	v.logger.Debug("Validator::PreCallValidateCreateTensorView")

	loc := diag.NewLocation(createTensorViewFunction).Dot("pCreateInfo")
	tensor, ok := lookup[*state.Tensor](v, loc.Dot("tensor"), info.Tensor)
	if !ok {
		return false
	}

	skip := false
	required := state.TensorUsageShader | state.TensorUsageImageAliasing | state.TensorUsageDataGraph
	if tensor.Usage()&required == 0 {
		skip = v.sink.LogError(vuidTensorViewUsage, diag.NewObjectList(tensor), loc.Dot("tensor"),
			"%s was created with usage %s, but a tensor view requires one of %s.",
			tensor.Object(), tensor.Usage(), required) || skip
	}

	if !tensor.IsMemoryBound() {
		skip = v.sink.LogError(vuidTensorViewMemory, diag.NewObjectList(tensor), loc.Dot("tensor"),
			"%s has no memory bound to it.", tensor.Object()) || skip
	}

	if tensor.Flags()&state.ResourceCreateMutableFormat == 0 && info.Format != tensor.Format() {
		skip = v.sink.LogError(vuidTensorViewFormat, diag.NewObjectList(tensor), loc.Dot("format"),
			"(%v) must match the format of %s (%v), since it was not created with MutableFormat.",
			info.Format, tensor.Object(), tensor.Format()) || skip
	}

	return v.finish(skip)
}
