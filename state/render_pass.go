package state

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

// AttachmentUnused marks an attachment reference that does not reference any attachment
const AttachmentUnused = ^uint32(0)

type AttachmentDescription struct {
	Format  core1_0.Format
	Samples core1_0.SampleCountFlags
}

type SubpassDescription struct {
	InputAttachments []uint32
	ColorAttachments []uint32
	// DepthStencilAttachment is nil when the subpass has no depth/stencil attachment
	DepthStencilAttachment *uint32
	ViewMask               uint32
}

type RenderPassCreateInfo struct {
	Attachments []AttachmentDescription
	Subpasses   []SubpassDescription
}

type RenderPass struct {
	objectState
	attachments []AttachmentDescription
	subpasses   []SubpassDescription
}

func buildRenderPass(renderPass *RenderPass, info RenderPassCreateInfo) error {
	if len(info.Subpasses) == 0 {
		return errors.New("a render pass requires at least one subpass")
	}

	checkReference := func(subpass int, attachment uint32) error {
		if attachment != AttachmentUnused && int(attachment) >= len(info.Attachments) {
			return errors.Newf("subpass %d references attachment %d, but the render pass has %d attachments", subpass, attachment, len(info.Attachments))
		}
		return nil
	}

	for i, subpass := range info.Subpasses {
		references := append(slices.Clone(subpass.InputAttachments), subpass.ColorAttachments...)
		if subpass.DepthStencilAttachment != nil {
			references = append(references, *subpass.DepthStencilAttachment)
		}
		for _, attachment := range references {
			if err := checkReference(i, attachment); err != nil {
				return err
			}
		}
	}

	renderPass.attachments = slices.Clone(info.Attachments)
	renderPass.subpasses = slices.Clone(info.Subpasses)
	return nil
}

func (r *RenderPass) Attachments() []AttachmentDescription {
	return r.attachments
}

func (r *RenderPass) SubpassCount() int {
	return len(r.subpasses)
}

func (r *RenderPass) Subpass(index uint32) (SubpassDescription, bool) {
	if int(index) >= len(r.subpasses) {
		return SubpassDescription{}, false
	}
	return r.subpasses[index], true
}

// IsMultiview reports whether any subpass renders to more than the default view
func (r *RenderPass) IsMultiview() bool {
	for _, subpass := range r.subpasses {
		if subpass.ViewMask != 0 {
			return true
		}
	}
	return false
}

// SubpassSampleCount returns the sample count shared by the color and depth/stencil attachments of a
// subpass, or 0 if the subpass uses none of them
func (r *RenderPass) SubpassSampleCount(index uint32) core1_0.SampleCountFlags {
	subpass, ok := r.Subpass(index)
	if !ok {
		return 0
	}

	var samples core1_0.SampleCountFlags
	for _, attachment := range subpass.ColorAttachments {
		if attachment != AttachmentUnused {
			samples |= r.attachments[attachment].Samples
		}
	}
	if subpass.DepthStencilAttachment != nil && *subpass.DepthStencilAttachment != AttachmentUnused {
		samples |= r.attachments[*subpass.DepthStencilAttachment].Samples
	}
	return samples
}

func (r *RenderPass) attachmentsCompatible(mine, theirs []uint32, other *RenderPass) bool {
	longest := len(mine)
	if len(theirs) > longest {
		longest = len(theirs)
	}

	for i := 0; i < longest; i++ {
		a, b := AttachmentUnused, AttachmentUnused
		if i < len(mine) {
			a = mine[i]
		}
		if i < len(theirs) {
			b = theirs[i]
		}

		if a == AttachmentUnused || b == AttachmentUnused {
			if a != b {
				return false
			}
			continue
		}
		if r.attachments[a] != other.attachments[b] {
			return false
		}
	}
	return true
}

// IsCompatible applies the render pass compatibility rules: corresponding attachment references must
// name attachments with matching formats and sample counts, and view masks must match
func (r *RenderPass) IsCompatible(other *RenderPass) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil || len(r.subpasses) != len(other.subpasses) {
		return false
	}

	for i := range r.subpasses {
		mine, theirs := r.subpasses[i], other.subpasses[i]
		if mine.ViewMask != theirs.ViewMask {
			return false
		}
		if !r.attachmentsCompatible(mine.ColorAttachments, theirs.ColorAttachments, other) {
			return false
		}
		if !r.attachmentsCompatible(mine.InputAttachments, theirs.InputAttachments, other) {
			return false
		}

		var myDepth, theirDepth []uint32
		if mine.DepthStencilAttachment != nil {
			myDepth = []uint32{*mine.DepthStencilAttachment}
		}
		if theirs.DepthStencilAttachment != nil {
			theirDepth = []uint32{*theirs.DepthStencilAttachment}
		}
		if !r.attachmentsCompatible(myDepth, theirDepth, other) {
			return false
		}
	}
	return true
}

type FramebufferCreateInfo struct {
	RenderPass  *RenderPass
	Attachments []*ImageView
}

type Framebuffer struct {
	objectState
	renderPass  *RenderPass
	attachments []*ImageView
}

func (f *Framebuffer) RenderPass() *RenderPass {
	return f.renderPass
}

// Attachment returns the image view at index, or nil if index is unused or out of range
func (f *Framebuffer) Attachment(index uint32) *ImageView {
	if index == AttachmentUnused || int(index) >= len(f.attachments) {
		return nil
	}
	return f.attachments[index]
}
