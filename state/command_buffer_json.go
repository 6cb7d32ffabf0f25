package state

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/validation/diag"
)

// PrintDetailedMap writes the recording state of the command buffer as a JSON object
func (c *CommandBuffer) PrintDetailedMap(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("CommandBuffer").String(c.Object().String())
	obj.Name("Phase").String(c.phase.String())
	obj.Name("Protected").Bool(c.protected)
	obj.Name("DrawCount").Int(c.drawCount)
	obj.Name("ImageLayoutChangeCount").Int(int(c.imageLayoutChangeCount))

	if c.activeRenderPass != nil {
		obj.Name("RenderPass").String(c.activeRenderPass.Object().String())
		obj.Name("Subpass").Int(int(c.activeSubpass))
	}
	obj.Name("RenderingActive").Bool(c.rendering != nil)

	pushConstants := obj.Name("PushConstants").Object()
	pushConstants.Name("EverPushed").Bool(c.pushConstantsEverPushed)
	pushConstants.Name("Stages").String(c.pushConstantStages.String())
	pushConstants.Name("ChunkCount").Int(len(c.pushConstantChunks))
	pushConstants.End()

	obj.Name("DynamicStatesSet").String(c.dynamicStatesSet.String())

	indexBuffer := obj.Name("IndexBuffer").Object()
	indexBuffer.Name("Bound").Bool(c.indexBuffer.Bound)
	if c.indexBuffer.Bound {
		indexBuffer.Name("Buffer").String(c.indexBuffer.Buffer.Object().String())
		indexBuffer.Name("Offset").Int(int(c.indexBuffer.Offset))
		indexBuffer.Name("Size").Int(int(c.indexBuffer.Size))
	}
	indexBuffer.End()

	bindPoints := obj.Name("LastBound").Object()
	for i := range c.lastBound {
		lastBound := &c.lastBound[i]
		if lastBound.Pipeline == nil && len(lastBound.Slots) == 0 {
			continue
		}

		bindPointObj := bindPoints.Name(BindPoint(i).String()).Object()
		lastBound.printDetailedMap(&bindPointObj)
		bindPointObj.End()
	}
	bindPoints.End()
}

func (b *LastBound) printDetailedMap(json *jwriter.ObjectState) {
	if b.Pipeline != nil {
		json.Name("Pipeline").String(b.Pipeline.Object().String())
	}
	if b.Layout != nil {
		json.Name("Layout").String(b.Layout.Describe())
	}

	slots := json.Name("Slots").Array()
	defer slots.End()

	for i := range b.Slots {
		slot := &b.Slots[i]

		slotObj := slots.Object()
		switch {
		case slot.Set != nil:
			slotObj.Name("Mode").String("DescriptorSet")
			slotObj.Name("Set").String(diag.FormatHandle(slot.Set))
			slotObj.Name("PushDescriptor").Bool(slot.Set.IsPushDescriptor())
		case slot.DescriptorBufferBound:
			slotObj.Name("Mode").String("DescriptorBuffer")
			slotObj.Name("BufferIndex").Int(int(slot.DescriptorBufferIndex))
			slotObj.Name("Offset").Int(int(slot.DescriptorBufferOffset))
		default:
			slotObj.Name("Mode").String("Unbound")
		}
		slotObj.Name("CompatID").Int(int(slot.CompatID))
		slotObj.Name("DynamicOffsetCount").Int(len(slot.DynamicOffsets))

		if slot.Cache.Validated != nil {
			cacheObj := slotObj.Name("ValidationCache").Object()
			cacheObj.Name("SetID").Int(int(slot.Cache.SetID))
			cacheObj.Name("ChangeCount").Int(int(slot.Cache.ChangeCount))
			cacheObj.Name("ValidatedBindings").Int(len(slot.Cache.Validated))
			cacheObj.End()
		}
		slotObj.End()
	}
}
