package state

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"golang.org/x/exp/slog"
)

// DeviceCreateFlags indicate specific device tracker behaviors to activate or deactivate
type DeviceCreateFlags int32

var deviceCreateFlagsMapping = common.NewFlagStringMapping[DeviceCreateFlags]()

func (f DeviceCreateFlags) Register(str string) {
	deviceCreateFlagsMapping.Register(f, str)
}
func (f DeviceCreateFlags) String() string {
	return deviceCreateFlagsMapping.FlagsToString(f)
}

const (
	// DeviceCreateExternallySynchronized ensures that this device and all objects created from it
	// will not be synchronized internally. The consumer must guarantee they are used from only one
	// thread at a time or are synchronized by some other mechanism.
	DeviceCreateExternallySynchronized DeviceCreateFlags = 1 << iota
)

func init() {
	DeviceCreateExternallySynchronized.Register("DeviceCreateExternallySynchronized")
}

// defaultManyDescriptorsThreshold is the descriptor count above which a set's validation results are
// cached between draws
const defaultManyDescriptorsThreshold int = 64

// Features are the device features enabled at device creation that validation depends on
type Features struct {
	ProtectedMemory                      bool
	NullDescriptor                       bool
	Maintenance4                         bool
	MultiDrawIndirect                    bool
	DrawIndirectCount                    bool
	MultiDraw                            bool
	TransformFeedback                    bool
	RayTracingPipelineTraceRaysIndirect  bool
	RayTracingMaintenance1               bool
	DynamicPrimitiveTopologyUnrestricted bool
	DescriptorBuffer                     bool
	Multiview                            bool
}

// Properties are the device properties and limits validation depends on
type Properties struct {
	ProtectedNoFault bool

	MaxMultiviewInstanceIndex            uint32
	MaxDrawIndirectCount                 uint32
	MaxComputeWorkGroupCount             [3]uint32
	MaxMultiDrawCount                    uint32
	MaxTransformFeedbackBufferDataStride uint32
	MaxDrawMeshTasksCount                uint32
	MaxMeshWorkGroupTotalCount           uint32
	MaxTaskWorkGroupTotalCount           uint32
	MaxRayDispatchInvocationCount        uint32
	MaxViewports                         uint32
	MaxClusterWorkGroupCount             [3]uint32
}

// DeviceCreateOptions contains the settings of a tracked device
type DeviceCreateOptions struct {
	Flags      DeviceCreateFlags
	Features   Features
	Properties Properties

	// ManyDescriptorsThreshold is the descriptor count above which a bound set's validation results
	// are reused across draws while the set is unchanged. 0 selects the default of 64.
	ManyDescriptorsThreshold int
}

type objectKey struct {
	objectType diag.ObjectType
	handle     Handle
}

// Device tracks every state object created from a single VkDevice, keyed by handle
type Device struct {
	logger     *slog.Logger
	flags      DeviceCreateFlags
	features   Features
	properties Properties

	manyDescriptorsThreshold int

	objectsMutex utils.OptionalRWMutex
	objects      *swiss.Map[objectKey, Object]

	dictionaryMutex utils.OptionalMutex
	dictionary      *swiss.Map[string, uint64]
}

func NewDevice(logger *slog.Logger, options DeviceCreateOptions) *Device {
	if logger == nil {
		logger = slog.Default()
	}

	threshold := options.ManyDescriptorsThreshold
	if threshold <= 0 {
		threshold = defaultManyDescriptorsThreshold
	}

	useMutex := options.Flags&DeviceCreateExternallySynchronized == 0
	return &Device{
		logger:     logger,
		flags:      options.Flags,
		features:   options.Features,
		properties: options.Properties,

		manyDescriptorsThreshold: threshold,

		objectsMutex:    utils.OptionalRWMutex{UseMutex: useMutex},
		objects:         swiss.NewMap[objectKey, Object](64),
		dictionaryMutex: utils.OptionalMutex{UseMutex: useMutex},
		dictionary:      swiss.NewMap[string, uint64](64),
	}
}

func (d *Device) Logger() *slog.Logger {
	return d.logger
}

func (d *Device) Features() *Features {
	return &d.features
}

func (d *Device) Properties() *Properties {
	return &d.properties
}

func (d *Device) ManyDescriptorsThreshold() int {
	return d.manyDescriptorsThreshold
}

func (d *Device) useMutex() bool {
	return d.flags&DeviceCreateExternallySynchronized == 0
}

// canonicalID returns the id shared by every definition that produces key
func (d *Device) canonicalID(key string) uint64 {
	d.dictionaryMutex.Lock()
	defer d.dictionaryMutex.Unlock()

	id, ok := d.dictionary.Get(key)
	if !ok {
		id = uint64(d.dictionary.Count()) + 1
		d.dictionary.Put(key, id)
	}
	return id
}

func (d *Device) register(object Object) error {
	if object.Handle() == 0 {
		return errors.Newf("cannot register a %s with a null handle", object.Object().Type)
	}

	key := objectKey{objectType: object.Object().Type, handle: object.Handle()}

	d.objectsMutex.Lock()
	defer d.objectsMutex.Unlock()

	if d.objects.Has(key) {
		return errors.Wrapf(ErrHandleInUse, "%s", object.Object())
	}
	d.objects.Put(key, object)

	d.logger.Debug("Device::register",
		slog.String("object", object.Object().String()),
		slog.Uint64("id", object.ID()),
	)
	return nil
}

func (d *Device) lookup(objectType diag.ObjectType, handle Handle) (Object, error) {
	d.objectsMutex.RLock()
	defer d.objectsMutex.RUnlock()

	object, ok := d.objects.Get(objectKey{objectType: objectType, handle: handle})
	if !ok {
		return nil, errors.Wrapf(ErrUnknownHandle, "%s", diag.Object{Type: objectType, Handle: uint64(handle)})
	}
	return object, nil
}

// Destroy marks the object destroyed and releases its handle for reuse. Command buffers and
// descriptor sets that still reference the object keep their reference, and see it as destroyed.
func (d *Device) Destroy(objectType diag.ObjectType, handle Handle) error {
	key := objectKey{objectType: objectType, handle: handle}

	d.objectsMutex.Lock()
	object, ok := d.objects.Get(key)
	if ok {
		d.objects.Delete(key)
	}
	d.objectsMutex.Unlock()

	if !ok {
		return errors.Wrapf(ErrUnknownHandle, "%s", diag.Object{Type: objectType, Handle: uint64(handle)})
	}

	object.markDestroyed()
	d.logger.Debug("Device::Destroy", slog.String("object", object.Object().String()))
	return nil
}

// ObjectCount returns the number of live tracked objects
func (d *Device) ObjectCount() int {
	d.objectsMutex.RLock()
	defer d.objectsMutex.RUnlock()

	return d.objects.Count()
}

func objectTypeOf[T Object]() diag.ObjectType {
	var zero T
	switch any(zero).(type) {
	case *DeviceMemory:
		return diag.ObjectTypeDeviceMemory
	case *Buffer:
		return diag.ObjectTypeBuffer
	case *Image:
		return diag.ObjectTypeImage
	case *ImageView:
		return diag.ObjectTypeImageView
	case *Sampler:
		return diag.ObjectTypeSampler
	case *AccelerationStructure:
		return diag.ObjectTypeAccelerationStructure
	case *Tensor:
		return diag.ObjectTypeTensor
	case *TensorView:
		return diag.ObjectTypeTensorView
	case *DescriptorSetLayout:
		return diag.ObjectTypeDescriptorSetLayout
	case *DescriptorSet:
		return diag.ObjectTypeDescriptorSet
	case *PipelineLayout:
		return diag.ObjectTypePipelineLayout
	case *Pipeline:
		return diag.ObjectTypePipeline
	case *RenderPass:
		return diag.ObjectTypeRenderPass
	case *Framebuffer:
		return diag.ObjectTypeFramebuffer
	case *CommandBuffer:
		return diag.ObjectTypeCommandBuffer
	}
	return diag.ObjectTypeUnknown
}

// Get looks up a live object by handle
func Get[T Object](d *Device, handle Handle) (T, error) {
	var zero T

	object, err := d.lookup(objectTypeOf[T](), handle)
	if err != nil {
		return zero, err
	}

	typed, ok := object.(T)
	if !ok {
		return zero, errors.Newf("%s is registered with an unexpected type", object.Object())
	}
	return typed, nil
}
