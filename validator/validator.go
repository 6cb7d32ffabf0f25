package validator

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/state"
	"github.com/vkngwrapper/validation/vuid"
	"golang.org/x/exp/slog"
)

// Validator decides, as each draw, dispatch, trace rays, or copy command is recorded, whether the command
// violates a validity rule given everything recorded before it. Every violation is reported through a
// diag.Logger. Validation never modifies recording state: the state package's recording hooks are
// responsible for that, and are expected to run after the PreCallValidate entry point returns.
type Validator struct {
	logger *slog.Logger
	device *state.Device
	sink   diag.Logger
	flags  CreateFlags

	counters counters
}

// New creates a new Validator
//
// device - The tracked device whose command buffers and resources will be validated
//
// sink - Receives every diagnostic. Its return values decide whether a validated command is skipped.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, device *state.Device, sink diag.Logger, options CreateOptions) (*Validator, error) {
	if device == nil {
		return nil, errors.New("validator.New requires a device")
	}
	if sink == nil {
		return nil, errors.New("validator.New requires a diagnostic sink")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{
		logger: logger,
		device: device,
		sink:   sink,
		flags:  options.Flags,
	}, nil
}

func (v *Validator) Device() *state.Device {
	return v.device
}

// Statistics returns a snapshot of the work performed since the validator was created or its statistics
// were last reset
func (v *Validator) Statistics() Statistics {
	return v.counters.snapshot()
}

func (v *Validator) ResetStatistics() {
	v.counters.reset()
}

// PrintJSON writes the validator's configuration and statistics as a JSON object
func (v *Validator) PrintJSON(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("Flags").String(v.flags.String())
	obj.Name("ManyDescriptorsThreshold").Int(v.device.ManyDescriptorsThreshold())

	stats := v.Statistics()
	statsObj := obj.Name("Statistics").Object()
	stats.PrintJSON(&statsObj)
	statsObj.End()
}

// lookup resolves a handle for a validate entry point. Handles that do not name a live object are
// logged and resolve to the zero value: validation of the object is skipped rather than failed,
// since object lifetime validation reports them.
func lookup[T state.Object](v *Validator, loc diag.Location, handle state.Handle) (T, bool) {
	object, err := state.Get[T](v.device, handle)
	if err != nil {
		v.logger.Debug("Validator::lookup",
			slog.String("location", loc.String()),
			slog.String("error", err.Error()),
		)
		return object, false
	}
	return object, true
}

func (v *Validator) finish(skip bool) bool {
	v.counters.commandsValidated.Add(1)
	if skip {
		v.counters.skippedCommands.Add(1)
	}
	return skip
}

func objects(commandBuffer *state.CommandBuffer, others ...diag.Named) diag.ObjectList {
	list := diag.NewObjectList(commandBuffer)
	for _, other := range others {
		list = list.Add(other)
	}
	return list
}

func bindPointOf(kind vuid.CommandKind) state.BindPoint {
	switch {
	case kind.Is(vuid.ClassDispatch):
		return state.BindPointCompute
	case kind.Is(vuid.ClassTraceRays):
		return state.BindPointRayTracing
	default:
		return state.BindPointGraphics
	}
}

// validateCmd applies the rules every recorded command shares: the command buffer must be recording,
// and the command must be inside or outside a render pass as its class requires
func (v *Validator) validateCmd(commandBuffer *state.CommandBuffer, kind vuid.CommandKind, loc diag.Location) bool {
	vuids := vuid.Get(kind)
	skip := false

	if commandBuffer.Phase() != state.PhaseRecording {
		skip = v.sink.LogError(vuids.CommandBufferRecording, objects(commandBuffer), loc,
			"%s is in the %s state, but must be in the recording state. Call vkBeginCommandBuffer() before recording %s.",
			commandBuffer.Object(), commandBuffer.Phase(), kind.Function()) || skip
	}

	insideRenderPass := commandBuffer.InRenderPassScope()
	if kind.Is(vuid.ClassGraphics) && !insideRenderPass {
		skip = v.sink.LogError(vuids.RenderPassScope, objects(commandBuffer), loc,
			"This call must be issued inside an active render pass or dynamic rendering scope.") || skip
	} else if !kind.Is(vuid.ClassGraphics) && insideRenderPass {
		skip = v.sink.LogError(vuids.RenderPassScope, objects(commandBuffer), loc,
			"This call must be issued outside of a render pass or dynamic rendering scope.") || skip
	}

	return skip
}

// validateDrawDispatch runs the checks shared by every draw, dispatch, trace rays, and mesh command
func (v *Validator) validateDrawDispatch(commandBuffer *state.CommandBuffer, kind vuid.CommandKind, loc diag.Location) bool {
	v.logger.Debug("Validator::validateDrawDispatch",
		slog.String("commandBuffer", commandBuffer.Object().String()),
		slog.String("command", kind.String()),
	)

	skip := v.validateCmd(commandBuffer, kind, loc)
	return v.validateActionState(commandBuffer, kind, bindPointOf(kind), loc) || skip
}
