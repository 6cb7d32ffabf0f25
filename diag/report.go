package diag

import (
	"fmt"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/validation/internal/utils"
	"golang.org/x/exp/slog"
)

// ReportFlags indicate specific report behaviors to activate or deactivate
type ReportFlags int32

var reportFlagsMapping = common.NewFlagStringMapping[ReportFlags]()

func (f ReportFlags) Register(str string) {
	reportFlagsMapping.Register(f, str)
}
func (f ReportFlags) String() string {
	return reportFlagsMapping.FlagsToString(f)
}

const (
	// ReportSuppressOnError causes every reported error to request suppression of the Vulkan call
	// that produced it. Without it, only the Callback can request suppression.
	ReportSuppressOnError ReportFlags = 1 << iota
	// ReportExternallySynchronized ensures the report will not be synchronized internally. The consumer
	// must guarantee it is only logged to from one thread at a time.
	ReportExternallySynchronized
)

func init() {
	ReportSuppressOnError.Register("ReportSuppressOnError")
	ReportExternallySynchronized.Register("ReportExternallySynchronized")
}

// MessengerCallback receives every message that passes muting and the duplicate limit, in the manner of
// a debug utils messenger. Returning true requests that the Vulkan call be suppressed.
type MessengerCallback func(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, messageType ext_debug_utils.DebugUtilsMessageTypeFlags, message *Message) bool

// ReportOptions contains optional settings when creating a Report
type ReportOptions struct {
	Flags ReportFlags
	// DuplicateMessageLimit is the number of times a single VUID will be recorded before further
	// messages with that VUID are dropped. 0 means no limit.
	DuplicateMessageLimit int
	// MutedMessageIDs lists VUIDs that are never recorded
	MutedMessageIDs []string
	Callback        MessengerCallback
}

// Message is a single recorded diagnostic
type Message struct {
	Severity ext_debug_utils.DebugUtilsMessageSeverityFlags
	Type     ext_debug_utils.DebugUtilsMessageTypeFlags
	VUID     string
	Objects  ObjectList
	Location Location
	Text     string
}

func (m *Message) String() string {
	return fmt.Sprintf("[ %s ] Objects: %s | %s: %s", m.VUID, m.Objects, m.Location, m.Text)
}

// Report is the default Logger: it records every diagnostic, writes it to a slog.Logger, and forwards it
// to an optional callback
type Report struct {
	logger  *slog.Logger
	flags   ReportFlags
	limit   int
	muted   map[string]struct{}
	handler MessengerCallback

	mutex    utils.OptionalMutex
	counts   map[string]int
	messages []Message
}

var _ Logger = &Report{}

func NewReport(logger *slog.Logger, options ReportOptions) *Report {
	if logger == nil {
		logger = slog.Default()
	}

	muted := make(map[string]struct{}, len(options.MutedMessageIDs))
	for _, id := range options.MutedMessageIDs {
		muted[id] = struct{}{}
	}

	return &Report{
		logger:  logger,
		flags:   options.Flags,
		limit:   options.DuplicateMessageLimit,
		muted:   muted,
		handler: options.Callback,

		mutex: utils.OptionalMutex{
			UseMutex: options.Flags&ReportExternallySynchronized == 0,
		},
		counts: make(map[string]int),
	}
}

func (r *Report) LogError(vuid string, objects ObjectList, loc Location, format string, args ...any) bool {
	return r.log(ext_debug_utils.SeverityError, vuid, objects, loc, format, args...)
}

func (r *Report) LogWarning(vuid string, objects ObjectList, loc Location, format string, args ...any) bool {
	return r.log(ext_debug_utils.SeverityWarning, vuid, objects, loc, format, args...)
}

func (r *Report) log(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, vuid string, objects ObjectList, loc Location, format string, args ...any) bool {
	if _, isMuted := r.muted[vuid]; isMuted {
		return false
	}

	message := Message{
		Severity: severity,
		Type:     ext_debug_utils.TypeValidation,
		VUID:     vuid,
		Objects:  objects,
		Location: loc,
		Text:     fmt.Sprintf(format, args...),
	}

	if !r.record(message) {
		return false
	}

	attrs := []any{
		slog.String("vuid", vuid),
		slog.String("location", loc.String()),
		slog.String("objects", objects.String()),
	}
	if severity == ext_debug_utils.SeverityError {
		r.logger.Error(message.Text, attrs...)
	} else {
		r.logger.Warn(message.Text, attrs...)
	}

	skip := false
	if r.handler != nil {
		skip = r.handler(severity, message.Type, &message)
	}

	if severity == ext_debug_utils.SeverityError && r.flags&ReportSuppressOnError != 0 {
		skip = true
	}

	return skip
}

func (r *Report) record(message Message) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.counts[message.VUID]++
	if r.limit > 0 && r.counts[message.VUID] > r.limit {
		return false
	}

	r.messages = append(r.messages, message)
	return true
}

// Messages returns a copy of every recorded message, in the order they were reported
func (r *Report) Messages() []Message {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	messages := make([]Message, len(r.messages))
	copy(messages, r.messages)
	return messages
}

// Count returns the number of recorded messages tagged with vuid
func (r *Report) Count(vuid string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	count := 0
	for i := range r.messages {
		if r.messages[i].VUID == vuid {
			count++
		}
	}
	return count
}

func (r *Report) HasVUID(vuid string) bool {
	return r.Count(vuid) > 0
}

// ErrorCount returns the number of recorded messages with error severity
func (r *Report) ErrorCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	count := 0
	for i := range r.messages {
		if r.messages[i].Severity == ext_debug_utils.SeverityError {
			count++
		}
	}
	return count
}

// Clear drops every recorded message and resets duplicate counting
func (r *Report) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.messages = nil
	r.counts = make(map[string]int)
}

func (r *Report) PrintJSON(writer *jwriter.Writer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	obj := writer.Object()
	defer obj.End()

	obj.Name("MessageCount").Int(len(r.messages))

	messages := obj.Name("Messages").Array()
	for i := range r.messages {
		message := &r.messages[i]

		messageObj := messages.Object()
		messageObj.Name("Severity").String(message.Severity.String())
		messageObj.Name("VUID").String(message.VUID)
		messageObj.Name("Location").String(message.Location.String())

		objects := messageObj.Name("Objects").Array()
		for _, object := range message.Objects {
			objectObj := objects.Object()
			objectObj.Name("Type").String(object.Type.String())
			objectObj.Name("Handle").String(fmt.Sprintf("0x%x", object.Handle))
			objectObj.End()
		}
		objects.End()

		messageObj.Name("Text").String(message.Text)
		messageObj.End()
	}
	messages.End()
}
