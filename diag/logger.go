package diag

// Logger is the sink every validation diagnostic is reported through. Both methods return whether the
// sink wants the Vulkan call that produced the diagnostic to be suppressed.
type Logger interface {
	LogError(vuid string, objects ObjectList, loc Location, format string, args ...any) bool
	LogWarning(vuid string, objects ObjectList, loc Location, format string, args ...any) bool
}
