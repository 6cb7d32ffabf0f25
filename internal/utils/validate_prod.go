//go:build !debug_validation

package utils

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_validation build tag is present
func DebugValidate(validatable Validatable) {
}
