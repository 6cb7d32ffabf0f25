package validator

import "github.com/vkngwrapper/core/v2/common"

// CreateFlags indicate specific validator behaviors to activate or deactivate
type CreateFlags int32

var validatorCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	validatorCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return validatorCreateFlagsMapping.FlagsToString(f)
}

const (
	// ValidatorCreateDisableDescriptorCache causes every bound descriptor set to be fully validated on
	// every draw, regardless of whether it has changed since it was last validated
	ValidatorCreateDisableDescriptorCache CreateFlags = 1 << iota
	// ValidatorCreateDisableImageLayoutValidation indicates that image layouts are not being tracked, so
	// image layout transitions do not invalidate cached descriptor validation results
	ValidatorCreateDisableImageLayoutValidation
)

func init() {
	ValidatorCreateDisableDescriptorCache.Register("ValidatorCreateDisableDescriptorCache")
	ValidatorCreateDisableImageLayoutValidation.Register("ValidatorCreateDisableImageLayoutValidation")
}

// CreateOptions contains optional settings when creating a Validator
type CreateOptions struct {
	// Flags indicates specific validator behaviors to activate or deactivate
	Flags CreateFlags
}
