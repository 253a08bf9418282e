package blockmapping

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLegacyName  = errors.New("block name missing from legacy id table")
	ErrLegacyIDRange      = errors.New("legacy id out of range")
	ErrUnknownPropertyTag = errors.New("unsupported property tag type")
	ErrMissingSentinel    = errors.New("sentinel block not mapped")
	ErrDuplicateEpoch     = errors.New("duplicate epoch")
	ErrUnknownRuntimeID   = errors.New("unknown runtime id")
	ErrNoEpochs           = errors.New("no epochs configured")
)

// ConfigError is returned when the descriptive tables of an epoch are
// inconsistent. The epoch can not be built.
type ConfigError struct {
	Epoch    string
	Resource string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("epoch %s: %s: %v", e.Epoch, e.Resource, e.Err)
	}
	return fmt.Sprintf("epoch %s: %v", e.Epoch, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
