package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every configuration error returned by game
// and strategy constructors.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError reports an invalid parameter. It is fatal: nothing in the
// engine recovers from it.
type ConfigError struct {
	Param  string
	Reason string
}

// NewConfigError returns a ConfigError for param.
func NewConfigError(param, format string, args ...any) *ConfigError {
	return &ConfigError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
