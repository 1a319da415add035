package boomer

import (
	"errors"
	"fmt"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// ErrMissingInput indicates an absent or empty BOM or PnP grid.
var ErrMissingInput = errors.New("missing input data")

// ErrConfiguration indicates a column mapping that does not fit its grid.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError describes a column mapping problem for one file role.
type ConfigurationError struct {
	Role  models.Role
	Field string // "designator", "comment", "x", "y", "layer", "footprint", "rows", "columns"
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Role, e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(role models.Role, field string, err error) *ConfigurationError {
	return &ConfigurationError{
		Role:  role,
		Field: field,
		Err:   err,
	}
}

func configErrorf(role models.Role, field, format string, args ...any) *ConfigurationError {
	return NewConfigurationError(role, field, fmt.Errorf(format, args...))
}
