package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration indicates a missing or invalid required option.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError lists the problems found in a configuration.
type ConfigurationError struct {
	Problems []string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Is implements errors.Is support
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
