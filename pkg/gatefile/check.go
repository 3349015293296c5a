// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// RuntimeNative executes check scripts with the system shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual executes check scripts with the embedded POSIX
	// interpreter (mvdan/sh). This is the default.
	RuntimeVirtual RuntimeMode = "virtual"
	// RuntimeContainer executes check scripts inside a disposable container.
	RuntimeContainer RuntimeMode = "container"
)

var (
	// ErrInvalidCheckName is the sentinel error wrapped by InvalidCheckNameError.
	ErrInvalidCheckName = errors.New("invalid check name")
	// ErrInvalidRuntimeMode is the sentinel error wrapped by InvalidRuntimeModeError.
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
	// ErrEmptyCheckScript is returned when a check has no script to run.
	ErrEmptyCheckScript = errors.New("check script must not be empty")

	// checkNamePattern keeps check names lowercase so they read uniformly
	// in reports and log lines.
	checkNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

type (
	// CheckName identifies a custom check in reports and logs.
	CheckName string

	// RuntimeMode selects how a check script executes. The zero value
	// means RuntimeVirtual.
	RuntimeMode string

	// InvalidCheckNameError is returned when a CheckName is empty or not
	// lowercase alphanumeric. It wraps ErrInvalidCheckName for
	// errors.Is() compatibility.
	InvalidCheckNameError struct {
		Value CheckName
	}

	// InvalidRuntimeModeError is returned when a RuntimeMode value is not
	// one of the defined modes. It wraps ErrInvalidRuntimeMode for
	// errors.Is() compatibility.
	InvalidRuntimeModeError struct {
		Value RuntimeMode
	}
)

func (e InvalidCheckNameError) Error() string {
	if e.Value == "" {
		return "invalid check name: must not be empty"
	}
	return fmt.Sprintf("invalid check name %q: must match %s", e.Value, checkNamePattern)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidCheckNameError) Unwrap() error { return ErrInvalidCheckName }

func (e InvalidRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q: must be %q, %q, or %q",
		e.Value, RuntimeNative, RuntimeVirtual, RuntimeContainer)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidRuntimeModeError) Unwrap() error { return ErrInvalidRuntimeMode }

// Validate checks that the name is lowercase alphanumeric.
func (n CheckName) Validate() error {
	if !checkNamePattern.MatchString(string(n)) {
		return InvalidCheckNameError{Value: n}
	}
	return nil
}

// String returns the check name as a plain string.
func (n CheckName) String() string { return string(n) }

// Validate checks that the mode is one of the defined values. The zero
// value is valid and means RuntimeVirtual.
func (m RuntimeMode) Validate() error {
	switch m {
	case "", RuntimeNative, RuntimeVirtual, RuntimeContainer:
		return nil
	default:
		return InvalidRuntimeModeError{Value: m}
	}
}

// OrDefault resolves the zero value to RuntimeVirtual.
func (m RuntimeMode) OrDefault() RuntimeMode {
	if m == "" {
		return RuntimeVirtual
	}
	return m
}

// ParseRuntimeMode parses a string into a RuntimeMode.
// Returns the zero value for empty input, which means "no override".
func ParseRuntimeMode(value string) (RuntimeMode, error) {
	m := RuntimeMode(value)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Check is a named shell script run after the lint tool passes. A
// non-zero exit from the script fails the gate.
type Check struct {
	// Name identifies the check in reports and logs (required).
	Name CheckName `json:"name"`
	// Script is the shell script to run (required).
	Script string `json:"script"`
	// Runtime selects how the script executes. Defaults to RuntimeVirtual.
	Runtime RuntimeMode `json:"runtime,omitempty"`
	// Image overrides the container image for RuntimeContainer.
	Image string `json:"image,omitempty"`
}

// Validate checks the check's name, script, and runtime selection.
func (c *Check) Validate() error {
	var errs []error
	if err := c.Name.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Script) == "" {
		errs = append(errs, ErrEmptyCheckScript)
	}
	if err := c.Runtime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Image != "" && c.Runtime.OrDefault() != RuntimeContainer {
		errs = append(errs, fmt.Errorf("check %q: image is only valid with the container runtime", c.Name))
	}
	return errors.Join(errs...)
}
