// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// FallbackNone fails resolution when the tool is missing from the
	// virtualenv. This is the default policy.
	FallbackNone FallbackPolicy = "none"
	// FallbackSystem falls back to the system PATH when the tool is
	// missing from the virtualenv.
	FallbackSystem FallbackPolicy = "system"
)

var (
	// ErrInvalidToolName is the sentinel error wrapped by InvalidToolNameError.
	ErrInvalidToolName = errors.New("invalid tool name")
	// ErrInvalidFallbackPolicy is the sentinel error wrapped by InvalidFallbackPolicyError.
	ErrInvalidFallbackPolicy = errors.New("invalid fallback policy")

	// toolNamePattern matches bare executable names. Path separators are
	// rejected so resolution always goes through the venv bin directory.
	toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

type (
	// ToolName is the executable name of a lint tool, e.g. "ruff" or
	// "flake8". It must be a bare name without path separators.
	ToolName string

	// FallbackPolicy controls tool resolution when the tool is missing
	// from the virtualenv. The zero value means FallbackNone.
	FallbackPolicy string

	// InvalidToolNameError is returned when a ToolName is empty or
	// contains characters outside the allowed set. It wraps
	// ErrInvalidToolName for errors.Is() compatibility.
	InvalidToolNameError struct {
		Value ToolName
	}

	// InvalidFallbackPolicyError is returned when a FallbackPolicy value
	// is not one of the defined policies. It wraps
	// ErrInvalidFallbackPolicy for errors.Is() compatibility.
	InvalidFallbackPolicyError struct {
		Value FallbackPolicy
	}
)

func (e InvalidToolNameError) Error() string {
	if e.Value == "" {
		return "invalid tool name: must not be empty"
	}
	return fmt.Sprintf("invalid tool name %q: must match %s", e.Value, toolNamePattern)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidToolNameError) Unwrap() error { return ErrInvalidToolName }

func (e InvalidFallbackPolicyError) Error() string {
	return fmt.Sprintf("invalid fallback policy %q: must be %q or %q", e.Value, FallbackNone, FallbackSystem)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidFallbackPolicyError) Unwrap() error { return ErrInvalidFallbackPolicy }

// Validate checks that the tool name is a bare executable name.
func (n ToolName) Validate() error {
	if !toolNamePattern.MatchString(string(n)) {
		return InvalidToolNameError{Value: n}
	}
	return nil
}

// String returns the tool name as a plain string.
func (n ToolName) String() string { return string(n) }

// Validate checks that the policy is one of the defined values. The zero
// value is valid and means FallbackNone.
func (p FallbackPolicy) Validate() error {
	switch p {
	case "", FallbackNone, FallbackSystem:
		return nil
	default:
		return InvalidFallbackPolicyError{Value: p}
	}
}

// AllowsSystem reports whether resolution may fall back to the system PATH.
func (p FallbackPolicy) AllowsSystem() bool { return p == FallbackSystem }

// ParseFallbackPolicy parses a string into a FallbackPolicy.
// Returns the zero value for empty input, which means "no override".
func ParseFallbackPolicy(value string) (FallbackPolicy, error) {
	p := FallbackPolicy(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// ToolSpec configures the lint tool resolved inside the virtualenv.
type ToolSpec struct {
	// Name is the tool executable name (required).
	Name ToolName `json:"name"`
	// Args replace the tool's default arguments when set.
	Args []string `json:"args,omitempty"`
	// Fallback controls resolution when the tool is missing from the
	// virtualenv. Defaults to FallbackNone.
	Fallback FallbackPolicy `json:"fallback,omitempty"`
}

// Validate checks the tool name and fallback policy.
func (t *ToolSpec) Validate() error {
	var errs []error
	if err := t.Name.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := t.Fallback.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
