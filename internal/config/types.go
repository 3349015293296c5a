// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ContainerEnginePodman uses Podman as the container engine.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineDocker uses Docker as the container engine.
	ContainerEngineDocker ContainerEngine = "docker"

	// RuntimeNative runs check scripts in the host system shell.
	// Defined locally to avoid coupling config to pkg/gatefile.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs check scripts in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"
	// RuntimeContainer runs check scripts inside a container (Docker/Podman).
	RuntimeContainer RuntimeMode = "container"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// FallbackNone fails hard when the tool is missing from the virtualenv.
	// Defined locally to avoid coupling config to pkg/gatefile.
	FallbackNone FallbackPolicy = "none"
	// FallbackSystem falls back to PATH resolution when the tool is
	// missing from the virtualenv.
	FallbackSystem FallbackPolicy = "system"

	// DefaultContainerImage is the image used for container checks when
	// neither the gatefile nor the config names one.
	DefaultContainerImage = "python:3.12-slim"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfigFallbackPolicy is returned when a config FallbackPolicy value is not recognized.
	ErrInvalidConfigFallbackPolicy = errors.New("invalid tool fallback policy")
	// ErrInvalidToolConfig is the sentinel error wrapped by InvalidToolConfigError.
	ErrInvalidToolConfig = errors.New("invalid tool config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container engine to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// RuntimeMode specifies the execution runtime for check scripts.
	// Defined locally to avoid coupling config to pkg/gatefile;
	// the orchestrator casts to gatefile.RuntimeMode at the boundary.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a config RuntimeMode value is not recognized.
	// It wraps ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// FallbackPolicy specifies how lint tool resolution behaves when the
	// tool is missing from the virtualenv. Defined locally to avoid
	// coupling config to pkg/gatefile.
	FallbackPolicy string

	// InvalidConfigFallbackPolicyError is returned when a config FallbackPolicy
	// value is not recognized. It wraps ErrInvalidConfigFallbackPolicy.
	InvalidConfigFallbackPolicyError struct {
		Value FallbackPolicy
	}

	// InvalidToolConfigError aggregates field errors from ToolConfig validation.
	// It wraps ErrInvalidToolConfig for errors.Is() compatibility.
	InvalidToolConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError aggregates field errors from UIConfig validation.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError aggregates field errors from Config validation.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the top-level lintgate configuration.
	Config struct {
		// ContainerEngine selects the engine for container checks.
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		// ContainerImage is the default image for container checks.
		ContainerImage string `json:"container_image,omitempty" mapstructure:"container_image"`
		// DefaultRuntime applies to checks that don't specify a runtime.
		DefaultRuntime RuntimeMode `json:"default_runtime" mapstructure:"default_runtime"`
		// Tool tunes lint tool resolution.
		Tool ToolConfig `json:"tool" mapstructure:"tool"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ToolConfig tunes lint tool resolution.
	ToolConfig struct {
		// Fallback controls resolution when the tool is missing from the venv.
		Fallback FallbackPolicy `json:"fallback" mapstructure:"fallback"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEnginePodman,
		ContainerImage:  DefaultContainerImage,
		DefaultRuntime:  RuntimeVirtual,
		Tool: ToolConfig{
			Fallback: FallbackNone,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// String returns the string representation of the ContainerEngine.
func (e ContainerEngine) String() string { return string(e) }

// Validate returns an error unless the engine is podman or docker.
func (e ContainerEngine) Validate() error {
	switch e {
	case ContainerEnginePodman, ContainerEngineDocker:
		return nil
	default:
		return &InvalidContainerEngineError{Value: e}
	}
}

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q: must be %q or %q",
		e.Value, ContainerEnginePodman, ContainerEngineDocker)
}

// Unwrap returns ErrInvalidContainerEngine for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// Validate returns an error unless the mode is native, virtual, or container.
func (m RuntimeMode) Validate() error {
	switch m {
	case RuntimeNative, RuntimeVirtual, RuntimeContainer:
		return nil
	default:
		return &InvalidConfigRuntimeModeError{Value: m}
	}
}

// Error implements the error interface for InvalidConfigRuntimeModeError.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q: must be %q, %q, or %q",
		e.Value, RuntimeNative, RuntimeVirtual, RuntimeContainer)
}

// Unwrap returns ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error { return ErrInvalidConfigRuntimeMode }

// String returns the string representation of the ColorScheme.
func (s ColorScheme) String() string { return string(s) }

// Validate returns an error unless the scheme is auto, dark, or light.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: s}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q: must be %q, %q, or %q",
		e.Value, ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the FallbackPolicy.
func (p FallbackPolicy) String() string { return string(p) }

// Validate returns an error unless the policy is none or system.
func (p FallbackPolicy) Validate() error {
	switch p {
	case FallbackNone, FallbackSystem:
		return nil
	default:
		return &InvalidConfigFallbackPolicyError{Value: p}
	}
}

// Error implements the error interface for InvalidConfigFallbackPolicyError.
func (e *InvalidConfigFallbackPolicyError) Error() string {
	return fmt.Sprintf("invalid tool fallback policy %q: must be %q or %q",
		e.Value, FallbackNone, FallbackSystem)
}

// Unwrap returns ErrInvalidConfigFallbackPolicy for errors.Is() compatibility.
func (e *InvalidConfigFallbackPolicyError) Unwrap() error { return ErrInvalidConfigFallbackPolicy }

// Validate returns an error if the ToolConfig has invalid fields.
func (c ToolConfig) Validate() error {
	var errs []error
	if err := c.Fallback.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidToolConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidToolConfigError.
func (e *InvalidToolConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid tool config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid tool config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidToolConfig for errors.Is() compatibility.
func (e *InvalidToolConfigError) Unwrap() error { return ErrInvalidToolConfig }

// Validate returns an error if the UIConfig has invalid fields.
// It delegates to ColorScheme.Validate(); bool fields need no validation.
func (c UIConfig) Validate() error {
	var errs []error
	if err := c.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidUIConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid UI config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid UI config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// Validate returns an error if the Config has invalid fields. It delegates
// to ContainerEngine, DefaultRuntime, Tool, and UI validation; ContainerImage
// is free-form and constrained only by the schema.
func (c *Config) Validate() error {
	var errs []error
	if err := c.ContainerEngine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.DefaultRuntime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Tool.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
