// SPDX-License-Identifier: MPL-2.0

package check

import (
	"errors"
	"fmt"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/pkg/gatefile"
)

const (
	// RuntimeOriginDefault indicates no runtime was configured anywhere.
	RuntimeOriginDefault RuntimeOrigin = iota
	// RuntimeOriginConfig indicates the global config default applied.
	RuntimeOriginConfig
	// RuntimeOriginCheck indicates the check declared its own runtime.
	RuntimeOriginCheck
	// RuntimeOriginFlag indicates a command-line override applied.
	RuntimeOriginFlag
)

// ErrInvalidRuntimeOrigin is the sentinel error wrapped by InvalidRuntimeOriginError.
var ErrInvalidRuntimeOrigin = errors.New("invalid runtime origin")

type (
	// RuntimeOrigin identifies where a runtime selection came from.
	RuntimeOrigin int

	// RuntimeSelection is a resolved runtime mode plus its origin.
	// Fields are unexported for immutability; use Mode() and Origin().
	RuntimeSelection struct {
		mode   gatefile.RuntimeMode
		origin RuntimeOrigin
	}

	// InvalidRuntimeOriginError is returned when a RuntimeOrigin is not
	// one of the defined values. It wraps ErrInvalidRuntimeOrigin for
	// errors.Is() checks.
	InvalidRuntimeOriginError struct {
		Value RuntimeOrigin
	}
)

func (e InvalidRuntimeOriginError) Error() string {
	return fmt.Sprintf("invalid runtime origin %d", int(e.Value))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e InvalidRuntimeOriginError) Unwrap() error { return ErrInvalidRuntimeOrigin }

// String returns a human-readable origin name.
func (o RuntimeOrigin) String() string {
	switch o {
	case RuntimeOriginDefault:
		return "default"
	case RuntimeOriginConfig:
		return "config"
	case RuntimeOriginCheck:
		return "check"
	case RuntimeOriginFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Validate checks that the origin is one of the defined values.
func (o RuntimeOrigin) Validate() error {
	switch o {
	case RuntimeOriginDefault, RuntimeOriginConfig, RuntimeOriginCheck, RuntimeOriginFlag:
		return nil
	default:
		return InvalidRuntimeOriginError{Value: o}
	}
}

// NewRuntimeSelection creates a validated RuntimeSelection.
func NewRuntimeSelection(mode gatefile.RuntimeMode, origin RuntimeOrigin) (RuntimeSelection, error) {
	if err := mode.Validate(); err != nil {
		return RuntimeSelection{}, err
	}
	if err := origin.Validate(); err != nil {
		return RuntimeSelection{}, err
	}
	return RuntimeSelection{mode: mode, origin: origin}, nil
}

// Mode returns the resolved runtime mode.
func (s RuntimeSelection) Mode() gatefile.RuntimeMode { return s.mode }

// Origin returns where the mode came from.
func (s RuntimeSelection) Origin() RuntimeOrigin { return s.origin }

// ResolveToolRuntime applies runtime-selection precedence for the lint
// tool run:
//  1. CLI override
//  2. Config default runtime
//  3. Native
//
// The virtual runtime is the embedded shell for check scripts; the lint
// tool is an external executable, so a virtual selection runs the tool
// natively in the activated environment.
func ResolveToolRuntime(override gatefile.RuntimeMode, cfg *config.Config) (RuntimeSelection, error) {
	sel, err := resolveRuntime(override, "", cfg, gatefile.RuntimeNative)
	if err != nil {
		return RuntimeSelection{}, err
	}
	if sel.mode == gatefile.RuntimeVirtual {
		sel.mode = gatefile.RuntimeNative
	}
	return sel, nil
}

// ResolveCheckRuntime applies runtime-selection precedence for one custom
// check:
//  1. CLI override
//  2. The check's declared runtime
//  3. Config default runtime
//  4. Virtual
func ResolveCheckRuntime(chk gatefile.Check, override gatefile.RuntimeMode, cfg *config.Config) (RuntimeSelection, error) {
	return resolveRuntime(override, chk.Runtime, cfg, gatefile.RuntimeVirtual)
}

func resolveRuntime(override, declared gatefile.RuntimeMode, cfg *config.Config, fallback gatefile.RuntimeMode) (RuntimeSelection, error) {
	if override != "" {
		// Flag values arrive as raw strings; this is where they are
		// validated, for every command alike.
		if err := override.Validate(); err != nil {
			return RuntimeSelection{}, err
		}
		return NewRuntimeSelection(override, RuntimeOriginFlag)
	}

	if declared != "" {
		if err := declared.Validate(); err != nil {
			return RuntimeSelection{}, err
		}
		return NewRuntimeSelection(declared, RuntimeOriginCheck)
	}

	if cfg != nil && cfg.DefaultRuntime != "" {
		mode := gatefile.RuntimeMode(cfg.DefaultRuntime)
		// The CUE schema validates config at load time; verify here to
		// prevent silent fallthrough on an invalid value.
		if err := mode.Validate(); err != nil {
			return RuntimeSelection{}, fmt.Errorf("invalid default_runtime in config: %w", err)
		}
		return NewRuntimeSelection(mode, RuntimeOriginConfig)
	}

	return NewRuntimeSelection(fallback, RuntimeOriginDefault)
}
