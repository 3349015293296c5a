// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintgate/lintgate/pkg/platform"
)

// ConfigFilename is the marker file every virtualenv carries at its root.
const ConfigFilename = "pyvenv.cfg"

var (
	// ErrEnvNotFound is the sentinel error wrapped by EnvNotFoundError.
	ErrEnvNotFound = errors.New("virtual environment not found")
	// ErrEnvInvalid is the sentinel error wrapped by EnvInvalidError.
	ErrEnvInvalid = errors.New("virtual environment invalid")
)

type (
	// EnvNotFoundError is returned when the virtualenv directory does not
	// exist. It wraps ErrEnvNotFound for errors.Is() compatibility.
	EnvNotFoundError struct {
		Path string
	}

	// EnvInvalidError is returned when the virtualenv directory exists but
	// does not have the expected layout. It wraps ErrEnvInvalid for
	// errors.Is() compatibility.
	EnvInvalidError struct {
		Path   string
		Reason string
	}

	// Activation is the result of activating a virtualenv: the explicit
	// environment changes a real activation script would make, held as
	// data instead of applied to the process. The process environment and
	// working directory are never touched; Environ() computes what the
	// spawned tool should see.
	Activation struct {
		// Root is the absolute path of the virtualenv directory.
		Root string
		// BinDir is the absolute path of the executable directory inside
		// the virtualenv ("bin" on Unix, "Scripts" on Windows).
		BinDir string
	}
)

func (e EnvNotFoundError) Error() string {
	return fmt.Sprintf("virtual environment not found at %s", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e EnvNotFoundError) Unwrap() error { return ErrEnvNotFound }

func (e EnvInvalidError) Error() string {
	return fmt.Sprintf("virtual environment at %s is invalid: %s", e.Path, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e EnvInvalidError) Unwrap() error { return ErrEnvInvalid }

// Activate verifies the virtualenv beneath root and returns its Activation.
// dir is the env directory relative to root (an absolute dir is used as
// given). Activation is a pure computation: nothing in the process
// environment changes.
//
// A missing directory yields EnvNotFoundError; a directory without the
// expected bin dir and pyvenv.cfg yields EnvInvalidError.
func Activate(root, dir string) (*Activation, error) {
	envRoot := dir
	if !filepath.IsAbs(envRoot) {
		envRoot = filepath.Join(root, dir)
	}

	info, err := os.Stat(envRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, EnvNotFoundError{Path: envRoot}
		}
		return nil, fmt.Errorf("failed to inspect virtual environment at %s: %w", envRoot, err)
	}
	if !info.IsDir() {
		return nil, EnvInvalidError{Path: envRoot, Reason: "not a directory"}
	}

	binDir := filepath.Join(envRoot, platform.VenvBinDir())
	binInfo, err := os.Stat(binDir)
	if err != nil || !binInfo.IsDir() {
		return nil, EnvInvalidError{
			Path:   envRoot,
			Reason: fmt.Sprintf("missing %s directory", platform.VenvBinDir()),
		}
	}

	cfgPath := filepath.Join(envRoot, ConfigFilename)
	if _, err := os.Stat(cfgPath); err != nil {
		return nil, EnvInvalidError{Path: envRoot, Reason: "missing " + ConfigFilename}
	}

	return &Activation{Root: envRoot, BinDir: binDir}, nil
}

// Environ returns a copy of base with the activation applied: the env bin
// dir prepended to PATH, VIRTUAL_ENV set to the env root, and PYTHONHOME
// dropped. base is not modified. Entries keep their relative order; keys
// are compared case-insensitively so Windows "Path" is handled.
func (a *Activation) Environ(base []string) []string {
	out := make([]string, 0, len(base)+1)
	sawPath := false

	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			out = append(out, entry)
			continue
		}
		switch {
		case strings.EqualFold(key, "PATH"):
			sawPath = true
			out = append(out, a.prependPath(entry, key))
		case strings.EqualFold(key, "PYTHONHOME"):
			// A set PYTHONHOME would override the env's interpreter layout.
		case strings.EqualFold(key, "VIRTUAL_ENV"):
			// Replaced below so the entry lands in a stable position.
		default:
			out = append(out, entry)
		}
	}

	if !sawPath {
		out = append(out, "PATH="+a.BinDir)
	}
	out = append(out, "VIRTUAL_ENV="+a.Root)

	return out
}

func (a *Activation) prependPath(entry, key string) string {
	_, value, _ := strings.Cut(entry, "=")
	if value == "" {
		return key + "=" + a.BinDir
	}
	return key + "=" + a.BinDir + string(os.PathListSeparator) + value
}
