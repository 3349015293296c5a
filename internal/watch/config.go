// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns select which files trigger a re-run. Paths are matched
		// relative to BaseDir. An empty slice falls back to the built-in
		// Python defaults (see DefaultPatterns).
		Patterns []gatefile.GlobPattern

		// Ignore are additional patterns for paths that never trigger a
		// re-run. These are merged with the built-in default ignores.
		Ignore []gatefile.GlobPattern

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values fall back to
		// defaultDebounce.
		Debounce time.Duration

		// ClearScreen controls whether the terminal is cleared before each
		// callback invocation by writing ANSI escape sequences to Stdout.
		// No terminal detection is performed; callers should ensure Stdout
		// is a real terminal when enabling this option.
		ClearScreen bool

		// BaseDir is the project root to watch. All patterns are resolved
		// relative to this path. An empty value defaults to the current
		// working directory.
		BaseDir types.FilesystemPath

		// OnChange is called after the debounce window closes with the
		// deduplicated list of changed file paths (relative to BaseDir).
		// A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout receives the clear-screen escape when ClearScreen is set.
		// nil defaults to os.Stdout.
		Stdout io.Writer

		// Logger receives watcher diagnostics (skipped paths, deferred
		// re-runs, non-fatal fsnotify errors). nil defaults to a stderr
		// logger with the "watch" prefix.
		Logger *log.Logger
	}

	// InvalidWatchConfigError is returned by Config.Validate when one or
	// more fields are invalid. It wraps ErrInvalidWatchConfig for
	// errors.Is() compatibility; the individual violations are available
	// in FieldErrors.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config (%d field error(s)): %v",
		len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate checks every glob pattern and the base directory. The zero
// value is valid: empty pattern slices fall back to defaults and an empty
// BaseDir means the current working directory.
func (c *Config) Validate() error {
	var fieldErrs []error

	for _, p := range c.Patterns {
		if err := p.Validate(); err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("watch pattern: %w", err))
		}
	}
	for _, p := range c.Ignore {
		if err := p.Validate(); err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("ignore pattern: %w", err))
		}
	}
	if c.BaseDir != "" {
		if err := c.BaseDir.Validate(); err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("base directory: %w", err))
		}
	}

	if len(fieldErrs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: fieldErrs}
	}
	return nil
}
