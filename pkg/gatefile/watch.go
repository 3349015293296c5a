// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDebounce is the quiet period applied when a watch config does not
// set one.
const DefaultDebounce = 500 * time.Millisecond

// WatchConfig defines file-watching behavior for automatic re-runs of the
// gate in watch mode.
type WatchConfig struct {
	// Patterns lists glob patterns for files that trigger a re-run.
	// Supports ** for recursive matching (e.g., "src/**/*.py").
	// Paths are relative to the project root. When empty the CLI falls
	// back to watching all Python sources.
	Patterns []GlobPattern `json:"patterns,omitempty"`
	// Ignore lists glob patterns excluded from watching. Virtualenv and
	// cache directories are always ignored regardless of this list.
	Ignore []GlobPattern `json:"ignore,omitempty"`
	// Debounce specifies the quiet period before a re-run after a change.
	// Must be a valid Go duration string. Default: "500ms".
	Debounce string `json:"debounce,omitempty"`
	// ClearScreen clears the terminal before each re-run.
	ClearScreen bool `json:"clear_screen,omitempty"`
}

// Validate checks the debounce duration and every glob pattern.
func (w *WatchConfig) Validate() error {
	var errs []error
	if _, err := w.ParseDebounce(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range w.Patterns {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range w.Ignore {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseDebounce parses the Debounce field into a time.Duration.
// Returns (0, nil) when Debounce is empty (caller should apply
// DefaultDebounce). Returns an error for zero or negative durations, which
// callers treat as fatal rather than falling back to a default.
func (w *WatchConfig) ParseDebounce() (time.Duration, error) {
	if w.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", w.Debounce, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid debounce %q: must be a positive duration", w.Debounce)
	}
	return d, nil
}
