// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs the gate when project files change.
//
// It monitors the project tree for paths matching glob patterns and invokes
// a callback after a configurable debounce period. Events within the
// debounce window are coalesced so the callback fires once with the full
// set of changed paths. The defaults are tuned for Python projects: only
// sources and lint configuration trigger re-runs, and virtualenv and cache
// directories are never watched.
package watch

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/lintgate/lintgate/pkg/gatefile"
)

// defaultDebounce is the quiet period after the last filesystem event
// before the callback fires. Editors tend to write-then-rename, producing
// bursts that should land as one re-run.
const defaultDebounce = 500 * time.Millisecond

// defaultPatterns selects the files whose changes affect a lint verdict:
// Python sources plus the configuration files the gate and common lint
// tools read.
var defaultPatterns = []gatefile.GlobPattern{
	"**/*.py",
	"**/*.pyi",
	"gatefile.cue",
	"pyproject.toml",
	"setup.cfg",
	".flake8",
	".pylintrc",
	"ruff.toml",
	".ruff.toml",
}

// defaultIgnores are excluded unconditionally, on top of whatever the user
// ignores: VCS metadata, virtualenvs, Python tool caches, editor swap
// files, and OS droppings, all of which churn without affecting the
// verdict.
var defaultIgnores = []gatefile.GlobPattern{
	"**/.git/**",
	"**/.venv/**",
	"**/__pycache__/**",
	"**/.mypy_cache/**",
	"**/.ruff_cache/**",
	"**/.pytest_cache/**",
	"**/.tox/**",
	"**/*.egg-info/**",
	"**/node_modules/**",
	"**/*.pyc",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Watcher monitors the project tree and fires a debounced callback when
// matching files change. Run must be called exactly once; calling it a
// second time returns an error.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	patterns []gatefile.GlobPattern
	ignores  []gatefile.GlobPattern
	stdout   io.Writer
	logger   *log.Logger
	debounce time.Duration
	baseDir  string
	started  atomic.Bool
}

// New builds a Watcher for cfg: BaseDir resolved to an absolute path, an
// fsnotify watcher created, and every directory under BaseDir except the
// ignored ones registered with it.
func New(cfg Config) (*Watcher, error) {
	// Validate eagerly so invalid globs fail at construction time rather
	// than silently failing to match at runtime.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir.String()
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "watch",
		})
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	// Built-in ignores always apply; user ignores extend them.
	ignores := make([]gatefile.GlobPattern, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		ignores:  ignores,
		stdout:   stdout,
		logger:   logger,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Debug("close after init failure", "error", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Run processes filesystem events and dispatches debounced callbacks
// until ctx is cancelled. Cancellation returns nil; a fatal watcher error
// ends the loop with that error. Run is single-shot: a second call fails
// immediately.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire hands the accumulated pending set to OnChange. time.AfterFunc
	// can still invoke it after cancellation, so ctx.Err() is checked
	// first; the remaining race between that check and the callback is
	// the callback's to handle via the ctx it receives. The `running`
	// flag keeps a gate run that outlasts the debounce window from
	// overlapping the next one.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Warn("gate still running, deferring re-run")
			// Re-arm the timer, otherwise the pending set would sit
			// undelivered until some future filesystem event.
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Collect(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			// Clear screen, cursor home.
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("re-run failed", "error", err)
			}
		}
	}

	// Drain the timer channel on exit. timer is read under mu because the
	// event loop writes it under the same lock.
	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil && !localTimer.Stop() {
			select {
			case <-localTimer.C:
			default:
			}
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Debug("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}

			if w.isIgnored(rel) {
				continue
			}

			// Register new directories before pattern filtering: a created
			// directory rarely matches a file pattern like "**/*.py", but
			// its future contents must still be watched.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			// Metadata-only changes do not affect the lint verdict.
			if evt.Op == fsnotify.Chmod {
				continue
			}

			if !w.matchesPatterns(rel) {
				continue
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed unexpectedly")
			}
			// Resource exhaustion (inotify limit, fd limits) means the
			// watcher cannot make progress; anything else is logged and
			// survived. The classifier lives in watcher_fatal_*.go.
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal watcher error: %w", err)
			}
			w.logger.Warn("filesystem watch error", "error", err)
		}
	}
}

// addDirectories registers every non-ignored directory under BaseDir with
// fsnotify. Watch patterns play no part here; they filter events as they
// arrive (see matchesPatterns).
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(p string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			// Skip what we cannot read instead of aborting the walk;
			// unreadable subdirectories are routine. The debug log names
			// the paths that end up unwatched.
			w.logger.Debug("skipping inaccessible path", "path", p, "error", walkDirErr)
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.baseDir, p)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}

		// Prune ignored directories instead of descending. Cutting .venv
		// and tool caches here is what keeps large projects under the
		// inotify watch limit.
		if rel != "." && w.isIgnoredDir(rel) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(p); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", p, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// maybeAddDir registers p when it is a non-ignored directory, so trees
// created after the initial walk are watched too.
func (w *Watcher) maybeAddDir(p string) {
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, p)
	if err != nil {
		return
	}

	if w.isIgnoredDir(rel) {
		return
	}

	if addErr := w.fsw.Add(p); addErr != nil {
		w.logger.Warn("add new directory", "path", p, "error", addErr)
	}
}

// isIgnored reports whether rel (relative to BaseDir) matches an ignore
// pattern. Globs match on forward slashes on every platform.
func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if pat.Match(normalized) {
			return true
		}
	}
	return false
}

// isIgnoredDir reports whether a directory at rel should be pruned from
// watching. Directory-content patterns like "**/.venv/**" name paths inside
// the directory, not the directory itself, so the check also probes with a
// synthetic child path.
func (w *Watcher) isIgnoredDir(rel string) bool {
	normalized := filepath.ToSlash(rel)
	probe := path.Join(normalized, "x")
	for _, pat := range w.ignores {
		if pat.Match(normalized) || pat.Match(probe) {
			return true
		}
	}
	return false
}

// matchesPatterns returns true if the given path (relative to BaseDir)
// matches at least one watch pattern.
func (w *Watcher) matchesPatterns(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.patterns {
		if pat.Match(normalized) {
			return true
		}
	}
	return false
}

// DefaultPatterns returns a copy of the built-in watch patterns applied when
// a Config names none.
func DefaultPatterns() []gatefile.GlobPattern {
	return slices.Clone(defaultPatterns)
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []gatefile.GlobPattern {
	return slices.Clone(defaultIgnores)
}
