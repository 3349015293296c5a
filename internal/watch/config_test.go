// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"testing"

	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "zero value is valid (defaults apply)",
			cfg:  Config{},
		},
		{
			name: "all valid fields",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{"**/*.py", "pyproject.toml"},
				Ignore:   []gatefile.GlobPattern{"**/migrations/**"},
				BaseDir:  "/home/user/project",
			},
		},
		{
			name: "empty pattern slices are valid",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{},
				Ignore:   []gatefile.GlobPattern{},
			},
		},
		{
			name: "non-pattern fields do not affect validity",
			cfg: Config{
				ClearScreen: true,
				Patterns:    []gatefile.GlobPattern{"**/*.py"},
			},
		},
		{
			name: "empty watch pattern",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{""},
			},
			wantErr: true,
		},
		{
			name: "empty ignore pattern",
			cfg: Config{
				Ignore: []gatefile.GlobPattern{""},
			},
			wantErr: true,
		},
		{
			name: "whitespace-only base directory",
			cfg: Config{
				BaseDir: types.FilesystemPath("   "),
			},
			wantErr: true,
		},
		{
			name: "invalid pattern syntax",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{"[invalid"},
			},
			wantErr: true,
		},
		{
			name: "multiple invalid fields",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{"", "**/*.py", ""},
				Ignore:   []gatefile.GlobPattern{""},
				BaseDir:  types.FilesystemPath("   "),
			},
			wantErr: true,
		},
		{
			name: "valid patterns with empty base directory (uses cwd default)",
			cfg: Config{
				Patterns: []gatefile.GlobPattern{"**/*.py"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate_SentinelError(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Patterns: []gatefile.GlobPattern{""},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !errors.Is(err, ErrInvalidWatchConfig) {
		t.Errorf("error should wrap ErrInvalidWatchConfig, got: %v", err)
	}

	var configErr *InvalidWatchConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("error should be *InvalidWatchConfigError, got: %T", err)
	}
	if len(configErr.FieldErrors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(configErr.FieldErrors))
	}
}

func TestConfigValidate_MultipleFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Patterns: []gatefile.GlobPattern{"", ""},
		Ignore:   []gatefile.GlobPattern{""},
		BaseDir:  types.FilesystemPath("   "),
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid config")
	}

	var configErr *InvalidWatchConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("error should be *InvalidWatchConfigError, got: %T", err)
	}
	// 2 empty Patterns + 1 empty Ignore + 1 whitespace BaseDir = 4 field errors.
	if len(configErr.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(configErr.FieldErrors), configErr.FieldErrors)
	}

	if configErr.Error() == "" {
		t.Error("Error() returned empty string")
	}
}

func TestInvalidWatchConfigError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &InvalidWatchConfigError{
		FieldErrors: []error{errors.New("test")},
	}
	if !errors.Is(err, ErrInvalidWatchConfig) {
		t.Error("Unwrap() should return ErrInvalidWatchConfig")
	}
}
