// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"testing"
)

func TestToolNameValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   ToolName
		wantErr bool
	}{
		{"ruff", "ruff", false},
		{"flake8", "flake8", false},
		{"pylint", "pylint", false},
		{"name with dots", "python3.12", false},
		{"name with dash", "my-linter", false},
		{"name with underscore", "my_linter", false},
		{"single character", "x", false},
		{"empty", "", true},
		{"leading dash", "-ruff", true},
		{"path separator", "bin/ruff", true},
		{"backslash", `bin\ruff`, true},
		{"parent traversal", "../ruff", true},
		{"whitespace", "ruff check", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidToolName) {
				t.Errorf("error %v does not wrap ErrInvalidToolName", err)
			}
		})
	}
}

func TestFallbackPolicyValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   FallbackPolicy
		wantErr bool
	}{
		{"zero value", "", false},
		{"none", FallbackNone, false},
		{"system", FallbackSystem, false},
		{"unknown", "path", true},
		{"uppercase", "SYSTEM", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFallbackPolicy) {
				t.Errorf("error %v does not wrap ErrInvalidFallbackPolicy", err)
			}
		})
	}
}

func TestFallbackPolicyAllowsSystem(t *testing.T) {
	t.Parallel()

	if FallbackSystem.AllowsSystem() != true {
		t.Error("FallbackSystem.AllowsSystem() = false, want true")
	}
	if FallbackNone.AllowsSystem() != false {
		t.Error("FallbackNone.AllowsSystem() = true, want false")
	}
	if FallbackPolicy("").AllowsSystem() != false {
		t.Error("zero value AllowsSystem() = true, want false")
	}
}

func TestParseFallbackPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    FallbackPolicy
		wantErr bool
	}{
		{"empty means no override", "", "", false},
		{"none", "none", FallbackNone, false},
		{"system", "system", FallbackSystem, false},
		{"invalid", "everywhere", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFallbackPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFallbackPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFallbackPolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToolSpecValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    ToolSpec
		wantErr bool
	}{
		{
			name:    "minimal valid spec",
			spec:    ToolSpec{Name: "ruff"},
			wantErr: false,
		},
		{
			name:    "spec with args and fallback",
			spec:    ToolSpec{Name: "flake8", Args: []string{"--max-line-length", "100"}, Fallback: FallbackSystem},
			wantErr: false,
		},
		{
			name:    "missing name",
			spec:    ToolSpec{},
			wantErr: true,
		},
		{
			name:    "bad fallback",
			spec:    ToolSpec{Name: "ruff", Fallback: "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
