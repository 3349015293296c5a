// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	"errors"
	"testing"
)

func TestCheckNameValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   CheckName
		wantErr bool
	}{
		{"simple name", "types", false},
		{"name with dash", "type-check", false},
		{"name with dot", "unit.fast", false},
		{"name with digits", "py312", false},
		{"empty", "", true},
		{"uppercase", "Types", true},
		{"leading dash", "-types", true},
		{"whitespace", "type check", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCheckName) {
				t.Errorf("error %v does not wrap ErrInvalidCheckName", err)
			}
		})
	}
}

func TestRuntimeModeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   RuntimeMode
		wantErr bool
	}{
		{"zero value", "", false},
		{"native", RuntimeNative, false},
		{"virtual", RuntimeVirtual, false},
		{"container", RuntimeContainer, false},
		{"unknown", "docker", true},
		{"uppercase", "NATIVE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRuntimeMode) {
				t.Errorf("error %v does not wrap ErrInvalidRuntimeMode", err)
			}
		})
	}
}

func TestRuntimeModeOrDefault(t *testing.T) {
	t.Parallel()

	if got := RuntimeMode("").OrDefault(); got != RuntimeVirtual {
		t.Errorf("zero value OrDefault() = %q, want %q", got, RuntimeVirtual)
	}
	if got := RuntimeNative.OrDefault(); got != RuntimeNative {
		t.Errorf("RuntimeNative.OrDefault() = %q, want %q", got, RuntimeNative)
	}
}

func TestParseRuntimeMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    RuntimeMode
		wantErr bool
	}{
		{"empty means no override", "", "", false},
		{"native", "native", RuntimeNative, false},
		{"virtual", "virtual", RuntimeVirtual, false},
		{"container", "container", RuntimeContainer, false},
		{"invalid", "vm", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRuntimeMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRuntimeMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRuntimeMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		check   Check
		wantErr bool
	}{
		{
			name:    "minimal valid check",
			check:   Check{Name: "types", Script: "mypy src/"},
			wantErr: false,
		},
		{
			name:    "container check with image",
			check:   Check{Name: "docs", Script: "sphinx-build docs out", Runtime: RuntimeContainer, Image: "python:3.12-slim"},
			wantErr: false,
		},
		{
			name:    "missing name",
			check:   Check{Script: "mypy src/"},
			wantErr: true,
		},
		{
			name:    "empty script",
			check:   Check{Name: "types", Script: "   "},
			wantErr: true,
		},
		{
			name:    "bad runtime",
			check:   Check{Name: "types", Script: "mypy src/", Runtime: "vm"},
			wantErr: true,
		},
		{
			name:    "image without container runtime",
			check:   Check{Name: "types", Script: "mypy src/", Runtime: RuntimeNative, Image: "python:3.12"},
			wantErr: true,
		},
		{
			name:    "image with default runtime",
			check:   Check{Name: "types", Script: "mypy src/", Image: "python:3.12"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.check.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
