// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

// fakeLookup returns a lookupEnv function backed by a map.
func fakeLookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

// fakeStat returns a statFile function that reports existence for the given paths.
func fakeStat(existing map[string]bool) func(string) error {
	return func(path string) error {
		if existing[path] {
			return nil
		}
		return errors.New("not found")
	}
}

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      map[string]string
		existing map[string]bool
		want     SandboxType
	}{
		{
			name: "no sandbox",
			want: SandboxNone,
		},
		{
			name:     "flatpak detected via marker file",
			existing: map[string]bool{"/.flatpak-info": true},
			want:     SandboxFlatpak,
		},
		{
			name: "snap detected via env var",
			env:  map[string]string{"SNAP_NAME": "lintgate"},
			want: SandboxSnap,
		},
		{
			name:     "flatpak takes precedence over snap",
			env:      map[string]string{"SNAP_NAME": "lintgate"},
			existing: map[string]bool{"/.flatpak-info": true},
			want:     SandboxFlatpak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := detectSandboxFrom(fakeLookup(tt.env), fakeStat(tt.existing))
			if got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpawnCommandFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st   SandboxType
		want string
	}{
		{SandboxNone, ""},
		{SandboxFlatpak, "flatpak-spawn"},
		{SandboxSnap, "snap"},
		{SandboxType("unknown"), ""},
	}

	for _, tt := range tests {
		if got := SpawnCommandFor(tt.st); got != tt.want {
			t.Errorf("SpawnCommandFor(%q) = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestSpawnArgsFor(t *testing.T) {
	t.Parallel()

	if got := SpawnArgsFor(SandboxNone); got != nil {
		t.Errorf("SpawnArgsFor(none) = %v, want nil", got)
	}
	if got := SpawnArgsFor(SandboxFlatpak); len(got) != 1 || got[0] != "--host" {
		t.Errorf("SpawnArgsFor(flatpak) = %v, want [--host]", got)
	}
	if got := SpawnArgsFor(SandboxSnap); len(got) != 2 || got[0] != "run" || got[1] != "--shell" {
		t.Errorf("SpawnArgsFor(snap) = %v, want [run --shell]", got)
	}
}
