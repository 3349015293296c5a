// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

// Simple test schema for parsing tests
const testSchema = `
#TestConfig: {
	name:         string
	count:        int
	enabled:      bool
	description?: string
}
`

// TestConfig is a simple struct for testing generic parsing
type TestConfig struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Run("valid config parses successfully", func(t *testing.T) {
		data := []byte(`
name: "test"
count: 42
enabled: true
description: "A test config"
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Value.Name != "test" {
			t.Errorf("expected name='test', got %q", result.Value.Name)
		}
		if result.Value.Count != 42 {
			t.Errorf("expected count=42, got %d", result.Value.Count)
		}
		if !result.Value.Enabled {
			t.Error("expected enabled=true")
		}
		if result.Value.Description != "A test config" {
			t.Errorf("expected description='A test config', got %q", result.Value.Description)
		}
	})

	t.Run("optional field can be omitted", func(t *testing.T) {
		data := []byte(`
name: "minimal"
count: 1
enabled: false
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Value.Name != "minimal" {
			t.Errorf("expected name='minimal', got %q", result.Value.Name)
		}
		if result.Value.Description != "" {
			t.Errorf("expected empty description, got %q", result.Value.Description)
		}
	})

	t.Run("invalid type returns error", func(t *testing.T) {
		data := []byte(`
name: "test"
count: "not a number"
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil {
			t.Fatal("expected error for type mismatch")
		}
	})

	t.Run("unknown field returns error", func(t *testing.T) {
		data := []byte(`
name: "test"
count: 1
enabled: true
bogus: "field"
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("missing required field with concrete validation returns error", func(t *testing.T) {
		data := []byte(`
name: "test"
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil {
			t.Fatal("expected error for missing required field")
		}
	})

	t.Run("missing field allowed with non-concrete validation", func(t *testing.T) {
		data := []byte(`
name: "test"
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithConcrete(false))
		if err != nil {
			t.Fatalf("ParseAndDecode with WithConcrete(false) failed: %v", err)
		}
	})

	t.Run("invalid schema path returns internal error", func(t *testing.T) {
		data := []byte(`name: "test"`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "   ")
		if err == nil {
			t.Fatal("expected error for blank schema path")
		}
		if !strings.Contains(err.Error(), "internal error") {
			t.Errorf("expected internal error, got: %v", err)
		}
	})

	t.Run("file size limit enforced", func(t *testing.T) {
		data := []byte(`name: "test"` + strings.Repeat(" ", 64))
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithMaxFileSize(16))
		if err == nil {
			t.Fatal("expected error for oversized input")
		}
		if !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("expected size error, got: %v", err)
		}
	})

	t.Run("filename appears in error output", func(t *testing.T) {
		data := []byte(`count: "nope"`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithFilename("custom.cue"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "custom.cue") {
			t.Errorf("expected filename in error, got: %v", err)
		}
	})
}

func TestParseAndDecodeString(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: "via-string"
count: 7
enabled: true
`)
	result, err := ParseAndDecodeString[TestConfig](testSchema, data, "#TestConfig")
	if err != nil {
		t.Fatalf("ParseAndDecodeString failed: %v", err)
	}
	if result.Value.Name != "via-string" {
		t.Errorf("expected name='via-string', got %q", result.Value.Name)
	}
}
