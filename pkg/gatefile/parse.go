// SPDX-License-Identifier: MPL-2.0

package gatefile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lintgate/lintgate/pkg/cueutil"
	"github.com/lintgate/lintgate/pkg/types"
)

//go:embed gatefile_schema.cue
var gatefileSchema string

// Parse reads and parses a gatefile from the given path. The returned
// Gatefile carries the absolute form of path so Root() works.
func Parse(path types.FilesystemPath) (*Gatefile, error) {
	pathStr := string(path)
	data, err := os.ReadFile(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to read gatefile at %s: %w", path, err)
	}

	abs, err := filepath.Abs(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gatefile path %s: %w", path, err)
	}

	return ParseBytes(data, abs)
}

// ParseBytes parses gatefile content from bytes.
// Uses cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema, compile user data, validate and decode.
func ParseBytes(data []byte, path string) (*Gatefile, error) {
	result, err := cueutil.ParseAndDecodeString[Gatefile](
		gatefileSchema,
		data,
		"#Gatefile",
		cueutil.WithFilename(path),
		// A gatefile may be empty or partial; only filled fields need to
		// be concrete.
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}

	gf := result.Value
	gf.FilePath = types.FilesystemPath(path)

	if err := gf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gatefile at %s: %w", path, err)
	}

	return gf, nil
}
