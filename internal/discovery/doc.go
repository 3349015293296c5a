// SPDX-License-Identifier: MPL-2.0

// Package discovery resolves the project root and selects the lint tool.
//
// The two concerns live together deliberately: which tool runs, and with
// what arguments, follows from what root resolution found (a gatefile, or
// bare markers like pyproject.toml), so separate packages would only add a
// layer of indirection between them.
//
//   - discovery.go: root resolution (Resolve, Project, RootMarker, root errors)
//   - tool.go: tool selection (SelectTool, pyproject.toml detection)
//   - diagnostic.go: structured non-fatal diagnostics returned to callers
package discovery
