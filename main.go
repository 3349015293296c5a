// SPDX-License-Identifier: MPL-2.0

// lintgate is a deterministic lint gate for Python projects: it resolves
// the project root, activates the virtualenv without touching the process
// environment, runs the configured lint tool over the whole tree, then the
// gatefile's custom checks, and exits 0 (pass), 1 (lint failure),
// 2 (configuration error), or 3 (environment error).
package main

import "github.com/lintgate/lintgate/cmd/lintgate"

func main() {
	cmd.Execute()
}
