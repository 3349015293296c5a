// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test fixtures and helpers: fake Python
// projects, virtualenvs, and tool stubs, plus directory guards that restore
// state on cleanup.
package testutil
