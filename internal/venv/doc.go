// SPDX-License-Identifier: MPL-2.0

// Package venv activates pre-provisioned Python virtual environments as a
// pure computation.
//
// Activating an environment never mutates the process: instead of
// os.Setenv/os.Chdir, Activate returns an Activation value whose Environ()
// produces the explicit environment for the spawned tool (PATH with the env
// bin dir prepended, VIRTUAL_ENV set, PYTHONHOME dropped). Concurrent
// activations are therefore fully independent and sibling processes are
// never affected.
//
// The package only consumes environments; creating them (python -m venv,
// uv, virtualenv) is out of scope.
package venv
