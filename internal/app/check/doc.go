// SPDX-License-Identifier: MPL-2.0

// Package check orchestrates the lint gate pipeline: resolve the project
// root, activate the virtualenv, run the lint tool over the project tree,
// run the gatefile's custom checks, and produce a report.
//
// The package decides the process exit classes. Failures before the tool
// invocation return a *GateError carrying CodeConfigError or
// CodeEnvironmentError; once the tool has started, every outcome lands in
// the report and normalizes to CodeSuccess or CodeLintFailure.
//
// File organization:
//   - check.go: the Service interface, Request, and the pipeline
//   - runtime.go: runtime-selection precedence for the tool and checks
//   - gate_error.go: exit-class classification of pre-invocation failures
package check
