// SPDX-License-Identifier: MPL-2.0

// Package issue maps gate failures to actionable guidance.
//
// Every failure class the gate can hit before the lint tool runs (missing
// project root, broken virtualenv, absent tool, bad gatefile) has a
// catalog entry here with a stable identifier, a remediation walkthrough
// in Markdown, and a documentation link. The command layer renders these
// through glamour when a run cannot even start, so the user sees how to
// fix the environment instead of a bare exit code.
package issue
