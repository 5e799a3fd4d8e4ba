// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError ends the process with Code and no "error:" line. A command
// returns it after it has already written the outcome the user needs:
//
//   - "archetype validate" prints a report per document and exits 1 if
//     any document had dangling references or failed to load.
//   - "archetype reduce" prints the per-building report and exits 1
//     when every building failed and no library was written.
//
// Any other error from a command is unexpected and main prints it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks returned errors for this
// method rather than the concrete type, so a wrapped ExitError is not
// recognized and is printed like any other error.
func (e *ExitError) ExitCode() int {
	return e.Code
}
