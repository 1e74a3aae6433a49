// Package runner launches external tools (the package manager and the
// scaffolding generator) with an explicit working directory and the standard
// streams wired to the terminal. A non-zero exit is always returned as an
// *ExitError carrying the child's code.
package runner
