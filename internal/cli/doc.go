// Package cli defines the Cobra command tree for the stackup CLI. Each file
// registers one top-level command with the root command. Commands parse
// flags and format output; the work happens in internal/scaffold and the
// packages beneath it.
package cli
