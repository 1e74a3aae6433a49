// Package patch applies idempotent textual edits to files produced by the
// scaffolding generator. Each Rule carries a marker substring; when the marker
// is already in the target file the rule is considered applied and the file is
// left byte-for-byte alone.
package patch
