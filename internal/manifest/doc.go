// Package manifest reads, writes, and validates the project record that
// stackup leaves at the root of every generated project (.stackup.yaml).
// The record is checked against an embedded JSON Schema.
package manifest
