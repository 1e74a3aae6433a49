// Package config manages user-level settings stored at ~/.stackup/config.yaml.
// Every key can be overridden with a STACKUP_-prefixed environment variable,
// which is how the package manager and scaffolding tool names are swapped out
// in tests and in unusual environments.
package config
