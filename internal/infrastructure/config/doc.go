// Package config loads gateway and accessor settings.
//
// Precedence, lowest first: built-in defaults, environment variables, an
// optional YAML or TOML file, command-line flags (applied by cmd/fsbrowser).
package config
