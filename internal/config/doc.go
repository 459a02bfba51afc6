// Package config loads and validates pumlrender configuration.
//
// The render pipeline itself is configured entirely through explicit values
// passed at call time; this package only backs the CLI convenience layer. A
// TOML file is read when the user names one with --config, otherwise the
// repository defaults apply. The core never consults files or environment
// variables on its own.
package config
