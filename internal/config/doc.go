// Package config loads and validates podscribe configuration from a TOML file
// with environment overrides for credentials and compute-device selection.
package config
