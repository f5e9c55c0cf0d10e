// Package config loads and validates Grindboard settings from an optional
// YAML file and GRINDBOARD_* environment variables.
package config
