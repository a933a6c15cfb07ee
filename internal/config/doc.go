// Package config loads runtime settings for the tennis-results CLI from
// an optional YAML file layered over built-in defaults and environment
// overrides.
package config
