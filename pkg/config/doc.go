// Package config loads and validates the YAML ruleset configuration
// document. Rule lines inside it are opaque strings here; their grammar
// belongs to pkg/ruleset.
package config
