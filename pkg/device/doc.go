// Package device validates deployment targets: device naming conventions
// and per-platform/model interface-name patterns. Platform definitions are
// YAML files, one per make, in a platforms directory.
package device
