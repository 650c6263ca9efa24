// Package version exposes build-time version metadata.
package version

import "fmt"

// Set at build time via -ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
