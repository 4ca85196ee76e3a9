// Package version exposes build-time version information for the indlovu binary.
package version

// Set via -ldflags at build time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the Git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
