// Package buildinfo carries the version stamped in by the linker.
package buildinfo

import "fmt"

// Set at build time via -ldflags "-X brass/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Full returns version, commit and build date.
func Full() string {
	return fmt.Sprintf("brass %s (commit %s, built %s)", Version, Commit, Date)
}
