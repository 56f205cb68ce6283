// Package version exposes build metadata stamped in via ldflags.
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the raw version, commit, and build date.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String renders the version line printed by the version command.
func String() string {
	return fmt.Sprintf("rasterkit %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
