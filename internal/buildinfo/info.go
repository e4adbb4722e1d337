// Package buildinfo reports the version of the cashbook binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/cleared-dev/cashbook/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version line shown by "cashbook --version". Binaries
// built with go install carry no ldflags, so the module version and VCS
// stamp are used instead.
func String() string {
	version, commit, date := Version, Commit, Date
	if info, ok := readBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "none":
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			case s.Key == "vcs.time" && date == "unknown":
				date = s.Value
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
