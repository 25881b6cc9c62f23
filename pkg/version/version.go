// Package version exposes build metadata of the gitstats binary.
package version

import (
	"fmt"
	"runtime/debug"
)

const unknown = "<unknown>"

// Build metadata. Overridden with -ldflags "-X" at release time.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// InitBinaryVersion fills Commit and Date from the embedded VCS build
// settings when they were not set by the linker.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == unknown {
				Date = setting.Value
			}
		}
	}
}

// String formats the build metadata on one line.
func String() string {
	return fmt.Sprintf("gitstats %s (commit: %s, built: %s)", Version, Commit, Date)
}
