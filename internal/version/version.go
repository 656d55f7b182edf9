// Package version reports the fuhl build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	-X github.com/rnwolfe/fuhl/internal/version.Version=v0.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full is the long form printed by `fuhl version`.
func Full() string {
	return fmt.Sprintf("%s (%s, %s) %s/%s", Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(info)
	}
}

// fromBuildInfo fills whatever ldflags left at its default, so `go install`
// builds still report a module version and VCS revision.
func fromBuildInfo(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	// "(devel)" means built from a checkout without a tag.
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		}
	}
	if Commit == "none" && rev != "" {
		Commit = rev[:min(len(rev), 7)]
		if modified == "true" {
			Commit += "-dirty"
		}
	}
}
