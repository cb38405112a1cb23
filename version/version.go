// Package version holds build metadata reported by ansify --version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
)

// String returns a one-line summary of the build.
func String() string {
	v := Version
	if v == "" {
		v = "devel"
	}
	s := fmt.Sprintf("%s (revision %s, %s %s/%s)", v, Revision, GoVersion, runtime.GOOS, runtime.GOARCH)
	if BuildDate != "" {
		s += ", built " + BuildDate
	}
	return s
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
