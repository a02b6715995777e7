// Package version provides information about the build version of the service.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Set via -ldflags "-X 'bridgewatch/internal/core/version.version=v0.1.0'
// -X 'bridgewatch/internal/core/version.commit=abcd' -X 'bridgewatch/internal/core/version.date=2025-05-12'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is a seam for tests
var readBuildInfo = debug.ReadBuildInfo

// Info returns the build information. Without ldflags the commit falls back
// to the vcs stamp the go tool embeds
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   "bridgewatch",
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if bi.Commit != "none" {
		return bi
	}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				bi.Commit = s.Value
			case "vcs.time":
				if bi.Date == "unknown" {
					bi.Date = s.Value
				}
			}
		}
	}
	return bi
}

// String renders a one line summary for CLI output
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", b.Service, b.Version, b.Commit, b.Date, b.GoVersion)
}
