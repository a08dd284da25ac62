package tablature

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the tablature library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo describes the build of the library or the gptab binary.
type VersionInfo struct {
	Version   string
	GitCommit string // set via -ldflags
	BuildTime string // set via -ldflags
	GoVersion string
}

// String formats the build as "0.1.0 (commit abc, built 2026-01-01, go1.26.0)".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}

// GetVersionInfo returns the build information. Fields not injected at
// link time read "unknown", except GoVersion which falls back to the
// running toolchain:
//
//	go build -ldflags="-X github.com/simonhull/tablature.gitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/simonhull/tablature.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/gptab
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
