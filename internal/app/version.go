package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds stamp these through ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/xwstats/internal/app.Version=v0.3.0" ./cmd/xwstats
//
// Anything left unset is filled from the module and VCS data the Go
// toolchain embeds, so `go install ...@v0.3.0` still reports v0.3.0.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const shortCommit = 12

// BuildInfo describes the running xwstats binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
}

// ReadBuildInfo merges the ldflags values with the embedded build data.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withEmbedded(bi)
	}
	return info
}

func (i BuildInfo) withEmbedded(bi *debug.BuildInfo) BuildInfo {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	if bi.GoVersion != "" {
		i.GoVersion = bi.GoVersion
	}

	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "unknown" {
				i.Commit = s.Value
				if len(i.Commit) > shortCommit {
					i.Commit = i.Commit[:shortCommit]
				}
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && i.Commit != "unknown" {
		i.Commit += "-dirty"
	}
	return i
}

func (i BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", i.Version, i.Commit, i.BuildTime, i.GoVersion)
}

// BuildVersion returns the one-line version printed by `xwstats version`.
func BuildVersion() string {
	return ReadBuildInfo().String()
}
