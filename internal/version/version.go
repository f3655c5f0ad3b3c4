package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Build metadata, overridable at link time:
//
//	-X github.com/dossier-cli/dossier/internal/version.Version=1.2.0
//	-X github.com/dossier-cli/dossier/internal/version.Commit=abc1234
//	-X github.com/dossier-cli/dossier/internal/version.Date=2025-01-01
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the metadata on one line.
func (i Info) String() string {
	return fmt.Sprintf("dossier version %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(bi)
	}
}

// applyBuildInfo fills in any variable still at its placeholder from bi.
// Values set through -ldflags are never overwritten.
func applyBuildInfo(bi *debug.BuildInfo) {
	if v := bi.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none" && s.Value != "":
			Commit = s.Value[:min(len(s.Value), 7)]
		case s.Key == "vcs.time" && Date == "unknown" && s.Value != "":
			Date = s.Value
		}
	}
}
