package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset(t *testing.T) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func buildInfo(mainVersion string, settings map[string]string) *debug.BuildInfo {
	info := &debug.BuildInfo{Main: debug.Module{Version: mainVersion}}
	for k, v := range settings {
		info.Settings = append(info.Settings, debug.BuildSetting{Key: k, Value: v})
	}
	return info
}

func TestApplyBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		pre  Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "ldflags win",
			pre:  Info{Version: "1.2.3", Commit: "abc1234", Date: "2025-01-01T00:00:00Z"},
			bi:   buildInfo("v0.5.0", map[string]string{"vcs.revision": "deadbeefcafe", "vcs.time": "2024-06-01T00:00:00Z"}),
			want: Info{Version: "1.2.3", Commit: "abc1234", Date: "2025-01-01T00:00:00Z"},
		},
		{
			name: "module version only",
			bi:   buildInfo("v0.5.0", nil),
			want: Info{Version: "0.5.0", Commit: "none", Date: "unknown"},
		},
		{
			name: "devel build with vcs",
			bi:   buildInfo("(devel)", map[string]string{"vcs.revision": "deadbeefcafe123", "vcs.time": "2024-06-01T12:00:00Z"}),
			want: Info{Version: "dev", Commit: "deadbee", Date: "2024-06-01T12:00:00Z"},
		},
		{
			name: "short revision kept whole",
			bi:   buildInfo("(devel)", map[string]string{"vcs.revision": "abc"}),
			want: Info{Version: "dev", Commit: "abc", Date: "unknown"},
		},
		{
			name: "empty build info",
			bi:   &debug.BuildInfo{},
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset(t)
			if tt.pre != (Info{}) {
				Version, Commit, Date = tt.pre.Version, tt.pre.Commit, tt.pre.Date
			}
			applyBuildInfo(tt.bi)
			assert.Equal(t, tt.want, Get())
		})
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "1.0.0", Commit: "abc1234", Date: "2025-03-15"}
	assert.Equal(t, "dossier version 1.0.0 (commit: abc1234, built: 2025-03-15)", info.String())
}
