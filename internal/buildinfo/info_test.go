package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2025-03-01T10:00:00Z"},
		},
	}

	tests := []struct {
		name                  string
		version, commit, date string
		info                  *debug.BuildInfo
		want                  string
	}{
		{
			name:    "ldflags win",
			version: "v0.3.0", commit: "abc123", date: "2025-04-01",
			info: stamped,
			want: "v0.3.0 (commit: abc123, built: 2025-04-01)",
		},
		{
			name:    "go install fallback",
			version: "dev", commit: "none", date: "unknown",
			info: stamped,
			want: "v1.2.0 (commit: 0123456789ab, built: 2025-03-01T10:00:00Z)",
		},
		{
			name:    "devel build",
			version: "dev", commit: "none", date: "unknown",
			info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: "dev (commit: none, built: unknown)",
		},
		{
			name:    "no build info",
			version: "dev", commit: "none", date: "unknown",
			want: "dev (commit: none, built: unknown)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC, oldD, oldRead := Version, Commit, Date, readBuildInfo
			t.Cleanup(func() { Version, Commit, Date, readBuildInfo = oldV, oldC, oldD, oldRead })

			Version, Commit, Date = tt.version, tt.commit, tt.date
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.info, tt.info != nil }

			assert.Equal(t, tt.want, String())
		})
	}
}
