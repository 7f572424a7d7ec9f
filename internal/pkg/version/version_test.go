package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Info
		want  string
	}{
		{
			name: "Complete",
			input: Info{
				Version:   "v1.0.0",
				Commit:    "f25b8bf0123456",
				BuildDate: "2025-01-01",
				GoVersion: "go1.24",
				OS:        "linux",
				Arch:      "amd64",
			},
			want: "v1.0.0 (commit: f25b8bf, date: 2025-01-01, go_version: go1.24, os: linux, arch: amd64)",
		},
		{
			name:  "Dirty without details",
			input: Info{Version: "v1.0.0", DirtyBuild: true},
			want:  "v1.0.0+dirty",
		},
		{
			name:  "Empty",
			input: Info{},
			want:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.String())
		})
	}
}

// Not parallel: replaces the package level readBuildInfo hook.
func TestEnrichBuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	t.Run("VCS settings fill missing fields", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Path: modulePath, Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc1234"},
					{Key: "vcs.time", Value: "2025-02-02T00:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		}

		bi := enrichBuildInfo(Info{})
		assert.Equal(t, "unknown", bi.Version)
		assert.Equal(t, "abc1234", bi.Commit)
		assert.Equal(t, "2025-02-02T00:00:00Z", bi.BuildDate)
		assert.True(t, bi.DirtyBuild)
		assert.Equal(t, runtime.Version(), bi.GoVersion)
		assert.Equal(t, runtime.GOOS, bi.OS)
		assert.Equal(t, runtime.GOARCH, bi.Arch)
	})

	t.Run("Dependency version used when imported as library", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/host", Version: "v9.9.9"},
				Deps: []*debug.Module{{Path: modulePath, Version: "v0.3.1"}},
			}, true
		}

		bi := enrichBuildInfo(Info{})
		assert.Equal(t, "v0.3.1", bi.Version)
	})

	t.Run("Injected values win", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ignored"}},
			}, true
		}

		bi := enrichBuildInfo(Info{Version: "v1.2.3", Commit: "deadbeef"})
		assert.Equal(t, "v1.2.3", bi.Version)
		assert.Equal(t, "deadbeef", bi.Commit)
	})

	t.Run("No build info", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		bi := enrichBuildInfo(Info{})
		assert.Equal(t, "unknown", bi.Version)
		assert.Equal(t, "unknown", bi.Commit)
		assert.Equal(t, "unknown", bi.BuildDate)
	})
}

func TestUserAgent(t *testing.T) {
	orig := Get()
	t.Cleanup(func() { set(orig) })

	set(Info{Version: "v1.0.0", OS: "linux", Arch: "arm64"})
	assert.Equal(t, "go-prowl/v1.0.0 (linux; arm64)", UserAgent())
	assert.Equal(t, "v1.0.0", Version())
}

func TestInfo_ToMap(t *testing.T) {
	t.Parallel()

	m := Info{Version: "v1", Commit: "c", DirtyBuild: true}.ToMap()
	assert.Equal(t, "v1", m["version"])
	assert.Equal(t, "c", m["commit"])
	assert.Equal(t, true, m["dirty_build"])
}
