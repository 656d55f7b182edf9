package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	result := Full()
	if !strings.HasPrefix(result, Version+" (") {
		t.Errorf("Full() %q does not start with version %q", result, Version)
	}
	if !strings.HasSuffix(result, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() %q should end with the platform", result)
	}
}

func TestShort(t *testing.T) {
	if result := Short(); result != Version {
		t.Errorf("Short() = %q, want %q", result, Version)
	}
}

func withDefaults(t *testing.T) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFromBuildInfo(t *testing.T) {
	withDefaults(t)
	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	if Version != "v1.2.3" || Commit != "0123456-dirty" || Date != "2026-01-02T03:04:05Z" {
		t.Fatalf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFromBuildInfo_KeepsLdflags(t *testing.T) {
	withDefaults(t)
	Version, Commit = "v9.9.9", "cafe123"
	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	})

	if Version != "v9.9.9" || Commit != "cafe123" {
		t.Fatalf("ldflags values should win, got %s %s", Version, Commit)
	}
}

func TestFromBuildInfo_Devel(t *testing.T) {
	withDefaults(t)
	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	fromBuildInfo(nil)

	if Version != "dev" || Commit != "none" {
		t.Fatalf("devel builds keep defaults, got %s %s", Version, Commit)
	}
}
