package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_UsesLinkedValues(t *testing.T) {
	defer func(v, c, b string) { Version, GitCommit, BuildTime = v, c, b }(Version, GitCommit, BuildTime)
	Version, GitCommit, BuildTime = "1.4.0", "0123456789abcdef", "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "1.4.0" || info.GitCommit != "0123456" || info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("info = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("go version = %s", info.GoVersion)
	}
}

func TestInfo_Formatting(t *testing.T) {
	tests := []struct {
		name      string
		info      Info
		wantShort string
		release   bool
	}{
		{"dev build", Info{Version: "dev"}, "dev", false},
		{"release", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234", true},
		{"dirty tree", Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.wantShort {
				t.Errorf("Short() = %q, want %q", got, tt.wantShort)
			}
			if got := tt.info.IsRelease(); got != tt.release {
				t.Errorf("IsRelease() = %v", got)
			}
		})
	}
}

func TestInfo_String(t *testing.T) {
	s := Info{Version: "1.0.0", GoVersion: "go1.26.0", BuildTime: "2026-01-02T03:04:05Z"}.String()
	if !strings.HasPrefix(s, "1.0.0 go1.26.0") || !strings.HasSuffix(s, "built 2026-01-02T03:04:05Z") {
		t.Errorf("String() = %q", s)
	}
}
