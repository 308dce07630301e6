package version

import "testing"

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() { Version, GitCommit, BuildTime = v, c, b }
}

func TestGetUsesLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abcdef0123456"
	BuildTime = "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("version = %q", info.Version)
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("commit should be shortened, got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("build time = %q", info.BuildTime)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestShortStartsWithVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "9.9.9"
	GitCommit = "1234567"
	if got := Short(); len(got) < 5 || got[:5] != "9.9.9" {
		t.Errorf("Short() = %q", got)
	}
}
