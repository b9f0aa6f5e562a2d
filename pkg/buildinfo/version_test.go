package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	s := String()
	for _, want := range []string{"version: v1.2.3", "commit: abc123", "built: 2026-01-02T03:04:05Z", "go: go"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "crawlviz/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
