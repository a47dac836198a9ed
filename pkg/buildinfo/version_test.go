package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)
	Version, Commit = "v1.2.3", "abc123"

	if got := String(); !strings.Contains(got, "version: v1.2.3") || !strings.Contains(got, "commit: abc123") {
		t.Errorf("String() = %q", got)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); !strings.HasPrefix(got, "footlights/v1.2.3 ") {
		t.Errorf("UserAgent() = %q", got)
	}
}
