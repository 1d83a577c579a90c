package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	c := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.21.0",
		Path:      "github.com/carbocation/tcgaexpr/cmd/addsample",
		Main:      debug.Module{Path: "github.com/carbocation/tcgaexpr", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-04-12T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	if c.Commit != "abc123" || !c.Modified {
		t.Errorf("got %+v", c)
	}

	s := c.String()
	for _, want := range []string{"cmd/addsample", "abc123", "uncommitted", "go1.21.0", "2022-04-12"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q is missing %q", s, want)
		}
	}
}

func TestStringWithoutBuildInfo(t *testing.T) {
	if s := (CompileInfo{}).String(); !strings.Contains(s, "No build information") {
		t.Errorf("got %q", s)
	}
}
