package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origVersion, origDirty := Version, Dirty
	t.Cleanup(func() { Version, Dirty = origVersion, origDirty })

	Version, Dirty = "1.2.0", "false"
	if got := String(); got != "1.2.0" {
		t.Errorf("String() = %q", got)
	}

	Dirty = "true"
	if got := String(); got != "1.2.0-dirty" {
		t.Errorf("String() = %q", got)
	}
	if !Get().Dirty {
		t.Error("Get().Dirty = false")
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Name+" ") {
		t.Errorf("Full() = %q, want %s prefix", full, Name)
	}
	if !strings.Contains(full, "Go version:") {
		t.Errorf("Full() missing Go version: %q", full)
	}
}
