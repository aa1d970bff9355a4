package pathsafe

import (
	"strings"
	"testing"
)

func TestForPlatform_NonWindowsIsIdentity(t *testing.T) {
	n := ForPlatform("linux")
	long := `/tmp/` + strings.Repeat("a", 300)
	if got := n(long); got != long {
		t.Errorf("linux normalizer changed path: %q", got)
	}
}

func TestForPlatform_WindowsShortPathUntouched(t *testing.T) {
	n := ForPlatform("windows")
	short := `C:\mirror\plugins\akismet`
	if got := n(short); got != short {
		t.Errorf("short path should be untouched, got %q", got)
	}
}

func TestForPlatform_WindowsLongPathPrefixed(t *testing.T) {
	n := ForPlatform("windows")
	long := `C:\mirror\` + strings.Repeat("a", 250)

	got := n(long)
	if !strings.HasPrefix(got, `\\?\`) {
		t.Fatalf("expected extended-length prefix, got %q", got)
	}
	if got != `\\?\`+long {
		t.Errorf("prefix should be prepended verbatim, got %q", got)
	}
}

func TestForPlatform_WindowsPrefixIdempotent(t *testing.T) {
	n := ForPlatform("windows")
	long := `\\?\C:\mirror\` + strings.Repeat("a", 250)

	if got := n(long); got != long {
		t.Errorf("already-prefixed path should be untouched, got %q", got)
	}
}
