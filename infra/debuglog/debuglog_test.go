package debuglog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogGatedByFlags(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Log(FlagStats, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("nothing should be emitted with flags=0, got %q", buf.String())
	}

	l.SetFlags(FlagStats)
	l.Log(FlagStats, "stats line", "count", 3)
	l.Log(FlagCollectable, "still hidden")
	out := buf.String()
	if !strings.Contains(out, "stats line") || !strings.Contains(out, "count=3") {
		t.Fatalf("expected gated record, got %q", out)
	}
	if strings.Contains(out, "still hidden") {
		t.Fatalf("collectable output leaked: %q", out)
	}
}

func TestAlwaysIgnoresFlags(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Always("state", "enabled", true)
	if !strings.Contains(buf.String(), "enabled=true") {
		t.Fatalf("expected unconditional record, got %q", buf.String())
	}
}

func TestFlagsRoundTrip(t *testing.T) {
	l := New(&bytes.Buffer{})
	l.SetFlags(FlagStats | FlagUncollectable)
	if got := l.Flags(); got != FlagStats|FlagUncollectable {
		t.Fatalf("flags = %d", got)
	}
	if !l.Enabled(FlagUncollectable) || l.Enabled(FlagCollectable) {
		t.Fatal("bit checks wrong")
	}
}
