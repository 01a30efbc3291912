package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	l.Info("shown", "year", 2024)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "year=2024") {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("verbose logger must emit debug records, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	if Nop().Enabled(t.Context(), 12) {
		t.Fatalf("nop logger must be disabled at every level")
	}
	if OrNop(nil) == nil || New(nil, true) == nil {
		t.Fatalf("expected non-nil loggers")
	}
}
