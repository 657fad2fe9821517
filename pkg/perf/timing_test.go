package perf

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	if !Enabled() {
		t.Fatalf("expected perf enabled with an output set")
	}
	if d := Start("switch home").Stop(); d < 0 {
		t.Fatalf("negative duration %v", d)
	}
	if !strings.Contains(buf.String(), "switch home") {
		t.Fatalf("expected measurement in output, got %q", buf.String())
	}
}

func TestTimerWithoutOutput(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatalf("expected perf disabled")
	}
	Start("noop").Stop()
}
