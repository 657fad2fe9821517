package tmux

import (
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/tabs"
)

func TestParseWindows(t *testing.T) {
	out := strings.Join([]string{
		"@1\x1f0\x1f\x1b[31mshell\x1b[0m\x1f1\x1fWork",
		"@2\x1f1\x1flogs\x1f0\x1f",
		"garbage",
		"@3\x1fnotanumber\x1fx\x1f0\x1f",
		"@4\x1f3\x1fold-format\x1f0",
	}, "\n")

	windows := parseWindows(out)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d: %+v", len(windows), windows)
	}
	if windows[0].Name != "shell" || !windows[0].Active || windows[0].Group != "Work" {
		t.Fatalf("first window parsed wrong: %+v", windows[0])
	}
	if windows[1].Group != "" || windows[1].Index != 1 {
		t.Fatalf("second window parsed wrong: %+v", windows[1])
	}
	if windows[2].ID != "@4" {
		t.Fatalf("expected window without group column, got %+v", windows[2])
	}
}

type recorder struct {
	calls [][]string
	out   string
	err   error
}

func (r *recorder) run(args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	return []byte(r.out), r.err
}

func TestListWindowsError(t *testing.T) {
	r := &recorder{err: errors.New("no server running")}
	if _, err := NewClientWithRunner(r.run).ListWindows(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWindowSurfaceSelects(t *testing.T) {
	r := &recorder{}
	s := NewWindowSurface(NewClientWithRunner(r.run), "@7", nil)
	s.Hide()
	s.Show()
	if len(r.calls) != 1 || strings.Join(r.calls[0], " ") != "select-window -t @7" {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}

func TestWindowSurfaceReportsErrors(t *testing.T) {
	r := &recorder{err: errors.New("can't find window")}
	var got error
	NewWindowSurface(NewClientWithRunner(r.run), "@7", func(err error) { got = err }).Show()
	if got == nil {
		t.Fatalf("expected error callback")
	}
}

func TestStatusApplier(t *testing.T) {
	r := &recorder{}
	a := NewStatusApplier(NewClientWithRunner(r.run), termenv.TrueColor, nil)
	p := colors.Palette{ActiveBg: "#112233", ActiveFg: "#ffffff", InactiveBg: "#000000", InactiveFg: "#888888"}

	a.ApplyColor(tabs.NewTab("@2", "logs"), true, p)

	want := "set-window-option -t @2 window-status-style bg=#112233,fg=#ffffff"
	if len(r.calls) != 1 || strings.Join(r.calls[0], " ") != want {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}
