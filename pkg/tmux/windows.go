package tmux

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// ansiEscapeRegex matches ANSI escape sequences
var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|\x1b\].*?(?:\x07|\x1b\\)`)

func stripANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// GroupOption is the window user option that pins a window to a tab group.
const GroupOption = "@tabswitch_group"

type Window struct {
	ID     string
	Index  int
	Name   string
	Active bool
	Group  string // value of @tabswitch_group, empty if unset
}

// Runner executes a tmux command and returns its stdout.
type Runner func(args ...string) ([]byte, error)

func execRunner(args ...string) ([]byte, error) {
	return exec.Command("tmux", args...).Output()
}

// Client talks to the tmux server of the current session.
type Client struct {
	run Runner
}

// NewClient uses the tmux binary on PATH
func NewClient() *Client {
	return &Client{run: execRunner}
}

// NewClientWithRunner is used by tests and dry runs.
func NewClientWithRunner(r Runner) *Client {
	return &Client{run: r}
}

const windowFormat = "#{window_id}\x1f#{window_index}\x1f#{window_name}\x1f#{window_active}\x1f#{" + GroupOption + "}"

// ListWindows returns the windows of the current session in index order.
func (c *Client) ListWindows() ([]Window, error) {
	out, err := c.run("list-windows", "-F", windowFormat)
	if err != nil {
		return nil, fmt.Errorf("tmux list-windows failed: %w", err)
	}
	return parseWindows(string(out)), nil
}

func parseWindows(out string) []Window {
	var windows []Window
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\x1f")
		if len(parts) < 4 {
			continue
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		w := Window{
			ID:     parts[0],
			Index:  index,
			Name:   stripANSI(parts[2]),
			Active: parts[3] == "1",
		}
		if len(parts) > 4 {
			w.Group = strings.TrimSpace(parts[4])
		}
		windows = append(windows, w)
	}
	return windows
}

// SelectWindow makes target (window id or ":index") the current window.
func (c *Client) SelectWindow(target string) error {
	if _, err := c.run("select-window", "-t", target); err != nil {
		return fmt.Errorf("tmux select-window %s failed: %w", target, err)
	}
	return nil
}

// SetWindowStatusStyle colours the window's entry in the status line.
func (c *Client) SetWindowStatusStyle(target, bg, fg string) error {
	style := fmt.Sprintf("bg=%s,fg=%s", bg, fg)
	if _, err := c.run("set-window-option", "-t", target, "window-status-style", style); err != nil {
		return fmt.Errorf("tmux set-window-option %s failed: %w", target, err)
	}
	return nil
}
