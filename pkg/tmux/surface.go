package tmux

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/tabs"
)

// WindowSurface shows a tmux window by selecting it. tmux displays one window
// per client, so hiding is implicit.
type WindowSurface struct {
	client *Client
	target string
	onErr  func(error)
}

func NewWindowSurface(c *Client, windowID string, onErr func(error)) *WindowSurface {
	return &WindowSurface{client: c, target: windowID, onErr: onErr}
}

func (s *WindowSurface) Show() {
	if err := s.client.SelectWindow(s.target); err != nil && s.onErr != nil {
		s.onErr(err)
	}
}

func (s *WindowSurface) Hide() {}

// StatusApplier writes tab colours into each window's status-line style.
type StatusApplier struct {
	client  *Client
	profile termenv.Profile
	logger  tabs.Logger
}

func NewStatusApplier(c *Client, profile termenv.Profile, logger tabs.Logger) *StatusApplier {
	if logger == nil {
		logger = tabs.NopLogger{}
	}
	return &StatusApplier{client: c, profile: profile, logger: logger}
}

func (a *StatusApplier) ApplyColor(tab *tabs.Tab, active bool, p colors.Palette) {
	state := p.StateFor(active)
	bg := colors.TmuxColor(state.Bg, a.profile)
	fg := colors.TmuxColor(state.Fg, a.profile)
	if err := a.client.SetWindowStatusStyle(tab.ID, bg, fg); err != nil {
		a.logger.Log(fmt.Sprintf("colour %s: %v", tab.ID, err), tabs.SeverityWarn)
	}
}
