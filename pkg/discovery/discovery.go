// Package discovery builds tab lists for a switcher, either from tabs
// declared in the config file or from the windows of the running tmux
// session.
package discovery

import (
	"fmt"

	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/grouping"
	"github.com/b/tabswitch/pkg/tabs"
	"github.com/b/tabswitch/pkg/tmux"
)

// SurfaceFactory builds the surface for a declared tab; nil means none.
type SurfaceFactory func(spec config.TabSpec) tabs.Surface

// Static turns declared tabs into a provider. Tabs are built once, so every
// Setup sees the same tab values. Each tab is activated through its own
// tabs.Button.
func Static(specs []config.TabSpec, surfaces SurfaceFactory) tabs.StaticProvider {
	out := make(tabs.StaticProvider, 0, len(specs))
	for _, spec := range specs {
		tab := tabs.NewTab(spec.ID, spec.Title)
		tab.Trigger = tabs.NewButton()
		if surfaces != nil {
			tab.Surface = surfaces(spec)
		}
		out = append(out, tab)
	}
	return out
}

// Tmux lists the windows of the current session, optionally restricted to
// one configured group. Every call builds fresh tabs.
type Tmux struct {
	Client  *tmux.Client
	Groups  []config.Group
	Group   string
	OnError func(error)
}

func (p *Tmux) Tabs() ([]*tabs.Tab, error) {
	windows, err := p.Client.ListWindows()
	if err != nil {
		return nil, err
	}
	windows, err = grouping.WindowsInGroup(windows, p.Groups, p.Group)
	if err != nil {
		return nil, err
	}

	out := make([]*tabs.Tab, 0, len(windows))
	for _, w := range windows {
		tab := tabs.NewTab(w.ID, fmt.Sprintf("%d:%s", w.Index, w.Name))
		tab.Trigger = tabs.NewButton()
		tab.Surface = tmux.NewWindowSurface(p.Client, w.ID, p.OnError)
		out = append(out, tab)
	}
	return out, nil
}

// FromConfig picks the provider named by cfg.Discovery.Source.
func FromConfig(cfg *config.Config, surfaces SurfaceFactory, client *tmux.Client, onErr func(error)) (tabs.Provider, error) {
	switch cfg.Discovery.Source {
	case config.SourceStatic, "":
		return Static(cfg.Tabs, surfaces), nil
	case config.SourceTmux:
		if client == nil {
			client = tmux.NewClient()
		}
		return &Tmux{Client: client, Groups: cfg.Groups, Group: cfg.Discovery.Group, OnError: onErr}, nil
	}
	return nil, fmt.Errorf("%w: unknown discovery source %q", config.ErrInvalidConfig, cfg.Discovery.Source)
}
