package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/discovery"
	"github.com/b/tabswitch/pkg/events"
	"github.com/b/tabswitch/pkg/logging"
	"github.com/b/tabswitch/pkg/metrics"
	"github.com/b/tabswitch/pkg/tabs"
	"github.com/b/tabswitch/pkg/tmux"
)

// page is the visible body of a declared tab.
type page struct {
	visible bool
	content string
}

func (p *page) Show() { p.visible = true }
func (p *page) Hide() { p.visible = false }

func contentFor(spec config.TabSpec) string {
	if spec.Content != "" {
		return spec.Content
	}
	if spec.Title != "" {
		return spec.Title
	}
	return spec.ID
}

// app holds everything the TUI and the headless listing share.
type app struct {
	cfg      *config.Config
	dark     bool
	log      *logging.Logger
	sw       *tabs.Switcher
	bus      *events.Bus[*tabs.Tab]
	pages    map[string]*page
	switches <-chan *tabs.Tab
	metrics  *metrics.Metrics
	closers  []func()

	// provider is swapped when an edited config changes the tab set.
	provider tabs.Provider
	deps     appDeps
	onErr    func(error)
}

type appDeps struct {
	// tmux is used when discovery.source is tmux; nil means the real server.
	tmux    *tmux.Client
	profile termenv.Profile
}

func newApp(cfg *config.Config, dark bool, log *logging.Logger, deps appDeps) (*app, error) {
	a := &app{
		cfg:   cfg,
		dark:  dark,
		log:   log,
		bus:   events.NewBus[*tabs.Tab](),
		pages: make(map[string]*page),
	}
	var unsub func()
	a.switches, unsub = subscribeSwitches(a.bus)
	a.onClose(unsub)

	tabLog := logging.NewTabLogger(log, "main")
	a.onErr = func(err error) { log.Warn("surface error", zap.Error(err)) }

	var applier tabs.ColorApplier
	if cfg.Discovery.Source == config.SourceTmux {
		if deps.tmux == nil {
			deps.tmux = tmux.NewClient()
		}
		applier = tmux.NewStatusApplier(deps.tmux, deps.profile, tabLog)
	}

	a.deps = deps

	var err error
	a.provider, err = discovery.FromConfig(cfg, a.surfaceFor, deps.tmux, a.onErr)
	if err != nil {
		return nil, err
	}

	opts := []tabs.Option{
		tabs.WithProvider(tabs.ProviderFunc(a.discover)),
		tabs.WithBus(a.bus),
		tabs.WithColorApplier(applier),
		tabs.WithLogger(tabLog),
	}
	if !cfg.AutoDiscover {
		list, err := a.provider.Tabs()
		if err != nil {
			return nil, err
		}
		opts = append(opts, tabs.WithTabs(list...))
	}

	a.sw, err = tabs.New(cfg.Options(dark), opts...)
	if err != nil {
		return nil, err
	}
	a.metrics = metrics.New()
	a.onClose(a.metrics.Observe(a.sw))
	// Without auto_init nothing else would build the group.
	if !cfg.AutoInit {
		if err := a.sw.Setup(); err != nil {
			return nil, err
		}
	}
	if cfg.ActivePage != 0 && a.sw.Len() > 0 {
		if err := a.sw.RefreshSync(tabs.ClampIndex(cfg.ActivePage, a.sw.Len())); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) surfaceFor(spec config.TabSpec) tabs.Surface {
	p := &page{visible: true, content: contentFor(spec)}
	a.pages[spec.ID] = p
	return p
}

func (a *app) discover() ([]*tabs.Tab, error) {
	return a.provider.Tabs()
}

// applyConfig pushes an edited config file into the running group and
// re-syncs the selection it names. Changed tabs or groups are rediscovered
// when auto_discover is on; the discovery source is fixed at startup.
func (a *app) applyConfig(cfg *config.Config) error {
	old := a.cfg
	a.cfg = cfg
	a.sw.SetOptions(cfg.Options(a.dark))

	switch {
	case sameTabSet(old, cfg):
	case cfg.Discovery.Source != old.Discovery.Source:
		a.log.Warn("discovery source changed, restart to apply",
			zap.String("from", old.Discovery.Source), zap.String("to", cfg.Discovery.Source))
	case !cfg.AutoDiscover:
		a.log.Warn("tab set changed but auto_discover is off, restart to apply")
	default:
		if err := a.rediscover(cfg); err != nil {
			return err
		}
	}

	for _, spec := range cfg.Tabs {
		if p, ok := a.pages[spec.ID]; ok {
			p.content = contentFor(spec)
		}
	}
	if a.sw.Len() == 0 {
		return nil
	}
	return a.sw.RefreshSync(tabs.ClampIndex(cfg.ActivePage, a.sw.Len()))
}

// rediscover builds a provider from cfg and sets the group up again. On
// failure the previous provider and pages stay in place.
func (a *app) rediscover(cfg *config.Config) error {
	oldProvider, oldPages := a.provider, a.pages
	a.pages = make(map[string]*page)

	provider, err := discovery.FromConfig(cfg, a.surfaceFor, a.deps.tmux, a.onErr)
	if err == nil {
		a.provider = provider
		err = a.sw.Setup()
	}
	if err != nil {
		a.provider, a.pages = oldProvider, oldPages
		return err
	}
	a.log.Info("tabs rediscovered", zap.Int("tabs", a.sw.Len()))
	return nil
}

// sameTabSet reports whether discovery would build the same tabs from a and
// b. Page content is not part of the tab set.
func sameTabSet(a, b *config.Config) bool {
	if a.Discovery != b.Discovery || !slices.Equal(a.Groups, b.Groups) || len(a.Tabs) != len(b.Tabs) {
		return false
	}
	for i := range a.Tabs {
		if a.Tabs[i].ID != b.Tabs[i].ID || a.Tabs[i].Title != b.Tabs[i].Title {
			return false
		}
	}
	return true
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if a.sw != nil {
		a.sw.Close()
	}
	a.bus.Close()
}

// subscribeSwitches forwards bus events to a channel the TUI drains. Events
// are dropped rather than blocking a switch when nobody is reading.
func subscribeSwitches(bus *events.Bus[*tabs.Tab]) (<-chan *tabs.Tab, func()) {
	ch := make(chan *tabs.Tab, 16)
	unsub := bus.Subscribe(func(t *tabs.Tab) {
		select {
		case ch <- t:
		default:
		}
	})
	return ch, unsub
}

// printTabs is the non-interactive listing, one tab per line with the active
// tab starred.
func printTabs(w io.Writer, sw *tabs.Switcher) {
	active := sw.ActiveIndex()
	for i, title := range sw.Titles() {
		marker := " "
		if i == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d %s\n", marker, i+1, title)
	}
}
