// Package tabs implements a group of mutually exclusive tabs: exactly one tab
// is active, the others are hidden and recoloured, and every switch is
// announced on an injected event bus before the tab's own callback runs.
//
// A Switcher is driven from a single goroutine (the host's event loop) and is
// not safe for concurrent use. Switching from inside a notification is not
// supported.
package tabs

import (
	"fmt"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/events"
	"github.com/b/tabswitch/pkg/perf"
)

// Options are the behaviour flags of a switcher.
type Options struct {
	// AutoInit runs Setup from New.
	AutoInit bool
	// AutoDiscover replaces the tab list with the provider's on every Setup.
	AutoDiscover bool
	// AllowReselectActive makes a switch to the active tab run the full
	// deactivate/activate/notify cycle instead of being ignored.
	AllowReselectActive bool
	// IgnoreSurfaces leaves tab surfaces alone.
	IgnoreSurfaces bool
	// Colors is the palette applied to every tab.
	Colors colors.Palette
}

// DefaultOptions turns on everything except IgnoreSurfaces.
func DefaultOptions() Options {
	return Options{
		AutoInit:            true,
		AutoDiscover:        true,
		AllowReselectActive: true,
	}
}

// Option configures the collaborators of a Switcher.
type Option func(*Switcher)

// WithTabs supplies the tab list used when discovery is off.
func WithTabs(tabs ...*Tab) Option {
	return func(s *Switcher) {
		s.tabs = append([]*Tab(nil), tabs...)
	}
}

// WithProvider sets the discovery source.
func WithProvider(p Provider) Option {
	return func(s *Switcher) { s.provider = p }
}

// WithBus sets the bus switches are announced on. Several switchers may share
// one bus.
func WithBus(bus *events.Bus[*Tab]) Option {
	return func(s *Switcher) {
		if bus != nil {
			s.bus = bus
		}
	}
}

func WithColorApplier(a ColorApplier) Option {
	return func(s *Switcher) {
		if a != nil {
			s.applier = a
		}
	}
}

func WithLogger(l Logger) Option {
	return func(s *Switcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// Switcher owns which tab of a group is active.
type Switcher struct {
	opts     Options
	provider Provider
	bus      *events.Bus[*Tab]
	applier  ColorApplier
	logger   Logger

	tabs       []*Tab
	active     *Tab
	bindings   map[*Tab]func()
	generation int
}

// New builds a switcher. With opts.AutoInit set it also runs Setup and
// returns its error.
func New(opts Options, options ...Option) (*Switcher, error) {
	s := &Switcher{
		opts:     opts,
		bus:      events.NewBus[*Tab](),
		applier:  nopApplier{},
		logger:   NopLogger{},
		bindings: make(map[*Tab]func()),
	}
	for _, o := range options {
		o(s)
	}
	if opts.AutoInit {
		if err := s.Setup(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Setup (re)builds the group: discovery, per-tab setup, trigger wiring,
// colours, then activation of the first tab. An empty group is only logged.
// Running Setup again replaces the trigger bindings of the previous run.
// A failed Setup leaves the previous group untouched.
func (s *Switcher) Setup() error {
	list := s.tabs
	if s.opts.AutoDiscover {
		if s.provider == nil {
			s.logger.Log("auto discovery enabled without a provider, keeping supplied tabs", SeverityWarn)
		} else {
			found, err := s.provider.Tabs()
			if err != nil {
				return fmt.Errorf("failed to discover tabs: %w", err)
			}
			list = found
		}
	}
	list = compact(list)
	if err := checkUnique(list); err != nil {
		return err
	}

	s.unbindAll()
	s.tabs = list
	s.active = nil

	if len(s.tabs) == 0 {
		s.logger.Log("setup failed: no tabs registered", SeverityWarn)
		return nil
	}

	s.generation++
	for _, tab := range s.tabs {
		tab.Setup()
		s.bind(tab)
		tab.DefineColors(s.opts.Colors)
	}

	return s.SwitchToPage(s.tabs[0])
}

// SwitchToPage makes tab the only active tab of the group, then publishes it
// on the bus and runs its OnActivate callback, in that order.
func (s *Switcher) SwitchToPage(tab *Tab) error {
	if len(s.tabs) == 0 {
		return ErrEmptyRegistry
	}
	target := s.lookup(tab)
	if target == nil {
		if tab == nil {
			return fmt.Errorf("%w: nil tab", ErrInvalidTab)
		}
		return fmt.Errorf("%w: %q", ErrInvalidTab, tab.ID)
	}

	if !s.opts.AllowReselectActive && target == s.active {
		return nil
	}

	timer := perf.Start("switch " + target.ID)
	s.logger.Log("switching page to "+target.ID, SeverityDebug)

	for _, t := range s.tabs {
		s.deactivate(t)
	}

	if !s.opts.IgnoreSurfaces {
		target.show()
	}
	s.active = target
	target.active = true
	target.setColorAuto(s.applier)

	s.bus.Publish(target)
	if target.OnActivate != nil {
		target.OnActivate()
	}

	s.logger.Log(fmt.Sprintf("switched to %s in %v", target.ID, timer.Stop()), SeverityDebug)
	return nil
}

func (s *Switcher) deactivate(t *Tab) {
	if !s.opts.IgnoreSurfaces {
		t.hide()
	}
	t.active = false
	t.setColorAuto(s.applier)
}

// SwitchToID activates the tab with the given id.
func (s *Switcher) SwitchToID(id string) error {
	return s.SwitchToPage(&Tab{ID: id})
}

// SwitchToIndex activates the tab at display position i.
func (s *Switcher) SwitchToIndex(i int) error {
	if len(s.tabs) == 0 {
		return ErrEmptyRegistry
	}
	if i < 0 || i >= len(s.tabs) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(s.tabs))
	}
	return s.SwitchToPage(s.tabs[i])
}

// Next activates the tab after the active one, wrapping around.
func (s *Switcher) Next() error {
	return s.step(1)
}

// Prev activates the tab before the active one, wrapping around.
func (s *Switcher) Prev() error {
	return s.step(-1)
}

func (s *Switcher) step(delta int) error {
	n := len(s.tabs)
	if n == 0 {
		return ErrEmptyRegistry
	}
	idx := s.ActiveIndex()
	if idx < 0 {
		return s.SwitchToPage(s.tabs[0])
	}
	return s.SwitchToPage(s.tabs[(idx+delta+n)%n])
}

// RefreshSync re-applies an externally edited selection. selectionHint is a
// display position, not an identity; it must be within the current list.
// The tabs are set up and recoloured again afterwards but their triggers are
// not re-bound.
func (s *Switcher) RefreshSync(selectionHint int) error {
	if len(s.tabs) == 0 {
		return ErrEmptyRegistry
	}
	if selectionHint < 0 || selectionHint >= len(s.tabs) {
		return fmt.Errorf("%w: selection hint %d not in [0,%d)", ErrIndexOutOfRange, selectionHint, len(s.tabs))
	}
	if err := s.SwitchToPage(s.tabs[selectionHint]); err != nil {
		return err
	}

	for _, tab := range s.tabs {
		tab.Setup()
		tab.DefineColors(s.opts.Colors)
	}
	for _, tab := range s.tabs {
		tab.setColorAuto(s.applier)
	}
	return nil
}

// SetOptions replaces the options. Nothing is re-applied until the next
// Setup or RefreshSync.
func (s *Switcher) SetOptions(opts Options) {
	s.opts = opts
}

func (s *Switcher) Options() Options { return s.opts }

// Active returns the active tab, or nil for an empty group.
func (s *Switcher) Active() *Tab { return s.active }

// ActiveIndex returns the display position of the active tab, or -1.
func (s *Switcher) ActiveIndex() int {
	if s.active == nil {
		return -1
	}
	for i, t := range s.tabs {
		if t == s.active {
			return i
		}
	}
	return -1
}

// Tabs returns a copy of the tab list in display order.
func (s *Switcher) Tabs() []*Tab {
	out := make([]*Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

func (s *Switcher) Len() int { return len(s.tabs) }

// Titles lists the display names, e.g. for an editor's selection popup.
func (s *Switcher) Titles() []string {
	out := make([]string, len(s.tabs))
	for i, t := range s.tabs {
		out[i] = t.Title
		if out[i] == "" {
			out[i] = t.ID
		}
	}
	return out
}

// Bus returns the bus this switcher publishes on.
func (s *Switcher) Bus() *events.Bus[*Tab] { return s.bus }

// Generation counts completed non-empty Setup runs.
func (s *Switcher) Generation() int { return s.generation }

// Close releases every trigger binding.
func (s *Switcher) Close() {
	s.unbindAll()
}

func (s *Switcher) bind(tab *Tab) {
	if tab.Trigger == nil {
		return
	}
	s.bindings[tab] = tab.Trigger.Subscribe(func() {
		if err := s.SwitchToPage(tab); err != nil {
			s.logger.Log(fmt.Sprintf("switch to %q failed: %v", tab.ID, err), SeverityError)
		}
	})
}

func (s *Switcher) unbindAll() {
	for tab, unsubscribe := range s.bindings {
		if unsubscribe != nil {
			unsubscribe()
		}
		delete(s.bindings, tab)
	}
}

func (s *Switcher) lookup(tab *Tab) *Tab {
	if tab == nil {
		return nil
	}
	for _, t := range s.tabs {
		if t == tab || t.ID == tab.ID {
			return t
		}
	}
	return nil
}

func compact(in []*Tab) []*Tab {
	out := make([]*Tab, 0, len(in))
	for _, t := range in {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func checkUnique(tabs []*Tab) error {
	seen := make(map[string]struct{}, len(tabs))
	for _, t := range tabs {
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTab, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// ClampIndex forces i into [0,n). It returns -1 when n is 0.
func ClampIndex(i, n int) int {
	if n <= 0 {
		return -1
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
