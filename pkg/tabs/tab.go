package tabs

import (
	"sort"
	"sync"

	"github.com/b/tabswitch/pkg/colors"
)

// Surface is the content a tab reveals when active.
type Surface interface {
	Show()
	Hide()
}

// TriggerSource delivers "user asked for this tab" events.
type TriggerSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// ColorApplier pushes a tab's colours to whatever draws it.
type ColorApplier interface {
	ApplyColor(tab *Tab, active bool, palette colors.Palette)
}

// ColorApplierFunc adapts a function to ColorApplier
type ColorApplierFunc func(tab *Tab, active bool, palette colors.Palette)

func (f ColorApplierFunc) ApplyColor(tab *Tab, active bool, palette colors.Palette) {
	f(tab, active, palette)
}

type nopApplier struct{}

func (nopApplier) ApplyColor(*Tab, bool, colors.Palette) {}

// Tab is one page of a switcher. ID is its identity; two tabs with the same ID
// are the same tab as far as the switcher is concerned.
type Tab struct {
	ID    string
	Title string

	Surface Surface
	Trigger TriggerSource

	// OnActivate runs after the switcher broadcast, every time this tab
	// becomes active.
	OnActivate func()

	active  bool
	palette colors.Palette
	state   colors.State
	ready   bool
}

// NewTab creates a tab with the given identity and label
func NewTab(id, title string) *Tab {
	return &Tab{ID: id, Title: title}
}

// Setup prepares the tab for use. Safe to call repeatedly.
func (t *Tab) Setup() {
	if t.Title == "" {
		t.Title = t.ID
	}
	if !t.ready {
		t.state = t.palette.StateFor(t.active)
		t.ready = true
	}
}

// IsActive reports whether this tab is the active one of its switcher
func (t *Tab) IsActive() bool { return t.active }

// Palette returns the colours last applied by the switcher
func (t *Tab) Palette() colors.Palette { return t.palette }

// ColorState returns the current colour, always consistent with IsActive
// once the switcher has touched the tab.
func (t *Tab) ColorState() colors.State { return t.state }

// DefineColors stores the shared palette on the tab.
func (t *Tab) DefineColors(p colors.Palette) {
	t.palette = p
}

// setColorAuto recomputes the colour state from the active flag and hands it
// to the applier.
func (t *Tab) setColorAuto(applier ColorApplier) {
	t.state = t.palette.StateFor(t.active)
	applier.ApplyColor(t, t.active, t.palette)
}

func (t *Tab) show() {
	if t.Surface != nil {
		t.Surface.Show()
	}
}

func (t *Tab) hide() {
	if t.Surface != nil {
		t.Surface.Hide()
	}
}

// Button is an in-process TriggerSource: Click fires every subscriber.
type Button struct {
	mu        sync.Mutex
	listeners map[int]func()
	next      int
}

// NewButton returns a button with no listeners
func NewButton() *Button {
	return &Button{listeners: make(map[int]func())}
}

func (b *Button) Subscribe(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners == nil {
		b.listeners = make(map[int]func())
	}
	id := b.next
	b.next++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Click notifies the listeners in subscription order.
func (b *Button) Click() {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Listeners returns how many listeners are attached
func (b *Button) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
