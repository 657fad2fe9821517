package tabs

// Provider discovers the tabs of a group, in display order.
type Provider interface {
	Tabs() ([]*Tab, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func() ([]*Tab, error)

func (f ProviderFunc) Tabs() ([]*Tab, error) { return f() }

// StaticProvider always returns the same list
type StaticProvider []*Tab

func (p StaticProvider) Tabs() ([]*Tab, error) {
	out := make([]*Tab, len(p))
	copy(out, p)
	return out, nil
}
