package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/tabswitch/pkg/tabs"
)

// value reads one sample from the registry; labels must match exactly.
func value(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	samples:
		for _, sample := range mf.GetMetric() {
			if len(sample.GetLabel()) != len(labels) {
				continue
			}
			for _, lp := range sample.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue samples
				}
			}
			if c := sample.GetCounter(); c != nil {
				return c.GetValue()
			}
			return sample.GetGauge().GetValue()
		}
	}
	t.Fatalf("no sample %s%v", name, labels)
	return 0
}

func newSwitcher(t *testing.T) *tabs.Switcher {
	t.Helper()
	sw, err := tabs.New(tabs.Options{AutoInit: true, AllowReselectActive: true},
		tabs.WithTabs(tabs.NewTab("a", ""), tabs.NewTab("b", "")))
	require.NoError(t, err)
	return sw
}

func TestObserveCountsSwitches(t *testing.T) {
	sw := newSwitcher(t)
	m := New()
	stop := m.Observe(sw)

	assert.Equal(t, 2.0, value(t, m, "tabswitch_tabs", nil))
	assert.Equal(t, 0.0, value(t, m, "tabswitch_active_index", nil))
	assert.Equal(t, 1.0, value(t, m, "tabswitch_setup_generation", nil))

	require.NoError(t, sw.SwitchToID("b"))
	require.NoError(t, sw.SwitchToID("b"))
	require.NoError(t, sw.SwitchToID("a"))

	assert.Equal(t, 2.0, value(t, m, "tabswitch_switches_total", map[string]string{"tab": "b"}))
	assert.Equal(t, 1.0, value(t, m, "tabswitch_switches_total", map[string]string{"tab": "a"}))
	assert.Equal(t, 0.0, value(t, m, "tabswitch_active_index", nil))

	stop()
	require.NoError(t, sw.SwitchToID("b"))
	assert.Equal(t, 2.0, value(t, m, "tabswitch_switches_total", map[string]string{"tab": "b"}))
}

func TestRecordErrorAndHandler(t *testing.T) {
	m := New()
	m.RecordError("control")
	m.RecordError("control")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tabswitch_errors_total{source="control"} 2`)
}

type countClients int

func (c *countClients) ClientCount() int { return int(*c) }

func TestWatchClientsReadsLiveCount(t *testing.T) {
	m := New()
	clients := countClients(2)
	m.WatchClients(&clients)
	assert.Equal(t, 2.0, value(t, m, "tabswitch_control_clients", nil))

	clients = 0
	assert.Equal(t, 0.0, value(t, m, "tabswitch_control_clients", nil))
}
