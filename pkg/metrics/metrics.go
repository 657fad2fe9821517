// Package metrics exports tab switching activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/b/tabswitch/pkg/tabs"
)

// Metrics holds the switcher collectors.
type Metrics struct {
	Switches    *prometheus.CounterVec
	Errors      *prometheus.CounterVec
	Tabs        prometheus.Gauge
	ActiveIndex prometheus.Gauge
	Setups      prometheus.Gauge

	registry *prometheus.Registry
}

// New registers the collectors on a private registry so several switchers
// in one test binary do not collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Switches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabswitch_switches_total",
				Help: "Total number of tab activations",
			},
			[]string{"tab"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabswitch_errors_total",
				Help: "Total number of rejected switch requests",
			},
			[]string{"source"},
		),
		Tabs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabswitch_tabs",
				Help: "Number of tabs in the group",
			},
		),
		ActiveIndex: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabswitch_active_index",
				Help: "Position of the active tab, -1 when none",
			},
		),
		Setups: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabswitch_setup_generation",
				Help: "Number of completed setups",
			},
		),
	}
}

// Observe counts every switch sw publishes on its bus. The returned func
// stops observing.
func (m *Metrics) Observe(sw *tabs.Switcher) func() {
	m.Sync(sw)
	return sw.Bus().Subscribe(func(t *tabs.Tab) {
		m.Switches.WithLabelValues(t.ID).Inc()
		m.Sync(sw)
	})
}

// Sync refreshes the gauges from sw.
func (m *Metrics) Sync(sw *tabs.Switcher) {
	m.Tabs.Set(float64(sw.Len()))
	m.ActiveIndex.Set(float64(sw.ActiveIndex()))
	m.Setups.Set(float64(sw.Generation()))
}

// ClientCounter reports how many clients follow the control socket.
type ClientCounter interface {
	ClientCount() int
}

// WatchClients exports c's subscriber count. Call it once per Metrics.
func (m *Metrics) WatchClients(c ClientCounter) {
	promauto.With(m.registry).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "tabswitch_control_clients",
			Help: "Number of clients subscribed to the control socket",
		},
		func() float64 { return float64(c.ClientCount()) },
	)
}

// RecordError counts a failed request from source ("key", "config",
// "control").
func (m *Metrics) RecordError(source string) {
	m.Errors.WithLabelValues(source).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
