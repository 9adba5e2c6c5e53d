package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

const namespace = "cowin_dashboard"

// Collector records dashboard lifecycle metrics.
type Collector struct {
	transitions   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	active        prometheus.Gauge
}

// NewCollector registers the dashboard metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_transitions_total",
				Help:      "Dashboard status transitions by target status",
			},
			[]string{"status"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Time from entering LOADING until the fetch resolved",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		active: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_dashboards",
				Help:      "Number of mounted dashboards",
			},
		),
	}
}

// OnTransition implements dashboard.Observer.
func (c *Collector) OnTransition(t dashboard.Transition) {
	c.transitions.WithLabelValues(t.To.String()).Inc()
	if t.To.IsTerminal() {
		c.fetchDuration.WithLabelValues(t.To.String()).Observe(t.Elapsed.Seconds())
	}
}

// Active is the gauge the dashboard manager reports live instances to.
func (c *Collector) Active() prometheus.Gauge {
	return c.active
}
