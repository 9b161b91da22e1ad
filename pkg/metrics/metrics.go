// Package metrics exposes Prometheus counters describing how Spider
// instances are assembled: configuration outcomes, connections built per
// driver and integrations resolved per descriptor kind.
//
// All collectors register with the default Prometheus registry on package
// initialisation. Expose them with promhttp as usual:
//
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Configuration outcomes.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// ConfigurationsTotal counts Configure calls.
	// Labels: result (success/failure)
	ConfigurationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spider_configurations_total",
			Help: "Total number of instance configurations attempted",
		},
		[]string{"result"},
	)

	// ConfigureDuration tracks how long configuration takes in seconds.
	ConfigureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spider_configure_duration_seconds",
			Help:    "Time spent configuring an instance",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
	)

	// ConnectionsOpened counts connections built from a definition.
	// Labels: driver (registered driver name)
	ConnectionsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spider_connections_opened_total",
			Help: "Total number of connections built",
		},
		[]string{"driver"},
	)

	// IntegrationsResolved counts integrations materialised from a
	// descriptor. Memoized lookups are not counted.
	// Labels: kind (type/factory/instance/container)
	IntegrationsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spider_integrations_resolved_total",
			Help: "Total number of integration descriptors resolved",
		},
		[]string{"kind"},
	)
)

// Timer measures elapsed time
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer's name.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called more
// than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ObserveConfigure records the elapsed time on ConfigureDuration and the
// outcome on ConfigurationsTotal.
func (t *Timer) ObserveConfigure(err error) time.Duration {
	d := t.Stop()
	ConfigureDuration.Observe(d.Seconds())
	if err != nil {
		ConfigurationsTotal.WithLabelValues(ResultFailure).Inc()
	} else {
		ConfigurationsTotal.WithLabelValues(ResultSuccess).Inc()
	}
	return d
}
