package signature

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "nativeudf"
	subsystem = "catalog"
)

type metrics struct {
	registrations *prometheus.CounterVec
	duplicates    *prometheus.CounterVec
	misses        *prometheus.CounterVec
}

func newMetrics() *metrics {
	labels := []string{"kind"}
	return &metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "registrations_total",
			Help:      "Count of native function signature registrations",
		}, labels),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duplicate_registrations_total",
			Help:      "Count of registrations that replaced an existing signature",
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lookup_misses_total",
			Help:      "Count of lookups with no exactly matching signature",
		}, labels),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.registrations,
		m.duplicates,
		m.misses,
	}
}
