package threepg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics run counters, safe for use by concurrent runs. A nil *Metrics records nothing.
type Metrics struct {
	Registry     *prometheus.Registry
	runs         *prometheus.CounterVec
	months       prometheus.Counter
	thinnings    prometheus.Counter
	nonConverged prometheus.Counter
	duration     prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "threepg_runs_total",
			Help: "Stand runs by outcome.",
		}, []string{"status"}),
		months: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "threepg_months_total",
			Help: "Simulated months.",
		}),
		thinnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "threepg_thinning_events_total",
			Help: "Months in which self-thinning removed stems.",
		}),
		nonConverged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "threepg_thinning_nonconverged_total",
			Help: "Self-thinning solves that hit the iteration cap.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "threepg_run_duration_seconds",
			Help:    "Wall time of a single stand run.",
			Buckets: prometheus.ExponentialBuckets(.001, 4, 8),
		}),
	}
	m.Registry.MustRegister(m.runs, m.months, m.thinnings, m.nonConverged, m.duration)
	return m
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(fp string) error {
	return prometheus.WriteToTextfile(fp, m.Registry)
}

func (m *Metrics) month(r *Record, thinned bool) {
	if m == nil {
		return
	}
	m.months.Inc()
	if thinned {
		m.thinnings.Inc()
	}
	if !r.ThinningConverged {
		m.nonConverged.Inc()
	}
}

func (m *Metrics) run(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.duration.Observe(d.Seconds())
}
