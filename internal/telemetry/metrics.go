// Package telemetry keeps run counters for the batch job and writes them in
// the Prometheus text format for the node_exporter textfile collector.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	reg *prometheus.Registry

	RowsRead       prometheus.Counter
	RowsKept       prometheus.Counter
	EntriesWritten *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schoolindex",
			Name:      "rows_read_total",
			Help:      "Data rows read from the input table.",
		}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schoolindex",
			Name:      "rows_kept_total",
			Help:      "Rows that passed the high-school filter.",
		}),
		EntriesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schoolindex",
			Name:      "entries_written_total",
			Help:      "Entries handed to each sink.",
		}, []string{"sink"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "schoolindex",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "schoolindex",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
	m.reg = prometheus.NewRegistry()
	m.reg.MustRegister(m.RowsRead, m.RowsKept, m.EntriesWritten, m.RunDuration, m.LastSuccess)
	return m
}

// Observe records the outcome of one run.
func (m *Metrics) Observe(start time.Time, err error) {
	now := time.Now()
	m.RunDuration.Set(now.Sub(start).Seconds())
	if err == nil {
		m.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes all collectors to path. The write goes through a temp
// file and rename, as the textfile collector requires.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
