package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for file operations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Operation metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Stream metrics
	BytesRead    prometheus.Counter
	BytesWritten prometheus.Counter
	Chunks       *prometheus.CounterVec
	Drains       prometheus.Counter

	// Parser metrics
	RowsParsed  prometheus.Counter
	RowsWritten prometheus.Counter

	// Walk metrics
	WalkEntries prometheus.Counter
	Deletions   prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates collectors registered on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg)
	m.registry = reg
	return m
}

// NewMetricsWith registers the collectors on reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileaccess_operations_total",
				Help: "Total number of file operations",
			},
			[]string{"op", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileaccess_operation_duration_seconds",
				Help:    "File operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"op"},
		),

		BytesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_bytes_read_total",
				Help: "Bytes delivered to read hooks",
			},
		),
		BytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_bytes_written_total",
				Help: "Bytes accepted by write sinks",
			},
		),
		Chunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileaccess_chunks_total",
				Help: "Chunks moved through the stream pump",
			},
			[]string{"direction"},
		),
		Drains: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_write_drains_total",
				Help: "Times a write loop suspended on backpressure",
			},
		),

		RowsParsed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_csv_rows_parsed_total",
				Help: "CSV data rows produced by the chunk parser",
			},
		),
		RowsWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_csv_rows_written_total",
				Help: "CSV data rows serialized for writing",
			},
		),

		WalkEntries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_walk_entries_total",
				Help: "Directory entries visited by walks",
			},
		),
		Deletions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileaccess_deletions_total",
				Help: "Paths removed by delete operations",
			},
		),
	}
}

// Registry returns the private registry created by NewMetrics, or nil.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordOperation records one completed operation.
func (m *Metrics) RecordOperation(op, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// AddRead records one chunk of n bytes handed to a read hook.
func (m *Metrics) AddRead(n int) {
	if m == nil {
		return
	}
	m.BytesRead.Add(float64(n))
	m.Chunks.WithLabelValues("read").Inc()
}

// AddWrite records one chunk of n bytes accepted by a write sink.
func (m *Metrics) AddWrite(n int) {
	if m == nil {
		return
	}
	m.BytesWritten.Add(float64(n))
	m.Chunks.WithLabelValues("write").Inc()
}

// IncDrains records a write loop suspension.
func (m *Metrics) IncDrains() {
	if m == nil {
		return
	}
	m.Drains.Inc()
}

// AddRowsParsed records parsed CSV rows.
func (m *Metrics) AddRowsParsed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.RowsParsed.Add(float64(n))
}

// AddRowsWritten records serialized CSV rows.
func (m *Metrics) AddRowsWritten(n int) {
	if m == nil || n == 0 {
		return
	}
	m.RowsWritten.Add(float64(n))
}

// AddWalkEntries records visited directory entries.
func (m *Metrics) AddWalkEntries(n int) {
	if m == nil || n == 0 {
		return
	}
	m.WalkEntries.Add(float64(n))
}

// IncDeletions records one removed path.
func (m *Metrics) IncDeletions() {
	if m == nil {
		return
	}
	m.Deletions.Inc()
}
