package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile dumps the gathered metrics in Prometheus text format, for
// node_exporter's textfile collector or for inspection after a CLI run.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	var g prometheus.Gatherer = prometheus.DefaultGatherer
	if m.registry != nil {
		g = m.registry
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
