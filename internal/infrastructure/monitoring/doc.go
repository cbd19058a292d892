/*
Package monitoring provides Prometheus metrics for file operations.

# Overview

Streams, the CSV parser, directory walks and deletions report into a
*Metrics. Every method is safe on a nil receiver, so library components take
an optional collector and callers that do not care pass nothing.

# Usage

	metrics := monitoring.NewMetrics()
	pump := filesystem.NewPump(filesystem.WithMetrics(metrics))

	timer := monitoring.NewTimer(metrics, "csv.read")
	err := file.ReadCSV(ctx, opts)
	timer.Stop(err)

	_ = metrics.WriteTextfile("/var/lib/node_exporter/fileaccess.prom")
*/
package monitoring
