package monitoring

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AddRead(10)
		m.AddWrite(10)
		m.IncDrains()
		m.AddRowsParsed(3)
		m.AddRowsWritten(3)
		m.AddWalkEntries(4)
		m.IncDeletions()
		m.RecordOperation("read", "success", 0)
		NewTimer(m, "read").Stop(nil)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.AddRead(100)
	m.AddRead(28)
	m.AddWrite(64)
	m.IncDrains()
	m.AddRowsParsed(5)
	m.AddWalkEntries(7)
	m.IncDeletions()

	assert.Equal(t, float64(128), testutil.ToFloat64(m.BytesRead))
	assert.Equal(t, float64(64), testutil.ToFloat64(m.BytesWritten))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Chunks.WithLabelValues("read")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Chunks.WithLabelValues("write")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Drains))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.RowsParsed))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.WalkEntries))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Deletions))
}

func TestTimerStatus(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "walk").Stop(nil)
	NewTimer(m, "walk").Stop(errors.New("boom"))
	NewTimer(m, "walk").Stop(nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Operations.WithLabelValues("walk", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Operations.WithLabelValues("walk", "error")))
}

func TestSeparateRegistries(t *testing.T) {
	// Two collectors must not collide on registration.
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.AddRowsParsed(3)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "fileaccess_csv_rows_parsed_total 3"))
}
