package monitoring

import "time"

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
}

// NewTimer creates a new timer. metrics may be nil.
func NewTimer(metrics *Metrics, op string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		op:      op,
	}
}

// Stop records the duration under "success" or "error" depending on err.
func (t *Timer) Stop(err error) time.Duration {
	duration := time.Since(t.start)
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(t.op, status, duration)
	return duration
}
