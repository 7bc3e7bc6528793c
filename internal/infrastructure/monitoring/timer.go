package monitoring

import "time"

// Timer measures a request from dispatch to settlement.
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer creates a new timer. A nil metrics collector yields a timer whose
// Stop only reports the elapsed time.
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop records the request with its final status and returns the elapsed time.
func (t *Timer) Stop(status int) time.Duration {
	duration := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordRequest(t.method, status, duration)
	}
	return duration
}
