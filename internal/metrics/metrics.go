// Package metrics keeps in-process counters for the upstream API.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Upstream counts calls to the back-office API. Failures are transport errors
// and 5xx answers only.
type Upstream struct {
	Requests     Counter
	Failures     Counter
	Unauthorized Counter

	// nanoseconds
	totalLatency Counter
}

type Snapshot struct {
	Requests     uint64        `json:"requests"`
	Failures     uint64        `json:"failures"`
	Unauthorized uint64        `json:"unauthorized"`
	AvgLatency   time.Duration `json:"avgLatencyNs"`
}

// Observe records one finished call. status is 0 when no response arrived.
func (u *Upstream) Observe(status int, d time.Duration) {
	u.Requests.Inc()
	u.totalLatency.Add(uint64(d))

	switch {
	case status == 0 || status >= http.StatusInternalServerError:
		u.Failures.Inc()
	case status == http.StatusUnauthorized:
		u.Unauthorized.Inc()
	}
}

func (u *Upstream) Snapshot() Snapshot {
	s := Snapshot{
		Requests:     u.Requests.Load(),
		Failures:     u.Failures.Load(),
		Unauthorized: u.Unauthorized.Load(),
	}
	if s.Requests > 0 {
		s.AvgLatency = time.Duration(u.totalLatency.Load() / s.Requests)
	}
	return s
}
