package tokenAuth

import (
	"sync/atomic"
	"time"
)

// MetricID names one in-process counter or histogram.
type MetricID uint16

const (
	MetricSignupSuccess MetricID = iota
	MetricSignupDuplicate
	MetricSignupFailure
	MetricLoginSuccess
	MetricLoginFailure
	MetricLogoutSuccess
	MetricLogoutFailure
	// MetricLogoutMismatch counts logouts whose access token subject did not
	// own the refresh session.
	MetricLogoutMismatch
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricRefreshAccountInactive
	MetricSessionCreated
	MetricSessionDeleted
	MetricAuthenticateSuccess
	MetricAuthenticateFailure
	// MetricRefreshLatency is the only histogram; Inc ignores it.
	MetricRefreshLatency
	metricIDCount
)

// latencyBounds are inclusive upper bounds; anything slower lands in the
// final overflow bucket.
var latencyBounds = [...]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

const latencyBucketCount = len(latencyBounds) + 1

// counter sits alone on a cache line so hot paths on different ids do not
// contend.
type counter struct {
	atomic.Uint64
	_ [56]byte
}

type latencyHistogram [latencyBucketCount]atomic.Uint64

func (h *latencyHistogram) observe(d time.Duration) {
	i := 0
	for i < len(latencyBounds) && d > latencyBounds[i] {
		i++
	}
	h[i].Add(1)
}

func (h *latencyHistogram) load() []uint64 {
	out := make([]uint64, latencyBucketCount)
	for i := range h {
		out[i] = h[i].Load()
	}
	return out
}

// Metrics holds lock-free counters. A nil or disabled *Metrics records nothing.
type Metrics struct {
	enabled  bool
	latency  bool
	counters [metricIDCount]counter
	refresh  latencyHistogram
}

// MetricsSnapshot is a point-in-time copy of every counter and histogram.
// Histogram buckets are per-bucket counts, not cumulative.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
		latency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool { return m != nil && m.enabled }

func (m *Metrics) LatencyEnabled() bool { return m != nil && m.latency }

func (m *Metrics) Inc(id MetricID) {
	if !m.Enabled() || id >= MetricRefreshLatency {
		return
	}
	m.counters[id].Add(1)
}

// Observe records d for id. Only MetricRefreshLatency carries a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if !m.LatencyEnabled() || id != MetricRefreshLatency {
		return
	}
	m.refresh.observe(d)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= MetricRefreshLatency {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot copies all counters. The histogram is present only when latency
// tracking is enabled.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
	if !m.Enabled() {
		return s
	}
	for id := MetricID(0); id < MetricRefreshLatency; id++ {
		s.Counters[id] = m.counters[id].Load()
	}
	if m.latency {
		s.Histograms[MetricRefreshLatency] = m.refresh.load()
	}
	return s
}
