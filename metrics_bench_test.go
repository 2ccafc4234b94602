package tokenAuth

import (
	"testing"
	"time"
)

func BenchmarkMetricsInc(b *testing.B) {
	for _, enabled := range []bool{true, false} {
		name := "disabled"
		if enabled {
			name = "enabled"
		}
		b.Run(name, func(b *testing.B) {
			m := NewMetrics(MetricsConfig{Enabled: enabled})
			b.ReportAllocs()
			for b.Loop() {
				m.Inc(MetricRefreshSuccess)
			}
		})
	}
}

// Each refresh request bumps these together.
var refreshRequestIDs = []MetricID{
	MetricAuthenticateSuccess,
	MetricRefreshSuccess,
	MetricSessionCreated,
	MetricSessionDeleted,
}

func BenchmarkMetricsRefreshRequestParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for _, id := range refreshRequestIDs {
				m.Inc(id)
			}
			m.Observe(MetricRefreshLatency, 3*time.Millisecond)
		}
	})
}
