// Package prometheus renders tokenAuth counters and the refresh latency
// histogram in the Prometheus text exposition format.
//
// The exporter never registers with a global registry; mount [Exporter.Handler]
// on whatever route serves /metrics.
package prometheus
