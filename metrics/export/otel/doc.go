// Package otel publishes tokenAuth metrics as OpenTelemetry observable
// instruments.
//
// [NewExporter] creates one Int64ObservableCounter per counter. The latency
// histogram becomes a "_bucket" gauge with one data point per "le" attribute
// plus a "_count" gauge. A single callback reads MetricsSnapshot at
// collection time. The caller owns the Meter and its provider.
package otel
