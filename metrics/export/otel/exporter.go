package otel

import (
	"context"
	"errors"
	"fmt"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/MrEthical07/tokenAuth/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

// Source is satisfied by *tokenAuth.Engine.
type Source interface {
	MetricsSnapshot() tokenAuth.MetricsSnapshot
	AuditDropped() uint64
}

type counterBinding struct {
	id  tokenAuth.MetricID
	obs metric.Int64ObservableCounter
}

// histogramBinding reports cumulative buckets on one gauge, one data point
// per "le" attribute, mirroring the Prometheus layout.
type histogramBinding struct {
	id      tokenAuth.MetricID
	buckets metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

var leOptions = func() (out [internaldefs.BucketCount]metric.ObserveOption) {
	for i, le := range internaldefs.HistogramBounds {
		out[i] = metric.WithAttributeSet(attribute.NewSet(attribute.String("le", le)))
	}
	return out
}()

// Exporter publishes a Source through asynchronous OTel instruments. Values
// are read from the Source at collection time.
type Exporter struct {
	source       Source
	counters     []counterBinding
	histograms   []histogramBinding
	auditDropped metric.Int64ObservableCounter
	registration metric.Registration
}

func NewExporter(meter metric.Meter, source Source) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &Exporter{source: source}
	var all []metric.Observable
	newCounter := func(name, help string) (metric.Int64ObservableCounter, error) {
		c, err := meter.Int64ObservableCounter(name, metric.WithDescription(help))
		if err != nil {
			return nil, fmt.Errorf("otel counter %s: %w", name, err)
		}
		all = append(all, c)
		return c, nil
	}
	newGauge := func(name, help string) (metric.Int64ObservableGauge, error) {
		g, err := meter.Int64ObservableGauge(name, metric.WithDescription(help))
		if err != nil {
			return nil, fmt.Errorf("otel gauge %s: %w", name, err)
		}
		all = append(all, g)
		return g, nil
	}

	for _, def := range internaldefs.CounterDefs {
		c, err := newCounter(def.Name, def.Help)
		if err != nil {
			return nil, err
		}
		e.counters = append(e.counters, counterBinding{id: def.ID, obs: c})
	}
	for _, def := range internaldefs.HistogramDefs {
		buckets, err := newGauge(def.Name+"_bucket", def.Help+" Cumulative count per upper bound.")
		if err != nil {
			return nil, err
		}
		count, err := newGauge(def.Name+"_count", def.Help+" Total samples.")
		if err != nil {
			return nil, err
		}
		e.histograms = append(e.histograms, histogramBinding{id: def.ID, buckets: buckets, count: count})
	}
	dropped, err := newCounter("tokenauth_audit_dropped_total", "Audit events dropped on a full buffer.")
	if err != nil {
		return nil, err
	}
	e.auditDropped = dropped

	if e.registration, err = meter.RegisterCallback(e.observe, all...); err != nil {
		return nil, fmt.Errorf("otel register callback: %w", err)
	}
	return e, nil
}

func (e *Exporter) observe(_ context.Context, o metric.Observer) error {
	snap := e.source.MetricsSnapshot()
	for _, c := range e.counters {
		o.ObserveInt64(c.obs, int64(snap.Counters[c.id]))
	}
	for _, h := range e.histograms {
		raw, ok := snap.Histograms[h.id]
		if !ok {
			continue
		}
		cum := internaldefs.Cumulative(raw)
		for i, v := range cum {
			o.ObserveInt64(h.buckets, int64(v), leOptions[i])
		}
		o.ObserveInt64(h.count, int64(cum[internaldefs.BucketCount-1]))
	}
	o.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	return nil
}

// Close unregisters the collection callback.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
