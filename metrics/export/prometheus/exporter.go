package prometheus

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/MrEthical07/tokenAuth/metrics/export/internaldefs"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

// Source is satisfied by *tokenAuth.Engine.
type Source interface {
	MetricsSnapshot() tokenAuth.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter renders a Source in the Prometheus text exposition format.
type Exporter struct {
	source Source
}

func NewExporter(source Source) *Exporter {
	return &Exporter{source: source}
}

// Handler serves the exposition on every request.
func (p *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		bw := bufio.NewWriter(w)
		_, _ = p.WriteTo(bw)
		_ = bw.Flush()
	})
}

// Render returns the exposition text. It is empty while metrics are disabled
// and no audit events were dropped.
func (p *Exporter) Render() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	return b.String()
}

// WriteTo writes one snapshot to w.
func (p *Exporter) WriteTo(w io.Writer) (int64, error) {
	if p == nil || p.source == nil {
		return 0, nil
	}
	snap := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snap.Counters) == 0 && len(snap.Histograms) == 0 && dropped == 0 {
		return 0, nil
	}

	cw := &countingWriter{w: w}
	for _, def := range internaldefs.CounterDefs {
		cw.counter(def.Name, def.Help, snap.Counters[def.ID])
	}
	for _, def := range internaldefs.HistogramDefs {
		if raw, ok := snap.Histograms[def.ID]; ok {
			cw.histogram(def.Name, def.Help, internaldefs.Cumulative(raw))
		}
	}
	cw.counter("tokenauth_audit_dropped_total", "Audit events dropped on a full buffer.", dropped)
	return cw.n, cw.err
}

// countingWriter stops writing after the first error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	n, err := fmt.Fprintf(c.w, format, args...)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) header(name, help, kind string) {
	c.printf("# HELP %s %s\n# TYPE %s %s\n", name, escapeHelp(help), name, kind)
}

func (c *countingWriter) counter(name, help string, v uint64) {
	c.header(name, help, "counter")
	c.printf("%s %d\n", name, v)
}

func (c *countingWriter) histogram(name, help string, cumulative [internaldefs.BucketCount]uint64) {
	c.header(name, help, "histogram")
	for i, le := range internaldefs.HistogramBounds {
		c.printf("%s_bucket{le=%q} %d\n", name, le, cumulative[i])
	}
	// Only bucket counts are kept, so the sum is unknown.
	c.printf("%s_count %d\n%s_sum 0\n", name, cumulative[internaldefs.BucketCount-1], name)
}

var helpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func escapeHelp(help string) string {
	return helpEscaper.Replace(help)
}
