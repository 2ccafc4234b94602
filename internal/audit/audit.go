package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event is one security-relevant outcome. Refresh token ids are never recorded.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Handle    string            `json:"handle,omitempty"`
	IP        string            `json:"ip,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink receives emitted audit events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink writes audit events into a buffered channel.
// Emit blocks until the event is accepted or ctx is done.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per line. Writes are serialized.
type JSONWriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	if w == nil {
		w = io.Discard
	}
	return &JSONWriterSink{enc: json.NewEncoder(w)}
}

func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(event)
}

// MarshalLogObject lets an Event be logged as a single zap field.
func (e Event) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", e.EventType)
	enc.AddTime("at", e.Timestamp)
	enc.AddBool("success", e.Success)
	for _, f := range [...]struct{ key, val string }{
		{"user_id", e.UserID},
		{"handle", e.Handle},
		{"ip", e.IP},
		{"user_agent", e.UserAgent},
		{"error", e.Error},
	} {
		if f.val != "" {
			enc.AddString(f.key, f.val)
		}
	}
	if len(e.Metadata) == 0 {
		return nil
	}
	return enc.AddObject("metadata", zapcore.ObjectMarshalerFunc(func(m zapcore.ObjectEncoder) error {
		for k, v := range e.Metadata {
			m.AddString(k, v)
		}
		return nil
	}))
}

// ZapSink logs successes at Info and failures at Warn under the "audit" logger.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger.Named("audit")}
}

func (s *ZapSink) Emit(_ context.Context, event Event) {
	level := zapcore.InfoLevel
	if !event.Success {
		level = zapcore.WarnLevel
	}
	s.logger.Log(level, event.EventType, zap.Object("event", event))
}
