package telephony

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// CallEvent is a provider status notification for one call leg.
// Immutable; received once per callback invocation.
type CallEvent struct {
	CallSid         string
	CallStatus      string
	DurationSeconds int
	From            string
	To              string
	OccurredAt      time.Time
}

// EventSink receives call events. The core ships a log-only sink; a
// collaborator system that persists or analyzes events plugs in here.
//
// Sinks must treat events as append-only facts. No Update/Delete by design.
type EventSink interface {
	Record(ctx context.Context, e CallEvent) error
}

// LogSink writes call events to the structured log and nothing else.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Record(ctx context.Context, e CallEvent) error {
	if s == nil || s.log == nil {
		return errors.New("telephony: log sink not configured")
	}
	s.log.InfoContext(ctx, "call status update",
		"call_sid", e.CallSid,
		"status", e.CallStatus,
		"duration_s", e.DurationSeconds,
		"from", e.From,
		"to", e.To,
	)
	return nil
}
