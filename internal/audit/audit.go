package audit

import (
	"context"
	"log/slog"
)

// Event represents an audit entry for one tool invocation.
type Event struct {
	// Type describes the event kind (tool_call, tool_ok, tool_error).
	Type string
	// Tool is the tool name.
	Tool string
	// RequestID links the call and completion events.
	RequestID string
	// Error holds the failure message for tool_error events.
	Error string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(_ context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []any{
		"type", event.Type,
		"tool", event.Tool,
		"request_id", event.RequestID,
	}
	if event.Error != "" {
		attrs = append(attrs, "error", event.Error)
	}
	l.logger.Info("audit", attrs...)
}
