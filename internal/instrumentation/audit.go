package instrumentation

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ToolInvocation describes one audited tool call. SubjectHash is the
// anonymized user identifier, or empty for unauthenticated operations.
type ToolInvocation struct {
	Tool        string
	SubjectHash string
	Outcome     string
	Duration    time.Duration
}

// AuditLogger records tool invocations as structured log events. Each event
// carries a unique identifier so downstream log pipelines can deduplicate.
type AuditLogger struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditLogger creates an AuditLogger. A nil logger falls back to
// slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger, enabled: config.Enabled}
}

// RecordToolInvocation emits one audit event. Safe on a nil or disabled
// logger.
func (a *AuditLogger) RecordToolInvocation(inv ToolInvocation) {
	if a == nil || !a.enabled {
		return
	}
	attrs := []any{
		slog.String("event_id", uuid.NewString()),
		slog.String("tool", inv.Tool),
		slog.String("outcome", inv.Outcome),
		slog.Duration("duration", inv.Duration),
	}
	if inv.SubjectHash != "" {
		attrs = append(attrs, slog.String("subject_hash", inv.SubjectHash))
	}
	a.logger.Info("tool invocation", attrs...)
}
