package instrumentation

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestDisabledProviderIsNoOp(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if provider.Enabled() {
		t.Error("provider should report disabled")
	}

	// The recorder of a disabled provider must accept calls without panicking.
	m := provider.Metrics()
	m.RecordToolInvocation(context.Background(), "get_tasks", ResultSuccess, time.Millisecond)
	m.RecordUpstreamRequest(context.Background(), "get_tasks", 200, time.Millisecond)
	m.RecordHTTPRequest(context.Background(), "GET", "/health", 200, time.Millisecond)

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNilMetricsRecorderIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordToolInvocation(context.Background(), "get_tasks", ResultError, time.Millisecond)
	m.RecordUpstreamRequest(context.Background(), "get_tasks", 0, time.Millisecond)
	m.RecordHTTPRequest(context.Background(), "POST", "/mcp/get_tasks", 502, time.Millisecond)
}

func TestAuditLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	audit := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true})
	audit.RecordToolInvocation(ToolInvocation{
		Tool:        "get_tasks",
		SubjectHash: "user:73475cb40a568e8d",
		Outcome:     ResultSuccess,
		Duration:    5 * time.Millisecond,
	})

	out := buf.String()
	if !strings.Contains(out, "tool invocation") || !strings.Contains(out, "get_tasks") {
		t.Errorf("audit event missing fields: %q", out)
	}
	if !strings.Contains(out, "event_id") {
		t.Errorf("audit event missing event_id: %q", out)
	}
}

func TestAuditLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	audit := NewAuditLogger(logger, AuditLoggingConfig{Enabled: false})
	audit.RecordToolInvocation(ToolInvocation{Tool: "get_tasks"})
	if buf.Len() != 0 {
		t.Errorf("disabled audit logger wrote output: %q", buf.String())
	}

	var nilAudit *AuditLogger
	nilAudit.RecordToolInvocation(ToolInvocation{Tool: "get_tasks"})
}
