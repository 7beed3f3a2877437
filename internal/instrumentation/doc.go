// Package instrumentation provides metrics and audit logging.
//
// Metrics are recorded through OpenTelemetry instruments backed by the
// Prometheus exporter; the dedicated metrics server in internal/server
// exposes them for scraping. The zero-value Metrics recorder is a no-op, so
// instrumentation can be disabled without sprinkling nil checks through the
// call sites.
//
// Audit events are structured slog records with unique event identifiers and
// anonymized user identifiers only.
package instrumentation
