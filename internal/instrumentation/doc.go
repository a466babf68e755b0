// Package instrumentation provides OpenTelemetry metrics and tracing
// plus slog-based audit logging for tool invocations.
//
// Metrics are exported via Prometheus by default, with OTLP and stdout
// exporters available through configuration. Tracing is off unless an
// exporter is configured. Audit logs anonymize the caller's phone
// number unless PII inclusion is explicitly enabled.
package instrumentation
