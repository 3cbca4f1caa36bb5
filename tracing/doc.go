// Package tracing wraps OpenTelemetry so that a run and each workspace task
// can be recorded as spans. Tracing is opt-in: until Init or
// InitWithExporter is called spans are no-op.
package tracing
