package wsrun

import (
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/progress"
	"github.com/viant/wsrun/service/process"
	"github.com/viant/wsrun/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service.
type Option func(s *Service)

// WithLogger sets the logger attached to every run context.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRunner sets the process runner used by Exec.
func WithRunner(runner *process.Runner) Option {
	return func(s *Service) {
		s.runner = runner
	}
}

// WithFS sets the file system used to read manifests.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithProgressListener registers a callback receiving run counters on every change.
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = listener
	}
}

// WithSatisfier overrides the dependency requirement check.
func WithSatisfier(satisfier graph.Satisfier) Option {
	return func(s *Service) {
		s.satisfier = satisfier
	}
}

// WithStdout sets where children's stdout is written.
func WithStdout(w io.Writer) Option {
	return func(s *Service) {
		s.stdout = w
	}
}

// WithStderr sets where children's stderr is written.
func WithStderr(w io.Writer) Option {
	return func(s *Service) {
		s.stderr = w
	}
}

// WithColors forces coloured prefixes on or off.
func WithColors(enabled bool) Option {
	return func(s *Service) {
		s.colors = &enabled
	}
}

// WithSignalWatch controls whether Exec forwards SIGINT/SIGTERM to children (enabled by default).
func WithSignalWatch(enabled bool) Option {
	return func(s *Service) {
		s.watchSignals = enabled
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans go to stderr. The first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
