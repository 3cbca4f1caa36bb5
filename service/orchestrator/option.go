package orchestrator

import (
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/progress"
)

// Option configures the Service.
type Option func(*Service)

// WithSatisfier sets the dependency requirement check used to build graphs.
func WithSatisfier(satisfier graph.Satisfier) Option {
	return func(s *Service) {
		s.satisfier = satisfier
	}
}

// WithProgressListener registers a callback invoked on every counter change.
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = listener
	}
}

// WithRunID sets a run identifier generator.
func WithRunID(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}
