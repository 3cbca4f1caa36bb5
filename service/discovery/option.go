package discovery

import "github.com/viant/afs"

// Option configures the Service.
type Option func(*Service)

// WithFS sets the file system used to read manifests.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithConcurrency sets how many manifests are loaded at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}
