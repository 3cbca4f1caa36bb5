package process

import "io"

// Option configures the Runner.
type Option func(*Runner)

// WithStdout sets the destination of children's stdout.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		r.stdout = &lockedWriter{w: w}
	}
}

// WithStderr sets the destination of children's stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Runner) {
		r.stderr = &lockedWriter{w: w}
	}
}

// WithPrefix enables or disables the workspace name prefix.
func WithPrefix(enabled bool) Option {
	return func(r *Runner) {
		r.prefix = enabled
	}
}

// WithColors forces coloured prefixes on or off; by default colours follow terminal detection.
func WithColors(enabled bool) Option {
	return func(r *Runner) {
		r.colors = &enabled
	}
}

// WithRegistry sets the registry children are tracked in.
func WithRegistry(registry *Registry) Option {
	return func(r *Runner) {
		r.registry = registry
	}
}

// WithShell overrides the shell binary.
func WithShell(shell string) Option {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithProcessGroup starts every child in its own process group so that
// signals reach the whole tree spawned by the shell. Children then no longer
// receive terminal signals directly; pair it with Registry.Watch.
func WithProcessGroup(enabled bool) Option {
	return func(r *Runner) {
		r.group = enabled
	}
}
