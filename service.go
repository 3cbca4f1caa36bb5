package wsrun

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/viant/afs"
	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/model/workspace"
	"github.com/viant/wsrun/progress"
	"github.com/viant/wsrun/service/discovery"
	"github.com/viant/wsrun/service/orchestrator"
	"github.com/viant/wsrun/service/process"
	"github.com/viant/wsrun/service/version"
)

// Service discovers, filters and runs workspaces.
type Service struct {
	logger       *slog.Logger
	fs           afs.Service
	runner       *process.Runner
	satisfier    graph.Satisfier
	onProgress   func(progress.Progress)
	stdout       io.Writer
	stderr       io.Writer
	colors       *bool
	watchSignals bool
	tracingErr   error

	discovery    *discovery.Service
	orchestrator *orchestrator.Service
}

// New creates a service.
func New(options ...Option) *Service {
	ret := &Service{
		fs:           afs.New(),
		satisfier:    version.Satisfier,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		watchSignals: true,
	}
	for _, option := range options {
		option(ret)
	}
	ret.discovery = discovery.New(discovery.WithFS(ret.fs))
	ret.orchestrator = orchestrator.New(
		orchestrator.WithSatisfier(ret.satisfier),
		orchestrator.WithProgressListener(ret.onProgress),
	)
	return ret
}

func (s *Service) context(ctx context.Context) context.Context {
	if s.logger != nil {
		ctx = ctxlog.WithLogger(ctx, s.logger)
	}
	return ctx
}

// Workspaces discovers the workspaces under cfg.Root and applies cfg.Filter.
func (s *Service) Workspaces(ctx context.Context, cfg *Config) (*workspace.Set, error) {
	ctx = s.context(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set, err := s.discovery.Discover(ctx, cfg.Root)
	if err != nil {
		return nil, err
	}
	filtered, err := cfg.Filter.Apply(set)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("workspaces selected", "discovered", set.Len(), "selected", filtered.Len(), "names", filtered.Names())
	return filtered, nil
}

// Run executes task for every selected workspace.
func (s *Service) Run(ctx context.Context, cfg *Config, task orchestrator.Task) error {
	ctx = s.context(ctx)
	if s.tracingErr != nil {
		ctxlog.FromContext(ctx).Warn("tracing disabled", "error", s.tracingErr)
	}
	options, err := cfg.RunOptions()
	if err != nil {
		return err
	}
	set, err := s.Workspaces(ctx, cfg)
	if err != nil {
		return err
	}
	return s.orchestrator.Run(ctx, set, options, task)
}

// Exec runs command with args in every selected workspace. Children still
// running when Exec returns, for example siblings of a failed workspace, are
// terminated with SIGTERM.
func (s *Service) Exec(ctx context.Context, cfg *Config, command string, args []string) error {
	if command == "" {
		return fmt.Errorf("command was empty")
	}
	var runner *process.Runner
	if s.runner != nil {
		runner = s.runner.Fork()
	} else {
		options := []process.Option{
			process.WithStdout(s.stdout),
			process.WithStderr(s.stderr),
			process.WithPrefix(!cfg.NoPrefix),
			process.WithProcessGroup(s.watchSignals),
		}
		if s.colors != nil {
			options = append(options, process.WithColors(*s.colors))
		}
		runner = process.New(options...)
	}
	ctx = s.context(ctx)
	defer func() {
		if count := runner.Registry().Shutdown(syscall.SIGTERM); count > 0 {
			ctxlog.FromContext(ctx).Debug("terminated remaining processes", "children", count)
		}
	}()
	if s.watchSignals {
		var stop func()
		ctx, stop = runner.Registry().Watch(ctx)
		defer stop()
	}
	return s.Run(ctx, cfg, func(ctx context.Context, ws *workspace.Workspace, all *workspace.Set) error {
		return runner.Run(ctx, ws, command, args, all)
	})
}
