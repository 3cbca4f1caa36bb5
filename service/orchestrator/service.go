package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/wsrun/internal/clock"
	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/internal/idgen"
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/model/run"
	"github.com/viant/wsrun/model/workspace"
	"github.com/viant/wsrun/progress"
	"github.com/viant/wsrun/service/limiter"
	"github.com/viant/wsrun/service/scheduler"
	"github.com/viant/wsrun/service/version"
	"github.com/viant/wsrun/tracing"
)

// Task is executed once per workspace; all is the whole run set.
type Task func(ctx context.Context, ws *workspace.Workspace, all *workspace.Set) error

// Service orchestrates task execution over a workspace set.
type Service struct {
	satisfier  graph.Satisfier
	onProgress func(progress.Progress)
	newRunID   func() string
}

// New creates an orchestrator.
func New(opts ...Option) *Service {
	ret := &Service{satisfier: version.Satisfier, newRunID: idgen.New}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// collector records failures in continue-on-error mode.
type collector struct {
	mux    sync.Mutex
	errors []error
}

func (c *collector) add(ws *workspace.Workspace, err error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.errors = append(c.errors, &TaskError{Workspace: ws.Name, Err: err})
}

func (c *collector) err() error {
	c.mux.Lock()
	defer c.mux.Unlock()
	if len(c.errors) == 0 {
		return nil
	}
	return &AggregateError{Errors: append([]error{}, c.errors...)}
}

// Run executes task for every workspace of set. Without continue-on-error
// the first task error is returned as-is; running tasks are neither
// cancelled nor awaited and no further task starts. With continue-on-error
// every failure is collected and reported as *AggregateError once all tasks
// settled.
func (s *Service) Run(ctx context.Context, set *workspace.Set, options *run.Options, task Task) (err error) {
	if options == nil {
		options = &run.Options{}
	}
	if err = options.Validate(); err != nil {
		return err
	}
	strategy := options.Strategy()
	runID := s.newRunID()
	logger := ctxlog.FromContext(ctx).With("runID", runID, "strategy", string(strategy))
	ctx = ctxlog.WithLogger(ctx, logger)
	ctx, tracker := progress.WithNewTracker(ctx, runID, string(strategy), set.Len(), s.onProgress)
	ctx, span := tracing.StartSpan(ctx, "wsrun.run")
	span.WithAttributes(map[string]string{
		"run.id":            runID,
		"run.strategy":      string(strategy),
		"run.parallel":      options.Parallel.String(),
		"run.orderByDeps":   options.Ordering.String(),
		"run.workspaces":    fmt.Sprintf("%d", set.Len()),
		"run.continueOnErr": fmt.Sprintf("%v", options.ContinueOnError),
	})
	started := clock.Now()
	logger.Debug("run started", "workspaces", set.Len(), "parallel", options.Parallel.String(), "orderByDeps", options.Ordering.String())
	defer func() {
		tracing.EndSpan(span, err)
		snapshot := tracker.Snapshot()
		attrs := []any{"elapsed", clock.Since(started), "completed", snapshot.Completed, "failed", snapshot.Failed, "pending", snapshot.Pending}
		if err != nil {
			logger.Debug("run failed", append(attrs, "error", err)...)
			return
		}
		logger.Debug("run completed", attrs...)
	}()

	failures := &collector{}
	action := s.wrap(set, options.ContinueOnError, failures, task)
	switch strategy {
	case run.StrategySerial:
		err = s.runSerial(ctx, set, action)
	case run.StrategySerialGraph:
		err = s.runGraph(ctx, s.buildGraph(ctx, set, options.Ordering), run.Serial(), action)
	case run.StrategyParallel:
		err = s.runGraph(ctx, graph.New(set), options.Parallel, action)
	case run.StrategyParallelGraph:
		err = s.runGraph(ctx, s.buildGraph(ctx, set, options.Ordering), options.Parallel, action)
	default:
		err = fmt.Errorf("unsupported strategy: %v", strategy)
	}
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	return failures.err()
}

// wrap decorates task with progress, tracing and the continue-on-error policy.
func (s *Service) wrap(set *workspace.Set, continueOnError bool, failures *collector, task Task) scheduler.Action {
	return func(ctx context.Context, ws *workspace.Workspace) error {
		logger := ctxlog.FromContext(ctx).With("workspace", ws.Name)
		ctx = ctxlog.WithLogger(ctx, logger)
		ctx, span := tracing.StartSpan(ctx, "wsrun.workspace")
		span.WithAttributes(map[string]string{"workspace.name": ws.Name, "workspace.dir": ws.Dir})
		progress.UpdateCtx(ctx, progress.Started())
		logger.Debug("workspace started")
		err := task(ctx, ws, set)
		progress.UpdateCtx(ctx, progress.Finished(err))
		tracing.EndSpan(span, err)
		if err == nil {
			logger.Debug("workspace completed")
			return nil
		}
		if continueOnError {
			logger.Warn("workspace failed, continuing", "error", err)
			failures.add(ws, err)
			return nil
		}
		logger.Debug("workspace failed", "error", err)
		return err
	}
}

func (s *Service) runSerial(ctx context.Context, set *workspace.Set, action scheduler.Action) error {
	for _, ws := range set.Items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := action(ctx, ws); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runGraph(ctx context.Context, g *graph.Graph, parallel run.Parallelism, action scheduler.Action) error {
	l := limiter.NewFor(parallel)
	defer l.Close()
	ctxlog.FromContext(ctx).Debug("limiter created", "limit", l.Limit())
	return scheduler.New(g, l).Run(ctx, action)
}

func (s *Service) buildGraph(ctx context.Context, set *workspace.Set, ordering run.Ordering) *graph.Graph {
	ret := graph.Build(set, ordering.DependencyTypes(), s.satisfier)
	if logger := ctxlog.FromContext(ctx); logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("dependency graph", "graph", ret.DependencyNames())
	}
	return ret
}
