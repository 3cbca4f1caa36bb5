package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/model/workspace"
	"github.com/viant/wsrun/service/limiter"
)

// Action is executed once per workspace.
type Action func(ctx context.Context, ws *workspace.Workspace) error

// Scheduler executes actions in dependency order.
type Scheduler struct {
	graph   *graph.Graph
	limiter *limiter.Limiter
}

// New creates a scheduler over g admitting work through l.
func New(g *graph.Graph, l *limiter.Limiter) *Scheduler {
	return &Scheduler{graph: g, limiter: l}
}

type run struct {
	*Scheduler
	ctx       context.Context
	action    Action
	mux       sync.Mutex
	pending   []int
	remaining int
	failed    bool
	done      chan error
}

// Run executes action on every node exactly once. A cyclic graph is rejected
// with graph.ErrCycle before anything starts. The first action error closes
// the limiter, so no further node is admitted, and is returned immediately
// without waiting for actions that are already running.
func (s *Scheduler) Run(ctx context.Context, action Action) error {
	if err := s.graph.DetectCycles(); err != nil {
		return err
	}
	if s.graph.Len() == 0 {
		return nil
	}
	r := &run{
		Scheduler: s,
		ctx:       ctx,
		action:    action,
		pending:   make([]int, s.graph.Len()),
		remaining: s.graph.Len(),
		done:      make(chan error, 1),
	}
	r.mux.Lock()
	for _, id := range s.graph.Nodes() {
		r.pending[id] = len(s.graph.Dependencies(id))
	}
	for _, id := range s.graph.Nodes() {
		if r.pending[id] == 0 {
			if err := r.submit(id); err != nil {
				r.mux.Unlock()
				return err
			}
		}
	}
	r.mux.Unlock()

	select {
	case err := <-r.done:
		return err
	case <-ctx.Done():
		s.limiter.Close()
		return ctx.Err()
	}
}

// submit must be called with r.mux held.
func (r *run) submit(id workspace.ID) error {
	ws := r.graph.Set().Get(id)
	ctxlog.FromContext(r.ctx).Debug("workspace eligible", "workspace", ws.Name)
	if err := r.limiter.Submit(func() { r.execute(ws) }); err != nil {
		return fmt.Errorf("failed to schedule %v: %w", ws.Name, err)
	}
	return nil
}

func (r *run) execute(ws *workspace.Workspace) {
	err := r.action(r.ctx, ws)
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.failed {
		return
	}
	if err != nil {
		r.failed = true
		r.limiter.Close()
		r.done <- err
		return
	}
	r.remaining--
	if r.remaining == 0 {
		r.done <- nil
		return
	}
	for _, dependent := range r.graph.Dependents(ws.ID) {
		r.pending[dependent]--
		if r.pending[dependent] == 0 {
			if err := r.submit(dependent); err != nil {
				r.failed = true
				r.done <- err
				return
			}
		}
	}
}
