package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change; fields may be negative.
type Delta struct {
	Total     int
	Completed int
	Failed    int
	Running   int
	Pending   int
}

// Started moves one task from pending to running.
func Started() Delta { return Delta{Pending: -1, Running: 1} }

// Finished moves one task from running to completed or failed.
func Finished(err error) Delta {
	if err != nil {
		return Delta{Running: -1, Failed: 1}
	}
	return Delta{Running: -1, Completed: 1}
}

// Progress keeps task counters of a run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	Strategy  string
	StartedAt time.Time

	Total     int
	Completed int
	Failed    int
	Running   int
	Pending   int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the delta. The onChange callback, if any, receives a copy
// taken under the lock and is invoked outside of it.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Total += d.Total
	p.Completed += d.Completed
	p.Failed += d.Failed
	p.Running += d.Running
	p.Pending += d.Pending
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:     p.RunID,
		Strategy:  p.Strategy,
		StartedAt: p.StartedAt,
		Total:     p.Total,
		Completed: p.Completed,
		Failed:    p.Failed,
		Running:   p.Running,
		Pending:   p.Pending,
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Done reports whether every task of a snapshot settled.
func (p *Progress) Done() bool {
	return p.Completed+p.Failed == p.Total
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker with total pending tasks and embeds it in a derived context.
func WithNewTracker(ctx context.Context, runID, strategy string, total int, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Strategy:  strategy,
		StartedAt: time.Now(),
		Total:     total,
		Pending:   total,
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
