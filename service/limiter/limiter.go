package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned when submitting to a closed limiter.
var ErrClosed = errors.New("limiter closed")

// Limiter admits at most limit functions concurrently; limit <= 0 means unbounded.
type Limiter struct {
	limit  int
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc

	mux    sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	active   atomic.Int64
	admitted atomic.Int64
}

// New creates a limiter and starts its dispatcher. Close must be called to
// release the dispatcher goroutine.
func New(limit int) *Limiter {
	ctx, cancel := context.WithCancel(context.Background())
	ret := &Limiter{limit: limit, ctx: ctx, cancel: cancel}
	ret.cond = sync.NewCond(&ret.mux)
	if limit > 0 {
		ret.sem = semaphore.NewWeighted(int64(limit))
	}
	go ret.dispatch()
	return ret
}

// Limit returns the configured bound, 0 when unbounded.
func (l *Limiter) Limit() int {
	if l.limit < 0 {
		return 0
	}
	return l.limit
}

// Active returns number of admitted functions that have not returned yet.
func (l *Limiter) Active() int {
	return int(l.active.Load())
}

// Admitted returns number of functions admitted so far.
func (l *Limiter) Admitted() int {
	return int(l.admitted.Load())
}

// Submit queues fn; it runs on its own goroutine once a slot is free.
func (l *Limiter) Submit(fn func()) error {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
	return nil
}

// Close stops admitting work: queued functions are dropped and never run.
// Already admitted functions keep running. Close is idempotent.
func (l *Limiter) Close() {
	l.mux.Lock()
	if l.closed {
		l.mux.Unlock()
		return
	}
	l.closed = true
	l.queue = nil
	l.cancel()
	l.cond.Broadcast()
	l.mux.Unlock()
}

// Pending returns number of queued, not yet admitted functions.
func (l *Limiter) Pending() int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return len(l.queue)
}

func (l *Limiter) next() (func(), bool) {
	l.mux.Lock()
	defer l.mux.Unlock()
	for len(l.queue) == 0 && !l.closed {
		l.cond.Wait()
	}
	if l.closed {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Limiter) dispatch() {
	for {
		fn, ok := l.next()
		if !ok {
			return
		}
		if l.sem != nil {
			if err := l.sem.Acquire(l.ctx, 1); err != nil {
				return
			}
		}
		if !l.admit() {
			l.release()
			return
		}
		go func() {
			defer l.release()
			defer l.active.Add(-1)
			fn()
		}()
	}
}

// admit re-checks the closed flag under lock so that a Close issued by a
// finishing function before it released its slot wins over the dispatcher.
func (l *Limiter) admit() bool {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.closed {
		return false
	}
	l.active.Add(1)
	l.admitted.Add(1)
	return true
}

func (l *Limiter) release() {
	if l.sem != nil {
		l.sem.Release(1)
	}
}
