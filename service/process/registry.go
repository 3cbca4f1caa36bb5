package process

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/viant/wsrun/internal/ctxlog"
)

type child struct {
	name      string
	process   *os.Process
	signalled bool
}

// Registry tracks live child processes of a run.
type Registry struct {
	mux      sync.Mutex
	seq      int
	children map[int]*child
	shutdown os.Signal
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{children: map[int]*child{}}
}

// Add registers a started process; the returned func removes it and is safe
// to call more than once. After Shutdown the process is signalled right away.
func (r *Registry) Add(name string, p *os.Process) func() {
	r.mux.Lock()
	r.seq++
	id := r.seq
	entry := &child{name: name, process: p}
	r.children[id] = entry
	sig := r.shutdown
	if sig != nil {
		entry.signalled = true
	}
	r.mux.Unlock()
	if sig != nil {
		_ = signalProcess(p, sig)
	}
	return func() {
		r.mux.Lock()
		delete(r.children, id)
		r.mux.Unlock()
	}
}

// Len returns number of live children.
func (r *Registry) Len() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.children)
}

// Signal forwards sig to every live child that was not signalled before and
// returns how many children were signalled.
func (r *Registry) Signal(sig os.Signal) int {
	r.mux.Lock()
	var targets []*child
	for _, c := range r.children {
		if c.signalled {
			continue
		}
		c.signalled = true
		targets = append(targets, c)
	}
	r.mux.Unlock()
	for _, c := range targets {
		_ = signalProcess(c.process, sig)
	}
	return len(targets)
}

// Shutdown signals every live child with sig and every child added later.
// It returns how many live children were signalled.
func (r *Registry) Shutdown(sig os.Signal) int {
	r.mux.Lock()
	if r.shutdown == nil {
		r.shutdown = sig
	}
	r.mux.Unlock()
	return r.Signal(sig)
}

// Kill forcibly stops every live child, including already signalled ones.
func (r *Registry) Kill() int {
	r.mux.Lock()
	r.shutdown = os.Kill
	var targets []*child
	for _, c := range r.children {
		c.signalled = true
		targets = append(targets, c)
	}
	r.mux.Unlock()
	for _, c := range targets {
		_ = signalProcess(c.process, os.Kill)
	}
	return len(targets)
}

// Watch forwards SIGINT, SIGTERM and SIGHUP received by the host to every
// live child and cancels the returned context. A second signal kills the
// remaining children and restores the default signal handling, so a third
// one terminates the host. stop releases the signal handler.
func (r *Registry) Watch(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	logger := ctxlog.FromContext(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		received := false
		for {
			select {
			case sig := <-signals:
				if !received {
					received = true
					count := r.Shutdown(sig)
					logger.Warn("termination signal received", "signal", sig.String(), "children", count)
					cancel()
					continue
				}
				count := r.Kill()
				logger.Warn("termination signal repeated, killing children", "signal", sig.String(), "children", count)
				signal.Stop(signals)
				return
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(signals)
			close(done)
			cancel()
		})
	}
}
