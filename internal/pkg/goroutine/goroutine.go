// Package goroutine runs tasks on goroutines with a concurrency limit and
// collects their errors.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/shandysiswandi/webkit/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by runtime.NumCPU when NewManager receives
// a non-positive limit.
const DefaultMaxGoroutine int = 16

// ErrClosed is recorded for tasks submitted after Wait was called.
var ErrClosed = errors.New("goroutine: manager is closed")

// Manager runs functions in goroutines, never more than its limit at once.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	closed bool
	wg     sync.WaitGroup
	sema   chan struct{}
}

// NewManager creates a Manager allowing maxGoroutine concurrent tasks.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Limit returns the maximum number of concurrent tasks.
func (g *Manager) Limit() int {
	return cap(g.sema)
}

// Go waits for a free slot and runs f on a new goroutine. If ctx ends before a
// slot frees up, f never runs and ctx.Err() is recorded. Panics in f are
// recovered, logged and recorded as errors.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	g.mu.Lock()
	if g.closed {
		g.errs = append(g.errs, ErrClosed)
		g.mu.Unlock()
		slog.WarnContext(ctx, "goroutine manager is closed, skipping task")
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()

	select {
	case g.sema <- struct{}{}:
	case <-ctx.Done():
		g.record(ctx.Err())
		g.wg.Done()
		return
	}

	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", stacktrace.Current())
				g.record(fmt.Errorf("goroutine: panic: %v", rvr))
			}
		}()

		g.record(f(ctx))
	}()
}

func (g *Manager) record(err error) {
	if err == nil {
		return
	}
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait closes the manager, blocks until every started task has finished and
// returns the collected errors joined together.
func (g *Manager) Wait() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
