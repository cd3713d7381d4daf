package promise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"github.com/shandysiswandi/webkit/internal/pkg/stacktrace"
)

// ErrNilReason replaces a nil rejection reason so a rejected future always
// carries an error.
var ErrNilReason = errors.New("promise: rejected without a reason")

// Thenable is anything that reports its outcome through continuation callbacks.
type Thenable[T any] interface {
	Then(onResolve func(T), onReject func(error))
}

// Future holds the outcome of an asynchronous operation. It settles once; later
// settle attempts are ignored. A Future is safe for concurrent readers.
type Future[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) settle(v T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.val = v
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers continuations; exactly one of them runs, on its own goroutine,
// after the future settles. Either callback may be nil.
func (f *Future[T]) Then(onResolve func(T), onReject func(error)) {
	go func() {
		<-f.done
		if f.err != nil {
			if onReject != nil {
				onReject(f.err)
			}
			return
		}
		if onResolve != nil {
			onResolve(f.val)
		}
	}()
}

func (f *Future[T]) awaitAny(ctx context.Context) (any, error) {
	return f.Await(ctx)
}

// Resolved returns a future already fulfilled with v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.settle(v, nil)
	return f
}

// Rejected returns a future already rejected with err.
func Rejected[T any](err error) *Future[T] {
	if err == nil {
		err = ErrNilReason
	}
	f := newFuture[T]()
	var zero T
	f.settle(zero, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result. A panic
// inside fn rejects the future instead of crashing the process.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic occurred in future", "panic", rvr, "stack", stacktrace.Current())
				var zero T
				f.settle(zero, goerror.NewServer(fmt.Errorf("promise: panic: %v", rvr)))
			}
		}()

		v, err := fn(ctx)
		f.settle(v, err)
	}()
	return f
}

// Deferred is a future paired with explicit resolve and reject control.
type Deferred[T any] struct {
	future *Future[T]
}

// NewDeferred returns an unsettled Deferred.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{future: newFuture[T]()}
}

// Future returns the future controlled by d.
func (d *Deferred[T]) Future() *Future[T] {
	return d.future
}

// Resolve fulfils the future with v. It reports false if it was already settled.
func (d *Deferred[T]) Resolve(v T) bool {
	return d.future.settle(v, nil)
}

// Reject rejects the future with err. It reports false if it was already settled.
func (d *Deferred[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilReason
	}
	var zero T
	return d.future.settle(zero, err)
}
