package promise

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"golang.org/x/sync/errgroup"
)

type anyAwaiter interface {
	awaitAny(ctx context.Context) (any, error)
}

// Result is the settle-to-result form of a future's outcome.
type Result[T any] struct {
	// State is true when the source fulfilled.
	State bool
	// Data is the fulfilled value; zero when State is false.
	Data T
	// Reason is the rejection reason; nil when State is true.
	Reason error
}

// When adapts data into a *Future[T].
//
// A *Future[T] is returned as is. A Thenable[T] is wired into a Deferred, so
// the result settles once with the thenable's first outcome. A future of a
// different type parameter is awaited and its value asserted to T. A plain T
// (or nil) becomes an already fulfilled future. Anything else is rejected with
// an invalid-input error.
func When[T any](data any) *Future[T] {
	switch v := data.(type) {
	case nil:
		var zero T
		return Resolved(zero)
	case *Future[T]:
		return v
	case Thenable[T]:
		d := NewDeferred[T]()
		v.Then(func(val T) { d.Resolve(val) }, func(err error) { d.Reject(err) })
		return d.Future()
	case anyAwaiter:
		d := NewDeferred[T]()
		go func() {
			val, err := v.awaitAny(context.Background())
			if err != nil {
				d.Reject(err)
				return
			}
			tv, ok := val.(T)
			if !ok {
				d.Reject(goerror.NewInvalidInput(fmt.Sprintf("promise: value of type %T is not %T", val, tv), nil))
				return
			}
			d.Resolve(tv)
		}()
		return d.Future()
	case T:
		return Resolved(v)
	default:
		var zero T
		return Rejected[T](goerror.NewInvalidInput(fmt.Sprintf("promise: cannot adapt %T to %T", data, zero), nil))
	}
}

// WhenAll fulfils with every value in input order once all futures fulfil, and
// rejects with the first rejection as soon as one occurs.
func WhenAll[T any](ctx context.Context, futures ...*Future[T]) *Future[[]T] {
	return Go(ctx, func(ctx context.Context) ([]T, error) {
		g, gctx := errgroup.WithContext(ctx)
		out := make([]T, len(futures))
		for i, f := range futures {
			g.Go(func() error {
				v, err := f.Await(gctx)
				if err != nil {
					return err
				}
				out[i] = v
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Resolve never rejects: it fulfils with {true, value, nil} when p fulfils and
// with {false, zero, reason} when p rejects or ctx ends first.
func Resolve[T any](ctx context.Context, p Thenable[T]) *Future[Result[T]] {
	src := When[T](p)
	return Go(ctx, func(ctx context.Context) (Result[T], error) {
		v, err := src.Await(ctx)
		if err != nil {
			return Result[T]{State: false, Reason: err}, nil
		}
		return Result[T]{State: true, Data: v}, nil
	})
}
