package flux

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FlatMap maps every value of s to an inner stream and runs the inner
// streams concurrently as the values arrive. Output follows arrival order
// across inners. The first failure cancels every other inner and s.
func FlatMap[T, R any](s Stream[T], f func(T) Stream[R]) Stream[R] {
	return FlatMapN(s, 0, f)
}

// FlatMapN is FlatMap with at most n inner streams running at once. While
// the limit is reached s is not read further. n <= 0 means unbounded.
func FlatMapN[T, R any](s Stream[T], n int, f func(T) Stream[R]) Stream[R] {
	return Create(func(ctx context.Context, emit Emitter[R]) error {
		g, gctx := errgroup.WithContext(ctx)
		out := serialize(gctx, emit)

		var slots chan struct{}
		if n > 0 {
			slots = make(chan struct{}, n)
		}

		g.Go(func() error {
			return s.Run(gctx, func(v T) error {
				inner, err := call("flatMap", func() (Stream[R], error) { return f(v), nil })
				if err != nil {
					return err
				}
				if slots != nil {
					select {
					case slots <- struct{}{}:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
				g.Go(func() error {
					if slots != nil {
						defer func() { <-slots }()
					}
					return inner.Run(gctx, out)
				})
				return nil
			})
		})
		return g.Wait()
	})
}

// ConcatMap maps every value of s to an inner stream and runs them one at a
// time in the order of s. Output is the concatenation of the inner outputs.
func ConcatMap[T, R any](s Stream[T], f func(T) Stream[R]) Stream[R] {
	return Create(func(ctx context.Context, emit Emitter[R]) error {
		return s.Run(ctx, func(v T) error {
			inner, err := call("concatMap", func() (Stream[R], error) { return f(v), nil })
			if err != nil {
				return err
			}
			return inner.Run(ctx, emit)
		})
	})
}

// serialize wraps emit for use by concurrent branches: one caller at a time,
// and nothing once the group context is done.
func serialize[T any](ctx context.Context, emit Emitter[T]) Emitter[T] {
	var mu sync.Mutex
	return func(v T) error {
		mu.Lock()
		defer mu.Unlock()
		if err := ctx.Err(); err != nil {
			return err
		}
		return emit(v)
	}
}
