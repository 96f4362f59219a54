package flux

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Zip pairs the k-th values of a and b through combine. It completes as
// soon as either source is exhausted, so its length is the shorter one.
func Zip[A, B, R any](a Stream[A], b Stream[B], combine func(A, B) R) Stream[R] {
	return zip([]Stream[any]{erase(a), erase(b)}, func(row []any) R {
		return combine(as[A](row[0]), as[B](row[1]))
	})
}

// ZipAll combines the k-th values of every source through combine.
func ZipAll[T, R any](combine func([]T) R, sources ...Stream[T]) Stream[R] {
	erased := make([]Stream[any], len(sources))
	for i, src := range sources {
		erased[i] = erase(src)
	}
	return zip(erased, func(row []any) R {
		values := make([]T, len(row))
		for i, v := range row {
			values[i] = as[T](v)
		}
		return combine(values)
	})
}

// ZipWith pairs s with other through combine.
func (s Stream[T]) ZipWith(other Stream[T], combine func(T, T) T) Stream[T] {
	return Zip(s, other, combine)
}

func erase[T any](s Stream[T]) Stream[any] {
	return Create(func(ctx context.Context, emit Emitter[any]) error {
		return s.Run(ctx, func(v T) error { return emit(v) })
	})
}

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// zip buffers each source in its own queue and emits a combined row
// whenever every queue has a head. A source that finished with an empty
// queue ends the zip; a failure anywhere discards all queues.
func zip[R any](sources []Stream[any], combine func([]any) R) Stream[R] {
	return Create(func(ctx context.Context, emit Emitter[R]) error {
		if len(sources) == 0 {
			return nil
		}
		g, gctx := errgroup.WithContext(ctx)
		stop := newStop()

		var mu sync.Mutex
		queues := make([][]any, len(sources))
		done := make([]bool, len(sources))

		exhausted := func() bool {
			for i := range queues {
				if done[i] && len(queues[i]) == 0 {
					return true
				}
			}
			return false
		}
		ready := func() bool {
			for _, q := range queues {
				if len(q) == 0 {
					return false
				}
			}
			return true
		}

		for i, src := range sources {
			g.Go(func() error {
				err := src.Run(gctx, func(v any) error {
					mu.Lock()
					defer mu.Unlock()
					if err := gctx.Err(); err != nil {
						return err
					}
					queues[i] = append(queues[i], v)
					for ready() {
						row := make([]any, len(queues))
						for j := range queues {
							row[j] = queues[j][0]
							queues[j] = queues[j][1:]
						}
						out, err := call("zip", func() (R, error) { return combine(row), nil })
						if err != nil {
							return err
						}
						if err := emit(out); err != nil {
							return err
						}
					}
					if exhausted() {
						return stop
					}
					return nil
				})
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				done[i] = true
				if exhausted() {
					return stop
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil && !stoppedBy(err, stop) {
			return err
		}
		return nil
	})
}
