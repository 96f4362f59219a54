package flux

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Concat runs the sources one after another. A failure ends the chain and
// later sources are never started.
func Concat[T any](sources ...Stream[T]) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		for _, src := range sources {
			if err := src.Run(ctx, emit); err != nil {
				return err
			}
		}
		return nil
	})
}

// ConcatWith runs other after s completes.
func (s Stream[T]) ConcatWith(other Stream[T]) Stream[T] {
	return Concat(s, other)
}

// Merge runs all sources concurrently and emits values as they arrive. The
// order of each source is kept. It completes when every source completed;
// the first failure cancels the others.
func Merge[T any](sources ...Stream[T]) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		g, gctx := errgroup.WithContext(ctx)
		out := serialize(gctx, emit)
		for _, src := range sources {
			g.Go(func() error { return src.Run(gctx, out) })
		}
		return g.Wait()
	})
}

// MergeWith runs s and other concurrently.
func (s Stream[T]) MergeWith(other Stream[T]) Stream[T] {
	return Merge(s, other)
}

// MergeSequential starts all sources at once but emits their values in
// source order: everything from the first source, then the buffered and
// remaining values of the second, and so on.
func MergeSequential[T any](sources ...Stream[T]) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		g, gctx := errgroup.WithContext(ctx)

		lanes := make([]*lane[T], len(sources))
		for i, src := range sources {
			l := newLane[T]()
			lanes[i] = l
			g.Go(func() error {
				if err := src.Run(gctx, l.push); err != nil {
					return err
				}
				l.close()
				return nil
			})
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = operatorPanic("mergeSequential", r)
				}
			}()
			for _, l := range lanes {
				if err := l.drain(gctx, emit); err != nil {
					return err
				}
			}
			return nil
		})
		return g.Wait()
	})
}

// lane buffers the values of one source until they may be emitted.
type lane[T any] struct {
	mu     sync.Mutex
	items  []T
	done   bool
	notify chan struct{}
}

func newLane[T any]() *lane[T] {
	return &lane[T]{notify: make(chan struct{}, 1)}
}

func (l *lane[T]) push(v T) error {
	l.mu.Lock()
	l.items = append(l.items, v)
	l.mu.Unlock()
	l.wake()
	return nil
}

func (l *lane[T]) close() {
	l.mu.Lock()
	l.done = true
	l.mu.Unlock()
	l.wake()
}

func (l *lane[T]) wake() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// drain emits buffered values until the source is done and the buffer empty.
func (l *lane[T]) drain(ctx context.Context, emit Emitter[T]) error {
	for {
		l.mu.Lock()
		items, done := l.items, l.done
		l.items = nil
		l.mu.Unlock()

		for _, v := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(v); err != nil {
				return err
			}
		}
		if done {
			return nil
		}

		select {
		case <-l.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
