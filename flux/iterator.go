package flux

import (
	"context"
	"sync"
)

// Iterator is a pull-based sequence. Next returns false once the sequence
// is exhausted; Close releases its resources.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// FromIterator emits the values of the iterator returned by open. The
// iterator is closed when the run ends. Iterator errors are classified as
// upstream failures of source.
func FromIterator[T any](source string, open func(ctx context.Context) (Iterator[T], error)) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) (err error) {
		it, err := open(ctx)
		if err != nil {
			return upstream(source, err)
		}
		defer func() {
			if cerr := it.Close(); cerr != nil && err == nil {
				err = upstream(source, cerr)
			}
		}()

		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return upstream(source, err)
			}
			if !ok {
				return nil
			}
			if err := emit(v); err != nil {
				return err
			}
		}
	})
}

type result[T any] struct {
	val T
	err error
}

// Iter runs the stream on its own goroutine and exposes it as an Iterator.
// Close must be called to release the goroutine when not draining.
func (s Stream[T]) Iter(ctx context.Context) Iterator[T] {
	ctx, cancel := context.WithCancel(ctx)
	it := &chanIterator[T]{
		ch:     make(chan result[T]),
		closed: make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(it.ch)
		err := s.Run(ctx, func(v T) error {
			select {
			case it.ch <- result[T]{val: v}:
				return nil
			case <-it.closed:
				return context.Canceled
			}
		})
		if err != nil {
			select {
			case it.ch <- result[T]{err: err}:
			case <-it.closed:
			}
		}
	}()
	return it
}

type chanIterator[T any] struct {
	ch        chan result[T]
	closed    chan struct{}
	closeOnce sync.Once
	cancel    context.CancelFunc
}

func (it *chanIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case r, ok := <-it.ch:
		if !ok {
			return zero, false, nil
		}
		if r.err != nil {
			return zero, false, r.err
		}
		return r.val, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *chanIterator[T]) Close() error {
	it.closeOnce.Do(func() {
		close(it.closed)
		it.cancel()
		for range it.ch {
		}
	})
	return nil
}
