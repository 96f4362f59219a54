package flux

import (
	"context"
)

// Emitter receives one value. A non-nil error tells the producer to stop
// and return that error.
type Emitter[T any] func(T) error

// Stream is a cold producer of zero or more values. The zero value is an
// empty stream.
type Stream[T any] struct {
	source func(ctx context.Context, emit Emitter[T]) error
}

// Create builds a stream from a source function. The source must call emit
// from one goroutine at a time, stop when emit returns an error and return
// that error unwrapped. It should also stop when ctx is done.
func Create[T any](source func(ctx context.Context, emit Emitter[T]) error) Stream[T] {
	return Stream[T]{source: source}
}

// Run drives the stream in the calling goroutine, pushing every value to
// emit. It returns nil on completion or the terminal error. A panic raised
// while producing is reported as an operator failure.
func (s Stream[T]) Run(ctx context.Context, emit Emitter[T]) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.source == nil {
		return nil
	}

	g := &guard[T]{ctx: ctx, emit: emit}
	defer func() {
		if r := recover(); r != nil {
			err = operatorPanic("stream", r)
		}
	}()

	err = s.source(ctx, g.next)
	if err == nil {
		err = g.failed
	}
	return err
}

// guard enforces the terminal state of one run: once ctx is done or
// downstream refused a value, no further value passes.
type guard[T any] struct {
	ctx    context.Context
	emit   Emitter[T]
	failed error
}

func (g *guard[T]) next(v T) error {
	if g.failed != nil {
		return g.failed
	}
	if err := g.ctx.Err(); err != nil {
		g.failed = err
		return err
	}
	if err := g.emit(v); err != nil {
		g.failed = err
		return err
	}
	return nil
}

// Collect runs the stream and returns every value it produced. On failure
// the values received before the error are returned alongside it.
func (s Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	err := s.Run(ctx, func(v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
