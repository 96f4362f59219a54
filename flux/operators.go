package flux

import (
	"context"
)

// Operator is a reusable stream transformation.
type Operator[T, R any] func(Stream[T]) Stream[R]

// Compose chains two operators into one.
func Compose[A, B, C any](first Operator[A, B], second Operator[B, C]) Operator[A, C] {
	return func(s Stream[A]) Stream[C] { return second(first(s)) }
}

// Transform applies op to s.
func Transform[T, R any](s Stream[T], op Operator[T, R]) Stream[R] {
	return op(s)
}

// Transform applies a type-preserving operator to s.
func (s Stream[T]) Transform(op Operator[T, T]) Stream[T] {
	return op(s)
}

// Map transforms every value with f.
func Map[T, R any](s Stream[T], f func(T) R) Stream[R] {
	return TryMap(s, func(v T) (R, error) { return f(v), nil })
}

// TryMap transforms every value with f. An error returned by f terminates
// the stream as an operator failure.
func TryMap[T, R any](s Stream[T], f func(T) (R, error)) Stream[R] {
	return Create(func(ctx context.Context, emit Emitter[R]) error {
		return s.Run(ctx, func(v T) error {
			r, err := call("map", func() (R, error) { return f(v) })
			if err != nil {
				return err
			}
			return emit(r)
		})
	})
}

// MapOp is Map as a reusable Operator.
func MapOp[T, R any](f func(T) R) Operator[T, R] {
	return func(s Stream[T]) Stream[R] { return Map(s, f) }
}

// FilterOp is Filter as a reusable Operator.
func FilterOp[T any](keep func(T) bool) Operator[T, T] {
	return func(s Stream[T]) Stream[T] { return s.Filter(keep) }
}

// Filter passes only the values for which keep returns true.
func (s Stream[T]) Filter(keep func(T) bool) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		return s.Run(ctx, func(v T) error {
			ok, err := call("filter", func() (bool, error) { return keep(v), nil })
			if err != nil || !ok {
				return err
			}
			return emit(v)
		})
	})
}

// Take emits at most n values, then completes and stops the source.
func (s Stream[T]) Take(n int) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		if n <= 0 {
			return nil
		}
		stop := newStop()
		count := 0
		err := s.Run(ctx, func(v T) error {
			if err := emit(v); err != nil {
				return err
			}
			count++
			if count >= n {
				return stop
			}
			return nil
		})
		if stoppedBy(err, stop) {
			return nil
		}
		return err
	})
}

// DoOnNext calls fn with every value before passing it on.
func (s Stream[T]) DoOnNext(fn func(T)) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		return s.Run(ctx, func(v T) error {
			if err := do("doOnNext", func() { fn(v) }); err != nil {
				return err
			}
			return emit(v)
		})
	})
}

// DoOnSubscribe calls fn at the start of every run.
func (s Stream[T]) DoOnSubscribe(fn func()) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		if err := do("doOnSubscribe", fn); err != nil {
			return err
		}
		return s.Run(ctx, emit)
	})
}

// DoFinally calls fn once the run terminated with its terminal kind and
// error. Early stops by a downstream Take report SignalCancelled.
func (s Stream[T]) DoFinally(fn func(kind SignalKind, err error)) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		err := s.Run(ctx, emit)
		kind := terminalKind(ctx, err)
		report := err
		if kind != SignalError {
			report = nil
		}
		if ferr := do("doFinally", func() { fn(kind, report) }); ferr != nil && err == nil {
			return ferr
		}
		return err
	})
}

// DoOnEach calls fn with every value and with the terminal signal.
func (s Stream[T]) DoOnEach(fn func(Signal[T])) Stream[T] {
	return s.DoOnNext(func(v T) {
		fn(Signal[T]{Kind: SignalNext, Value: v})
	}).DoFinally(func(kind SignalKind, err error) {
		fn(Signal[T]{Kind: kind, Err: err})
	})
}
