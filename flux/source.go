package flux

import (
	"context"
	"time"
)

// Unit is the value type of streams that only signal completion.
type Unit = struct{}

// Just emits the given values in order.
func Just[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromSlice emits the elements of values in order.
func FromSlice[T any](values []T) Stream[T] {
	return Create(func(_ context.Context, emit Emitter[T]) error {
		for _, v := range values {
			if err := emit(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Empty completes without emitting.
func Empty[T any]() Stream[T] {
	return Stream[T]{}
}

// Fail signals err without emitting. Errors that are not application
// errors are classified as upstream failures.
func Fail[T any](err error) Stream[T] {
	return Create(func(context.Context, Emitter[T]) error {
		return upstream("fail", err)
	})
}

// Defer calls factory on every run, so each subscriber gets a fresh stream.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		s, err := call("defer", func() (Stream[T], error) { return factory(), nil })
		if err != nil {
			return err
		}
		return s.Run(ctx, emit)
	})
}

// FromChan emits values received from ch until it is closed.
func FromChan[T any](ch <-chan T) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return nil
				}
				if err := emit(v); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// Interval emits 0, 1, 2, ... with period d between values. It never
// completes on its own.
func Interval(d time.Duration) Stream[int64] {
	return Create(func(ctx context.Context, emit Emitter[int64]) error {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for n := int64(0); ; n++ {
			select {
			case <-ticker.C:
				if err := emit(n); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// DelayElements holds every value for d before passing it on.
func (s Stream[T]) DelayElements(d time.Duration) Stream[T] {
	return DelayElementsFunc(s, func() time.Duration { return d })
}

// DelayElementsFunc holds every value for the duration returned by delay,
// which is called once per value.
func DelayElementsFunc[T any](s Stream[T], delay func() time.Duration) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		return s.Run(ctx, func(v T) error {
			d, err := call("delayElements", func() (time.Duration, error) { return delay(), nil })
			if err != nil {
				return err
			}
			if err := sleep(ctx, d); err != nil {
				return err
			}
			return emit(v)
		})
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
