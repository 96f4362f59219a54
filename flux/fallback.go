package flux

import (
	"context"
)

// DefaultIfEmpty emits v when s completes without emitting. Errors pass
// through untouched.
func (s Stream[T]) DefaultIfEmpty(v T) Stream[T] {
	return s.SwitchIfEmpty(Just(v))
}

// SwitchIfEmpty runs alt in place of s when s completes without emitting.
// alt is never started otherwise, nor when s fails.
func (s Stream[T]) SwitchIfEmpty(alt Stream[T]) Stream[T] {
	return Create(func(ctx context.Context, emit Emitter[T]) error {
		seen := false
		err := s.Run(ctx, func(v T) error {
			seen = true
			return emit(v)
		})
		if err != nil || seen {
			return err
		}
		return alt.Run(ctx, emit)
	})
}
