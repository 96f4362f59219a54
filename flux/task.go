package flux

import (
	"context"
)

// Task is a cold producer of at most one value. The zero value completes
// empty.
type Task[T any] struct {
	s Stream[T]
}

// taskOf wraps a stream whose construction guarantees at most one value.
func taskOf[T any](s Stream[T]) Task[T] {
	return Task[T]{s: s}
}

// Value returns a task that emits v.
func Value[T any](v T) Task[T] {
	return taskOf(Just(v))
}

// EmptyTask returns a task that completes without a value.
func EmptyTask[T any]() Task[T] {
	return Task[T]{}
}

// FailedTask returns a task that signals err.
func FailedTask[T any](err error) Task[T] {
	return taskOf(Fail[T](err))
}

// NewTask adapts a blocking call. Errors other than application errors are
// classified as upstream failures.
func NewTask[T any](fn func(ctx context.Context) (T, error)) Task[T] {
	return NewOptionalTask(func(ctx context.Context) (T, bool, error) {
		v, err := fn(ctx)
		return v, err == nil, err
	})
}

// NewOptionalTask adapts a blocking call that may find nothing: ok=false
// completes the task empty.
func NewOptionalTask[T any](fn func(ctx context.Context) (T, bool, error)) Task[T] {
	return taskOf(Create(func(ctx context.Context, emit Emitter[T]) error {
		v, ok, err := fn(ctx)
		if err != nil {
			return upstream("task", err)
		}
		if !ok {
			return nil
		}
		return emit(v)
	}))
}

// DeferTask calls factory on every run.
func DeferTask[T any](factory func() Task[T]) Task[T] {
	return taskOf(Defer(func() Stream[T] { return factory().s }))
}

// First emits the first value of s, then stops s.
func First[T any](s Stream[T]) Task[T] {
	return taskOf(s.Take(1))
}

// CollectList emits every value of s as one slice, empty when s is.
func CollectList[T any](s Stream[T]) Task[[]T] {
	return taskOf(Create(func(ctx context.Context, emit Emitter[[]T]) error {
		values := []T{}
		err := s.Run(ctx, func(v T) error {
			values = append(values, v)
			return nil
		})
		if err != nil {
			return err
		}
		return emit(values)
	}))
}

// Stream exposes the task as a stream of zero or one value.
func (t Task[T]) Stream() Stream[T] { return t.s }

// Run drives the task in the calling goroutine.
func (t Task[T]) Run(ctx context.Context, emit Emitter[T]) error {
	return t.s.Run(ctx, emit)
}

// Subscribe starts the task on its own goroutine.
func (t Task[T]) Subscribe(ctx context.Context, sub Subscriber[T]) *Subscription {
	return t.s.Subscribe(ctx, sub)
}

// Block runs the task and returns its value; ok is false when it completed
// empty.
func (t Task[T]) Block(ctx context.Context) (value T, ok bool, err error) {
	err = t.s.Run(ctx, func(v T) error {
		value, ok = v, true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return value, ok, nil
}

// Filter empties the task when keep returns false.
func (t Task[T]) Filter(keep func(T) bool) Task[T] {
	return taskOf(t.s.Filter(keep))
}

// DefaultIfEmpty emits v when the task completes empty.
func (t Task[T]) DefaultIfEmpty(v T) Task[T] {
	return taskOf(t.s.DefaultIfEmpty(v))
}

// SwitchIfEmpty runs alt when the task completes empty.
func (t Task[T]) SwitchIfEmpty(alt Task[T]) Task[T] {
	return taskOf(t.s.SwitchIfEmpty(alt.s))
}

// Transform applies a stream operator and keeps only its first value.
func (t Task[T]) Transform(op Operator[T, T]) Task[T] {
	return First(op(t.s))
}

// DoOnNext calls fn with the value before passing it on.
func (t Task[T]) DoOnNext(fn func(T)) Task[T] {
	return taskOf(t.s.DoOnNext(fn))
}

// DoFinally calls fn with the terminal kind of every run.
func (t Task[T]) DoFinally(fn func(kind SignalKind, err error)) Task[T] {
	return taskOf(t.s.DoFinally(fn))
}

// ConcatWith emits the value of t, then the value of other.
func (t Task[T]) ConcatWith(other Task[T]) Stream[T] {
	return Concat(t.s, other.s)
}

// MergeWith runs t and other concurrently and emits values as they arrive.
func (t Task[T]) MergeWith(other Task[T]) Stream[T] {
	return Merge(t.s, other.s)
}

// ZipWith combines the values of t and other; empty when either is.
func (t Task[T]) ZipWith(other Task[T], combine func(T, T) T) Task[T] {
	return ZipTasks(t, other, combine)
}

// ZipTasks combines the values of a and b; empty when either is.
func ZipTasks[A, B, R any](a Task[A], b Task[B], combine func(A, B) R) Task[R] {
	return taskOf(Zip(a.s, b.s, combine))
}

// MapTask transforms the value of t.
func MapTask[T, R any](t Task[T], f func(T) R) Task[R] {
	return taskOf(Map(t.s, f))
}

// TryMapTask transforms the value of t; an error from f fails the task.
func TryMapTask[T, R any](t Task[T], f func(T) (R, error)) Task[R] {
	return taskOf(TryMap(t.s, f))
}

// FlatMapTask continues t with the task returned by f.
func FlatMapTask[T, R any](t Task[T], f func(T) Task[R]) Task[R] {
	return taskOf(ConcatMap(t.s, func(v T) Stream[R] { return f(v).s }))
}

// FlatMapMany continues t with the stream returned by f.
func FlatMapMany[T, R any](t Task[T], f func(T) Stream[R]) Stream[R] {
	return ConcatMap(t.s, f)
}
