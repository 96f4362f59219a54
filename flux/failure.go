package flux

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/fluxkit/errors"
)

// stopSignal ends a run early without failure. Each use allocates its own
// value so nested early stops do not capture each other.
type stopSignal struct{ _ byte }

func (*stopSignal) Error() string { return "flux: stopped" }

func newStop() *stopSignal { return &stopSignal{} }

func isStop(err error) bool {
	var s *stopSignal
	return stderrors.As(err, &s)
}

// stoppedBy reports whether err is exactly the given stop value.
func stoppedBy(err error, stop *stopSignal) bool {
	var s *stopSignal
	return stderrors.As(err, &s) && s == stop
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

func operatorPanic(op string, r any) error {
	return errors.OperatorFailure(op, panicError(r))
}

// passThrough reports errors that must travel unchanged: cancellation, early
// stops and already classified application errors.
func passThrough(err error) bool {
	return stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded) ||
		isStop(err) ||
		errors.IsAppError(err)
}

// upstream classifies an error signaled by a source producer.
func upstream(source string, err error) error {
	if err == nil || passThrough(err) {
		return err
	}
	return errors.UpstreamFailure(source, err)
}

// call invokes a user function for operator op, converting a returned error
// or a panic into an operator failure.
func call[R any](op string, fn func() (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = operatorPanic(op, p)
		}
	}()
	r, err = fn()
	if err != nil && !passThrough(err) {
		err = errors.OperatorFailure(op, err)
	}
	return r, err
}

// do is call for functions without a result.
func do(op string, fn func()) error {
	_, err := call(op, func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
	return err
}
