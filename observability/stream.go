package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
)

// TraceStream opens a span named name around every run of s and records
// its values, terminal signal and duration in metrics, which may be nil.
// A run stopped by its consumer ends as cancelled, not failed.
func TraceStream[T any](s flux.Stream[T], name string, metrics *Metrics) flux.Stream[T] {
	return flux.Create(func(ctx context.Context, emit flux.Emitter[T]) error {
		var downstream error
		return observe(ctx, name, metrics, func(ctx context.Context, onValue func()) (bool, error) {
			err := s.Run(ctx, func(v T) error {
				onValue()
				if err := emit(v); err != nil {
					downstream = err
					return err
				}
				return nil
			})
			return err != nil && err == downstream, err
		})
	})
}

// TraceTask is TraceStream for a task.
func TraceTask[T any](t flux.Task[T], name string, metrics *Metrics) flux.Task[T] {
	return flux.NewOptionalTask(func(ctx context.Context) (v T, ok bool, err error) {
		err = observe(ctx, name, metrics, func(ctx context.Context, onValue func()) (bool, error) {
			var berr error
			v, ok, berr = t.Block(ctx)
			if ok {
				onValue()
			}
			return false, berr
		})
		return v, ok, err
	})
}

// observe runs one traced subscription. run reports whether its error came
// from the consumer, and the error.
func observe(ctx context.Context, name string, metrics *Metrics, run func(ctx context.Context, onValue func()) (bool, error)) error {
	ctx, span := StartSpan(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String(AttrStream, name)),
	)
	defer span.End()

	start := time.Now()
	metrics.RecordStart(ctx, name)

	values := 0
	stoppedDownstream, err := run(ctx, func() { values++ })

	signal := signalOf(ctx, err, stoppedDownstream)
	span.SetAttributes(
		attribute.String(AttrSignal, signal.String()),
		attribute.Int(AttrValues, values),
	)

	// Metrics outlive a cancelled subscription.
	mctx := context.WithoutCancel(ctx)
	metrics.RecordValues(mctx, name, values)
	if signal == flux.SignalError {
		code := string(apperrors.ErrCodeInternal)
		if appErr, ok := apperrors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		span.SetAttributes(attribute.String(AttrErrorCode, code))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordError(mctx, name, code)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	metrics.RecordEnd(mctx, name, signal.String(), time.Since(start))
	return err
}

func signalOf(ctx context.Context, err error, stoppedDownstream bool) flux.SignalKind {
	switch {
	case err == nil:
		return flux.SignalComplete
	case stoppedDownstream:
		return flux.SignalCancelled
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return flux.SignalCancelled
	default:
		return flux.SignalError
	}
}
