package flux

import (
	"time"

	"github.com/kbukum/fluxkit/logger"
)

var terminalMessages = map[SignalKind]string{
	SignalComplete:  "onComplete",
	SignalError:     "onError",
	SignalCancelled: "onCancel",
}

// Log records the lifecycle of every run of s under name: subscription and
// terminal signals at info level, values at debug level. Terminal lines
// carry the value count and the run's duration.
func (s Stream[T]) Log(log *logger.Logger, name string) Stream[T] {
	l := log.WithComponent("flux").WithFields(logger.Fields(logger.FieldStream, name))
	return Defer(func() Stream[T] {
		count := 0
		var start time.Time
		return s.DoOnSubscribe(func() {
			start = time.Now()
			l.Info("onSubscribe")
		}).DoOnEach(func(sig Signal[T]) {
			if sig.Kind == SignalNext {
				count++
				l.Debug("onNext", logger.Fields(logger.FieldValue, sig.Value))
				return
			}
			fields := logger.Fields(logger.FieldSignal, sig.Kind.String(), logger.FieldCount, count)
			elapsed := logger.DurationFields(name, time.Since(start))
			if sig.Kind == SignalError {
				l.Error(terminalMessages[sig.Kind], fields, elapsed, logger.ErrorFields(name, sig.Err))
				return
			}
			l.Info(terminalMessages[sig.Kind], fields, elapsed)
		})
	})
}

// Log records the lifecycle of every run of t under name.
func (t Task[T]) Log(log *logger.Logger, name string) Task[T] {
	return taskOf(t.s.Log(log, name))
}
