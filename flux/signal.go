package flux

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/fluxkit/errors"
)

// SignalKind identifies what a producer delivered.
type SignalKind int

const (
	SignalNext SignalKind = iota
	SignalComplete
	SignalError
	SignalCancelled
)

func (k SignalKind) String() string {
	switch k {
	case SignalNext:
		return "next"
	case SignalComplete:
		return "complete"
	case SignalError:
		return "error"
	case SignalCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no signal can follow k.
func (k SignalKind) Terminal() bool { return k != SignalNext }

// Signal is one notification from a producer.
type Signal[T any] struct {
	Kind  SignalKind
	Value T
	Err   error
}

// terminalKind classifies the result of a run.
func terminalKind(ctx context.Context, err error) SignalKind {
	switch {
	case err == nil:
		return SignalComplete
	case isStop(err):
		return SignalCancelled
	case stderrors.Is(err, context.Canceled) && ctx.Err() != nil:
		return SignalCancelled
	default:
		return SignalError
	}
}

// Subscriber receives the signals of one subscription. Any callback may be
// nil. OnNext is called serially; exactly one of OnError, OnComplete and
// OnCancel is called last.
type Subscriber[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
	OnCancel   func()
}

// Subscription is the live run of a stream for one subscriber.
type Subscription struct {
	id        string
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}

	// delivery is held while OnNext runs and while Cancel raises cancelled.
	delivery sync.Mutex

	mu   sync.Mutex
	kind SignalKind
	err  error
}

// Subscribe starts the stream on its own goroutine and returns immediately.
func (s Stream[T]) Subscribe(ctx context.Context, sub Subscriber[T]) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	subscription := &Subscription{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
		kind:   SignalNext,
	}

	go func() {
		defer cancel()
		err := s.Run(ctx, deliver(subscription, sub.OnNext))
		subscription.finish(ctx, err, sub.OnError, sub.OnComplete, sub.OnCancel)
	}()

	return subscription
}

// deliver serializes onNext with Cancel, so no value is handed over once
// Cancel has returned.
func deliver[T any](s *Subscription, onNext func(T)) Emitter[T] {
	return func(v T) error {
		s.delivery.Lock()
		defer s.delivery.Unlock()
		if s.cancelled.Load() {
			return context.Canceled
		}
		if onNext != nil {
			onNext(v)
		}
		return nil
	}
}

func (s *Subscription) finish(ctx context.Context, err error, onError func(error), onComplete, onCancel func()) {
	kind := terminalKind(ctx, err)
	if s.cancelled.Load() {
		kind = SignalCancelled
	}
	switch kind {
	case SignalError:
		if stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.Timeout("subscription").WithCause(err)
		}
	case SignalCancelled:
		err = context.Canceled
	default:
		err = nil
	}

	s.mu.Lock()
	s.kind, s.err = kind, err
	s.mu.Unlock()

	switch kind {
	case SignalError:
		if onError != nil {
			onError(err)
		}
	case SignalCancelled:
		if onCancel != nil {
			onCancel()
		}
	default:
		if onComplete != nil {
			onComplete()
		}
	}
	close(s.done)
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string { return s.id }

// Cancel stops the subscription. It waits for an OnNext call in progress to
// return; nothing is delivered after Cancel returns, and the terminal signal
// becomes SignalCancelled unless the subscription already terminated.
// Cancel must not be called from OnNext; stop from inside the pipeline with
// Take or by cancelling the parent context.
func (s *Subscription) Cancel() {
	select {
	case <-s.done:
		return
	default:
	}
	s.cancel()
	s.delivery.Lock()
	s.cancelled.Store(true)
	s.delivery.Unlock()
}

// Done is closed after the terminal callback returned.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Wait blocks until the subscription terminates and returns its error: nil
// on completion, context.Canceled on cancellation.
func (s *Subscription) Wait() error {
	<-s.done
	return s.Err()
}

// Signal returns the terminal kind, or SignalNext while still running.
func (s *Subscription) Signal() SignalKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Err returns the terminal error once the subscription has terminated.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
