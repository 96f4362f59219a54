package flux

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/fluxkit/errors"
)

type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completes int
	cancels   int
}

func (p *recorder[T]) subscriber() Subscriber[T] {
	return Subscriber[T]{
		OnNext:     func(v T) { p.mu.Lock(); p.values = append(p.values, v); p.mu.Unlock() },
		OnError:    func(err error) { p.mu.Lock(); p.errs = append(p.errs, err); p.mu.Unlock() },
		OnComplete: func() { p.mu.Lock(); p.completes++; p.mu.Unlock() },
		OnCancel:   func() { p.mu.Lock(); p.cancels++; p.mu.Unlock() },
	}
}

func (p *recorder[T]) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.values)
}

func waitDone(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case <-sub.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("subscription did not terminate")
	}
}

func TestSubscribe_Complete(t *testing.T) {
	var p recorder[string]
	sub := chars("ABC").Subscribe(context.Background(), p.subscriber())
	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	assertEqual(t, p.values, []string{"A", "B", "C"})
	if p.completes != 1 || len(p.errs) != 0 || p.cancels != 0 {
		t.Errorf("terminal callbacks: complete=%d errors=%d cancels=%d", p.completes, len(p.errs), p.cancels)
	}
	if sub.Signal() != SignalComplete {
		t.Errorf("Signal() = %v", sub.Signal())
	}
	if sub.ID() == "" || sub.ID() == chars("A").Subscribe(context.Background(), Subscriber[string]{}).ID() {
		t.Error("subscription IDs must be set and unique")
	}
}

func TestSubscribe_ReturnsImmediately(t *testing.T) {
	sub := Just(1).DelayElements(50*time.Millisecond).Subscribe(context.Background(), Subscriber[int]{})
	if sub.Signal() != SignalNext {
		t.Errorf("Signal() = %v before the source finished", sub.Signal())
	}
	waitDone(t, sub)
}

func TestSubscribe_Error(t *testing.T) {
	var p recorder[string]
	boom := stderrors.New("boom")
	sub := chars("AB").ConcatWith(Fail[string](boom)).Subscribe(context.Background(), p.subscriber())
	err := sub.Wait()
	if !stderrors.Is(err, boom) {
		t.Fatalf("Wait() = %v", err)
	}
	if len(p.errs) != 1 || p.completes != 0 {
		t.Errorf("expected exactly one error signal, got errors=%d completes=%d", len(p.errs), p.completes)
	}
	if sub.Signal() != SignalError {
		t.Errorf("Signal() = %v", sub.Signal())
	}
	assertEqual(t, p.values, []string{"A", "B"})
}

func TestSubscription_Cancel(t *testing.T) {
	var p recorder[int64]
	var upstreamCancelled atomic.Bool
	s := Interval(time.Millisecond).DoFinally(func(k SignalKind, _ error) {
		upstreamCancelled.Store(k == SignalCancelled)
	})

	sub := s.Subscribe(context.Background(), p.subscriber())
	for p.count() < 2 {
		time.Sleep(time.Millisecond)
	}
	sub.Cancel()
	delivered := p.count()
	waitDone(t, sub)

	if !stderrors.Is(sub.Err(), context.Canceled) {
		t.Errorf("Err() = %v", sub.Err())
	}
	if sub.Signal() != SignalCancelled || p.cancels != 1 || p.completes != 0 || len(p.errs) != 0 {
		t.Errorf("terminal: signal=%v cancels=%d completes=%d errors=%d", sub.Signal(), p.cancels, p.completes, len(p.errs))
	}
	if !upstreamCancelled.Load() {
		t.Error("cancellation did not reach the source")
	}

	time.Sleep(5 * time.Millisecond)
	if got := p.count(); got > delivered {
		t.Errorf("%d values delivered after Cancel", got-delivered)
	}
	sub.Cancel()
}

func TestSubscription_CancelWaitsForOnNext(t *testing.T) {
	entered := make(chan struct{}, 1)
	var inNext atomic.Bool
	var calls atomic.Int32
	sub := Interval(time.Millisecond).Subscribe(context.Background(), Subscriber[int64]{
		OnNext: func(int64) {
			inNext.Store(true)
			calls.Add(1)
			select {
			case entered <- struct{}{}:
			default:
			}
			time.Sleep(20 * time.Millisecond)
			inNext.Store(false)
		},
	})
	<-entered
	sub.Cancel()
	if inNext.Load() {
		t.Fatal("Cancel returned while OnNext was running")
	}
	delivered := calls.Load()
	waitDone(t, sub)
	if got := calls.Load(); got != delivered {
		t.Errorf("%d values delivered after Cancel", got-delivered)
	}
}

func TestSubscription_CancelAfterCompleteIsNoop(t *testing.T) {
	var p recorder[int]
	sub := Just(1).Subscribe(context.Background(), p.subscriber())
	waitDone(t, sub)
	sub.Cancel()
	if sub.Signal() != SignalComplete || p.cancels != 0 {
		t.Errorf("Cancel after completion changed the terminal state: %v", sub.Signal())
	}
}

func TestSubscribe_ParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := Interval(time.Millisecond).Subscribe(ctx, Subscriber[int64]{})
	cancel()
	waitDone(t, sub)
	if sub.Signal() != SignalCancelled {
		t.Errorf("Signal() = %v, want cancelled", sub.Signal())
	}
}

func TestSubscribe_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	sub := Interval(time.Hour).Subscribe(ctx, Subscriber[int64]{})
	waitDone(t, sub)
	appErr, ok := errors.AsAppError(sub.Err())
	if sub.Signal() != SignalError || !ok || appErr.Code != errors.ErrCodeTimeout {
		t.Errorf("expected timeout error, got %v %v", sub.Signal(), sub.Err())
	}
}

func TestTask_Subscribe(t *testing.T) {
	var p recorder[string]
	sub := Value("Jayesh").Subscribe(context.Background(), p.subscriber())
	if err := sub.Wait(); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, p.values, []string{"Jayesh"})
}
