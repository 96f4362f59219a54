package flux

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func collect[T any](t *testing.T, s Stream[T]) []T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := s.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return got
}

func assertEqual[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// assertSameElements compares two slices as multisets.
func assertSameElements(t *testing.T, got, want []string) {
	t.Helper()
	g, w := slices.Clone(got), slices.Clone(want)
	slices.Sort(g)
	slices.Sort(w)
	if !slices.Equal(g, w) {
		t.Errorf("got elements %v, want %v", got, want)
	}
}

// assertSubsequence checks that sub appears in seq in order.
func assertSubsequence(t *testing.T, seq, sub []string) {
	t.Helper()
	i := 0
	for _, v := range seq {
		if i < len(sub) && v == sub[i] {
			i++
		}
	}
	if i != len(sub) {
		t.Errorf("%v does not keep the order of %v", seq, sub)
	}
}

func chars(s string) Stream[string] {
	return FromSlice(strings.Split(s, ""))
}

// counted records how many times a stream was started.
func counted[T any](s Stream[T], n *atomic.Int32) Stream[T] {
	return s.DoOnSubscribe(func() { n.Add(1) })
}

// blockingStarted never emits: it closes started once its body runs and
// records that it observed cancellation.
func blockingStarted[T any](cancelled *atomic.Bool, started chan<- struct{}) Stream[T] {
	return Create(func(ctx context.Context, _ Emitter[T]) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
}

// failAfter fails with err once started is closed.
func failAfter[T any](started <-chan struct{}, err error) Stream[T] {
	return Create(func(ctx context.Context, _ Emitter[T]) error {
		select {
		case <-started:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// recorder collects events from concurrent goroutines.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// gauge tracks the current and maximum number of active branches.
type gauge struct {
	active atomic.Int32
	max    atomic.Int32
}

func (g *gauge) enter() {
	n := g.active.Add(1)
	for {
		m := g.max.Load()
		if n <= m || g.max.CompareAndSwap(m, n) {
			return
		}
	}
}

func (g *gauge) leave() { g.active.Add(-1) }

func (g *gauge) track(s Stream[string]) Stream[string] {
	return s.DoOnSubscribe(g.enter).DoFinally(func(SignalKind, error) { g.leave() })
}
