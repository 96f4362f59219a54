package flux

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/fluxkit/errors"
)

var names = []string{"Shubham", "Alex", "Ali", "Josh"}

func TestJust_Collect(t *testing.T) {
	assertEqual(t, collect(t, Just("a", "b", "c")), []string{"a", "b", "c"})
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name string
		s    Stream[int]
	}{
		{"Empty", Empty[int]()},
		{"zero value", Stream[int]{}},
		{"empty slice", FromSlice([]int{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, tt.s); len(got) != 0 {
				t.Errorf("expected no values, got %v", got)
			}
		})
	}
}

func TestMap_Filter(t *testing.T) {
	s := Map(FromSlice(names), strings.ToUpper).Filter(func(s string) bool { return len(s) > 3 })
	assertEqual(t, collect(t, s), []string{"SHUBHAM", "ALEX", "JOSH"})
}

func TestMap_KeepsCardinality(t *testing.T) {
	got := collect(t, Map(Just(1, 2, 3), func(n int) int { return n * 10 }))
	assertEqual(t, got, []int{10, 20, 30})
}

func TestMap_PanicIsOperatorFailure(t *testing.T) {
	s := Map(FromSlice(names), func(name string) string {
		if name == "Ali" {
			panic("short name")
		}
		return strings.ToUpper(name)
	})
	got, err := s.Collect(context.Background())
	if !errors.IsOperatorFailure(err) {
		t.Fatalf("expected operator failure, got %v", err)
	}
	assertEqual(t, got, []string{"SHUBHAM", "ALEX"})
}

func TestTryMap(t *testing.T) {
	boom := stderrors.New("boom")
	_, err := TryMap(Just(1), func(int) (int, error) { return 0, boom }).Collect(context.Background())
	if !errors.IsOperatorFailure(err) || !stderrors.Is(err, boom) {
		t.Errorf("expected operator failure wrapping boom, got %v", err)
	}

	_, err = TryMap(Just(1), func(int) (int, error) { return 0, errors.NotFound("movie info", "1") }).Collect(context.Background())
	if !errors.IsNotFound(err) {
		t.Errorf("application errors should pass unchanged, got %v", err)
	}
}

func TestFilter_PanicIsOperatorFailure(t *testing.T) {
	_, err := Just(1, 2).Filter(func(int) bool { panic("bad predicate") }).Collect(context.Background())
	if !errors.IsOperatorFailure(err) {
		t.Errorf("expected operator failure, got %v", err)
	}
}

func TestTransform_Compose(t *testing.T) {
	op := Compose(MapOp(strings.ToUpper), FilterOp(func(s string) bool { return len(s) > 3 }))
	assertEqual(t, collect(t, Transform(FromSlice(names), op)), []string{"SHUBHAM", "ALEX", "JOSH"})
	assertEqual(t, collect(t, FromSlice(names).Transform(op)), collect(t, FromSlice(names).Transform(op)))

	lengths := Compose(op, MapOp(func(s string) int { return len(s) }))
	assertEqual(t, collect(t, lengths(FromSlice(names))), []int{7, 4, 4})
}

func TestStream_IsCold(t *testing.T) {
	var starts atomic.Int32
	s := counted(FromSlice(names), &starts)
	upper := Map(s, strings.ToUpper)

	if starts.Load() != 0 {
		t.Fatal("composing must not start the source")
	}
	first := collect(t, upper)
	second := collect(t, upper)
	assertEqual(t, first, second)
	if starts.Load() != 2 {
		t.Errorf("expected 2 runs, got %d", starts.Load())
	}
	assertEqual(t, collect(t, s), names)
}

func TestTake(t *testing.T) {
	assertEqual(t, collect(t, Just(1, 2, 3, 4, 5).Take(2)), []int{1, 2})
	assertEqual(t, collect(t, Just(1, 2).Take(5)), []int{1, 2})
	assertEqual(t, collect(t, Interval(time.Millisecond).Take(3)), []int64{0, 1, 2})
	if got := collect(t, Just(1).Take(0)); len(got) != 0 {
		t.Errorf("Take(0) = %v", got)
	}
}

func TestTake_StopsSource(t *testing.T) {
	var produced atomic.Int32
	src := Create(func(ctx context.Context, emit Emitter[int]) error {
		for i := 0; i < 100; i++ {
			produced.Add(1)
			if err := emit(i); err != nil {
				return err
			}
		}
		return nil
	})
	assertEqual(t, collect(t, src.Take(3)), []int{0, 1, 2})
	if produced.Load() != 3 {
		t.Errorf("source produced %d values after Take(3)", produced.Load())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Just(1).Run(ctx, func(int) error {
		called = true
		return nil
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("no value may be emitted on a cancelled context")
	}
}

func TestRun_NoValueAfterDownstreamError(t *testing.T) {
	boom := stderrors.New("stop")
	careless := Create(func(_ context.Context, emit Emitter[int]) error {
		_ = emit(1)
		_ = emit(2)
		_ = emit(3)
		return nil
	})

	calls := 0
	err := careless.Run(context.Background(), func(int) error {
		calls++
		return boom
	})
	if !stderrors.Is(err, boom) {
		t.Errorf("expected downstream error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("downstream called %d times", calls)
	}
}

func TestRun_SourcePanic(t *testing.T) {
	s := Create(func(context.Context, Emitter[int]) error { panic("broken source") })
	if _, err := s.Collect(context.Background()); !errors.IsOperatorFailure(err) {
		t.Errorf("expected operator failure, got %v", err)
	}
}

func TestFail(t *testing.T) {
	cause := stderrors.New("disk gone")
	_, err := Fail[int](cause).Collect(context.Background())
	if !errors.IsUpstreamFailure(err) || !stderrors.Is(err, cause) {
		t.Errorf("expected upstream failure wrapping cause, got %v", err)
	}

	_, err = Fail[int](errors.NotFound("movie info", "")).Collect(context.Background())
	if !errors.IsNotFound(err) {
		t.Errorf("expected NOT_FOUND unchanged, got %v", err)
	}
}

func TestDefer(t *testing.T) {
	n := 0
	s := Defer(func() Stream[int] {
		n++
		return Just(n)
	})
	assertEqual(t, collect(t, s), []int{1})
	assertEqual(t, collect(t, s), []int{2})
}

func TestFromChan(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	close(ch)
	assertEqual(t, collect(t, FromChan(ch)), []string{"a", "b"})
}

func TestDelayElements(t *testing.T) {
	start := time.Now()
	assertEqual(t, collect(t, Just(1, 2, 3).DelayElements(10*time.Millisecond)), []int{1, 2, 3})
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms, took %v", elapsed)
	}
}

func TestDelayElements_Cancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Just(1).DelayElements(time.Hour).Collect(ctx)
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestDoFinally(t *testing.T) {
	boom := stderrors.New("boom")
	tests := []struct {
		name string
		s    Stream[int]
		want SignalKind
	}{
		{"complete", Just(1, 2), SignalComplete},
		{"error", Fail[int](boom), SignalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SignalKind = SignalNext
			_, _ = tt.s.DoFinally(func(k SignalKind, _ error) { got = k }).Collect(context.Background())
			if got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("take cancels upstream", func(t *testing.T) {
		var got SignalKind
		collect(t, Just(1, 2, 3).DoFinally(func(k SignalKind, _ error) { got = k }).Take(1))
		if got != SignalCancelled {
			t.Errorf("kind = %v, want cancelled", got)
		}
	})
}

func TestDoOnEach(t *testing.T) {
	var kinds []SignalKind
	collect(t, Just("a", "b").DoOnEach(func(s Signal[string]) { kinds = append(kinds, s.Kind) }))
	assertEqual(t, kinds, []SignalKind{SignalNext, SignalNext, SignalComplete})
}

func TestSignalKind_String(t *testing.T) {
	for kind, want := range map[SignalKind]string{
		SignalNext: "next", SignalComplete: "complete", SignalError: "error", SignalCancelled: "cancelled", SignalKind(9): "unknown",
	} {
		if kind.String() != want {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), want)
		}
	}
	if SignalNext.Terminal() || !SignalError.Terminal() {
		t.Error("Terminal() mismatch")
	}
}
