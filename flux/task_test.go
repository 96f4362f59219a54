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

func block[T any](t *testing.T, task Task[T]) (T, bool) {
	t.Helper()
	v, ok, err := task.Block(context.Background())
	if err != nil {
		t.Fatalf("Block() error = %v", err)
	}
	return v, ok
}

func TestTask_Constructors(t *testing.T) {
	if v, ok := block(t, Value("Jayesh")); !ok || v != "Jayesh" {
		t.Errorf("Value = %q, %v", v, ok)
	}
	if _, ok := block(t, EmptyTask[string]()); ok {
		t.Error("EmptyTask produced a value")
	}
	if _, ok := block(t, Task[int]{}); ok {
		t.Error("zero Task produced a value")
	}

	boom := stderrors.New("boom")
	if _, _, err := FailedTask[int](boom).Block(context.Background()); !stderrors.Is(err, boom) {
		t.Errorf("FailedTask error = %v", err)
	}
}

func TestNewTask(t *testing.T) {
	v, ok := block(t, NewTask(func(context.Context) (int, error) { return 42, nil }))
	if !ok || v != 42 {
		t.Errorf("NewTask = %d, %v", v, ok)
	}

	cause := stderrors.New("connection refused")
	_, _, err := NewTask(func(context.Context) (int, error) { return 0, cause }).Block(context.Background())
	if !errors.IsUpstreamFailure(err) || !stderrors.Is(err, cause) {
		t.Errorf("expected upstream failure, got %v", err)
	}

	if _, ok := block(t, NewOptionalTask(func(context.Context) (int, bool, error) { return 0, false, nil })); ok {
		t.Error("NewOptionalTask with ok=false produced a value")
	}
}

func TestNewTask_IsCold(t *testing.T) {
	var calls atomic.Int32
	task := NewTask(func(context.Context) (int32, error) { return calls.Add(1), nil })
	if calls.Load() != 0 {
		t.Fatal("task ran before subscription")
	}
	block(t, task)
	if v, _ := block(t, task); v != 2 {
		t.Errorf("second run = %d, want 2", v)
	}
}

func TestDeferTask(t *testing.T) {
	n := 0
	task := DeferTask(func() Task[int] { n++; return Value(n) })
	block(t, task)
	if v, _ := block(t, task); v != 2 {
		t.Errorf("DeferTask second run = %d", v)
	}
}

func TestMapTask_FlatMapTask(t *testing.T) {
	upper := MapTask(Value("alex"), strings.ToUpper)
	if v, _ := block(t, upper); v != "ALEX" {
		t.Errorf("MapTask = %q", v)
	}

	list := FlatMapTask(upper, func(s string) Task[[]string] { return Value(strings.Split(s, "")) })
	if v, _ := block(t, list); strings.Join(v, ",") != "A,L,E,X" {
		t.Errorf("FlatMapTask = %v", v)
	}

	assertEqual(t, collect(t, FlatMapMany(upper, chars)), []string{"A", "L", "E", "X"})

	var called bool
	empty := FlatMapTask(EmptyTask[string](), func(string) Task[int] { called = true; return Value(1) })
	if _, ok := block(t, empty); ok || called {
		t.Error("FlatMapTask on an empty task must stay empty without calling f")
	}
}

func TestTryMapTask(t *testing.T) {
	_, _, err := TryMapTask(Value(1), func(int) (int, error) { return 0, stderrors.New("bad") }).Block(context.Background())
	if !errors.IsOperatorFailure(err) {
		t.Errorf("expected operator failure, got %v", err)
	}
}

func TestTask_Fallbacks(t *testing.T) {
	long := func(s string) bool { return len(s) > 3 }

	if v, _ := block(t, Value("alex").Filter(long)); v != "alex" {
		t.Errorf("Filter kept %q", v)
	}
	if v, _ := block(t, Value("ali").Filter(long).DefaultIfEmpty("default")); v != "default" {
		t.Errorf("DefaultIfEmpty = %q", v)
	}

	var starts atomic.Int32
	alt := Task[string]{s: counted(Just("alt"), &starts)}
	if v, _ := block(t, Value("ali").Filter(long).SwitchIfEmpty(alt)); v != "alt" {
		t.Errorf("SwitchIfEmpty = %q", v)
	}
	if v, _ := block(t, Value("alex").SwitchIfEmpty(alt)); v != "alex" {
		t.Errorf("SwitchIfEmpty on value = %q", v)
	}
	if starts.Load() != 1 {
		t.Errorf("alternative started %d times, want 1", starts.Load())
	}
}

func TestTask_Combinators(t *testing.T) {
	a, b := Value("A"), Value("B")
	assertEqual(t, collect(t, a.ConcatWith(b)), []string{"A", "B"})
	assertSameElements(t, collect(t, a.MergeWith(b)), []string{"A", "B"})

	if v, _ := block(t, a.ZipWith(Value("D"), concat2)); v != "AD" {
		t.Errorf("ZipWith = %q", v)
	}
	if _, ok := block(t, a.ZipWith(EmptyTask[string](), concat2)); ok {
		t.Error("zip with an empty task must be empty")
	}
	zipped := ZipTasks(Value(2), Value("x"), func(n int, s string) string { return strings.Repeat(s, n) })
	if v, _ := block(t, zipped); v != "xx" {
		t.Errorf("ZipTasks = %q", v)
	}
}

func TestFirst(t *testing.T) {
	if v, ok := block(t, First(Interval(time.Millisecond))); !ok || v != 0 {
		t.Errorf("First(Interval) = %d, %v", v, ok)
	}
	if _, ok := block(t, First(Empty[int]())); ok {
		t.Error("First of empty produced a value")
	}
}

func TestCollectList(t *testing.T) {
	v, ok := block(t, CollectList(Just(1, 2, 3)))
	if !ok {
		t.Fatal("CollectList produced nothing")
	}
	assertEqual(t, v, []int{1, 2, 3})

	empty, ok := block(t, CollectList(Empty[int]()))
	if !ok || empty == nil || len(empty) != 0 {
		t.Errorf("CollectList(empty) = %v, %v", empty, ok)
	}
}

func TestTask_Transform(t *testing.T) {
	op := Compose(MapOp(strings.ToUpper), FilterOp(func(s string) bool { return len(s) > 3 }))
	if v, _ := block(t, Value("alex").Transform(op)); v != "ALEX" {
		t.Errorf("Transform = %q", v)
	}
	twice := func(s Stream[string]) Stream[string] { return s.ConcatWith(s) }
	if v, _ := block(t, Value("x").Transform(twice)); v != "x" {
		t.Errorf("Transform must keep a single value, got %q", v)
	}
}

func TestTask_DoHooks(t *testing.T) {
	var seen string
	var kind SignalKind
	block(t, Value("v").DoOnNext(func(s string) { seen = s }).DoFinally(func(k SignalKind, _ error) { kind = k }))
	if seen != "v" || kind != SignalComplete {
		t.Errorf("hooks saw %q, %v", seen, kind)
	}
}
