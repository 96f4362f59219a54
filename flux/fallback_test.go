package flux

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestDefaultIfEmpty(t *testing.T) {
	longNames := func(min int) Stream[string] {
		return Map(FromSlice(names), strings.ToUpper).Filter(func(s string) bool { return len(s) > min })
	}

	assertEqual(t, collect(t, longNames(8).DefaultIfEmpty("default")), []string{"default"})
	assertEqual(t, collect(t, longNames(3).DefaultIfEmpty("default")), []string{"SHUBHAM", "ALEX", "JOSH"})
}

func TestDefaultIfEmpty_ErrorPassesThrough(t *testing.T) {
	boom := stderrors.New("boom")
	got, err := Fail[string](boom).DefaultIfEmpty("default").Collect(context.Background())
	if !stderrors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("no default may be emitted on error, got %v", got)
	}
}

func TestSwitchIfEmpty(t *testing.T) {
	tests := []struct {
		name       string
		source     Stream[string]
		want       []string
		altStarted int32
	}{
		{"empty switches", Empty[string](), []string{"D", "E", "F"}, 1},
		{"non-empty keeps source", Just("A", "B"), []string{"A", "B"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var starts atomic.Int32
			alt := counted(chars("DEF"), &starts)
			assertEqual(t, collect(t, tt.source.SwitchIfEmpty(alt)), tt.want)
			if starts.Load() != tt.altStarted {
				t.Errorf("alternative started %d times, want %d", starts.Load(), tt.altStarted)
			}
		})
	}
}

func TestSwitchIfEmpty_ErrorNeverStartsAlternative(t *testing.T) {
	var starts atomic.Int32
	boom := stderrors.New("boom")
	_, err := Fail[string](boom).SwitchIfEmpty(counted(Just("x"), &starts)).Collect(context.Background())
	if !stderrors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if starts.Load() != 0 {
		t.Error("alternative must not start after an error")
	}
}

func TestSwitchIfEmpty_WithTransform(t *testing.T) {
	split := func(s Stream[string]) Stream[string] {
		upper := Map(s, strings.ToUpper).Filter(func(s string) bool { return len(s) > 6 })
		return ConcatMap(upper, chars)
	}
	got := collect(t, Transform(FromSlice([]string{"alex", "ben"}), split).SwitchIfEmpty(Transform(Just("defaultab"), split)))
	assertEqual(t, got, []string{"D", "E", "F", "A", "U", "L", "T", "A", "B"})
}
