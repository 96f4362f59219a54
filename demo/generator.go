package demo

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/logger"
)

var names = []string{"Shubham", "Alex", "Ali", "Josh"}

// Generator builds the demo pipelines. Pipelines are cold: each run starts
// from the names again.
type Generator struct {
	log      *logger.Logger
	maxDelay time.Duration
	// mergeDelays are the element delays of the two merged sources.
	mergeDelays [2]time.Duration
}

// NewGenerator creates a Generator logging through log. maxDelay bounds
// the random delay of SplitStringWithDelay; zero disables it.
func NewGenerator(log *logger.Logger, maxDelay time.Duration) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		log:         log,
		maxDelay:    maxDelay,
		mergeDelays: [2]time.Duration{100 * time.Millisecond, 125 * time.Millisecond},
	}
}

// Names emits the names.
func (g *Generator) Names() flux.Stream[string] {
	return flux.FromSlice(names).Log(g.log, "names")
}

// NamesUpper emits the names in upper case.
func (g *Generator) NamesUpper() flux.Stream[string] {
	return flux.Map(flux.FromSlice(names), strings.ToUpper).Log(g.log, "namesUpper")
}

// NamesUpperLongerThan emits the upper-cased names longer than n.
func (g *Generator) NamesUpperLongerThan(n int) flux.Stream[string] {
	return flux.Map(flux.FromSlice(names), strings.ToUpper).
		Filter(longerThan(n)).
		Log(g.log, "namesUpperLongerThan")
}

// SplitString emits the letters of name.
func (g *Generator) SplitString(name string) flux.Stream[string] {
	return flux.FromSlice(strings.Split(name, ""))
}

// SplitStringWithDelay emits the letters of name, each delayed by the
// same random duration below the generator's max delay. The duration is
// drawn per run.
func (g *Generator) SplitStringWithDelay(name string) flux.Stream[string] {
	return flux.Defer(func() flux.Stream[string] {
		return g.SplitString(name).DelayElements(g.randomDelay())
	})
}

// NamesFlatMap emits the letters of every upper-cased name.
func (g *Generator) NamesFlatMap() flux.Stream[string] {
	return flux.FlatMap(flux.Map(flux.FromSlice(names), strings.ToUpper), g.SplitString)
}

// NamesTransform applies the shared upper-case-and-split operator.
func (g *Generator) NamesTransform() flux.Stream[string] {
	return flux.Transform(flux.FromSlice(names), g.upperSplit(0))
}

// NamesTransformDefault splits the upper-cased names longer than n and
// emits "default" when none are.
func (g *Generator) NamesTransformDefault(n int) flux.Stream[string] {
	return flux.Transform(flux.FromSlice(names), g.upperSplit(n)).DefaultIfEmpty("default")
}

// NamesTransformSwitchIfEmpty splits the upper-cased names longer than n
// and falls back to splitting "defaultab" the same way when none are.
func (g *Generator) NamesTransformSwitchIfEmpty(n int) flux.Stream[string] {
	op := g.upperSplit(n)
	fallback := flux.Transform(flux.Just("defaultab"), op)
	return flux.Transform(flux.FromSlice(names), op).SwitchIfEmpty(fallback)
}

// NamesFlatMapAsync splits every upper-cased name with a random delay.
// Letters of different names interleave.
func (g *Generator) NamesFlatMapAsync() flux.Stream[string] {
	return flux.FlatMap(flux.Map(flux.FromSlice(names), strings.ToUpper), g.SplitStringWithDelay)
}

// NamesConcatMapAsync is NamesFlatMapAsync with the letters kept in name
// order.
func (g *Generator) NamesConcatMapAsync() flux.Stream[string] {
	return flux.ConcatMap(flux.Map(flux.FromSlice(names), strings.ToUpper), g.SplitStringWithDelay)
}

// NamesImmutable shows that operators return new streams: the upper-cased
// stream is discarded and the original names are emitted.
func (g *Generator) NamesImmutable() flux.Stream[string] {
	s := flux.FromSlice(names)
	_ = flux.Map(s, strings.ToUpper)
	return s
}

// Name emits a single name.
func (g *Generator) Name() flux.Task[string] {
	return flux.Value("Jayesh").Log(g.log, "name")
}

// NameLetters upper-cases "alex" and emits its letters as one list.
func (g *Generator) NameLetters() flux.Task[[]string] {
	upper := flux.MapTask(flux.Value("alex"), strings.ToUpper)
	return flux.FlatMapTask(upper, func(s string) flux.Task[[]string] {
		return flux.Value(strings.Split(s, ""))
	})
}

// NameLettersMany upper-cases "alex" and emits its letters one by one.
func (g *Generator) NameLettersMany() flux.Stream[string] {
	return flux.FlatMapMany(flux.MapTask(flux.Value("alex"), strings.ToUpper), g.SplitString)
}

// Concat emits A B C then D E F.
func (g *Generator) Concat() flux.Stream[string] {
	return flux.Concat(flux.Just("A", "B", "C"), flux.Just("D", "E", "F"))
}

// ConcatWith emits the values of two tasks in order.
func (g *Generator) ConcatWith() flux.Stream[string] {
	return flux.Value("A").ConcatWith(flux.Value("B"))
}

// Merge interleaves two delayed sources as their values arrive.
func (g *Generator) Merge() flux.Stream[string] {
	abc, def := g.delayedSources()
	return flux.Merge(abc, def)
}

// MergeWith is Merge in method form.
func (g *Generator) MergeWith() flux.Stream[string] {
	abc, def := g.delayedSources()
	return abc.MergeWith(def)
}

// MergeWithTask merges the values of two tasks.
func (g *Generator) MergeWithTask() flux.Stream[string] {
	return flux.Value("A").MergeWith(flux.Value("B"))
}

// MergeSequential subscribes to both delayed sources at once but emits
// them in source order.
func (g *Generator) MergeSequential() flux.Stream[string] {
	abc, def := g.delayedSources()
	return flux.MergeSequential(abc, def)
}

// Zip pairs A B C with D E F.
func (g *Generator) Zip() flux.Stream[string] {
	return flux.Zip(flux.Just("A", "B", "C"), flux.Just("D", "E", "F"), concat2)
}

// ZipWith is Zip in method form.
func (g *Generator) ZipWith() flux.Stream[string] {
	return flux.Just("A", "B", "C").ZipWith(flux.Just("D", "E", "F"), concat2)
}

// ZipWithTask combines the values of two tasks.
func (g *Generator) ZipWithTask() flux.Task[string] {
	return flux.Value("A").ZipWith(flux.Value("D"), concat2)
}

// ZipFour combines four sources position by position.
func (g *Generator) ZipFour() flux.Stream[string] {
	return flux.ZipAll(func(parts []string) string { return strings.Join(parts, "") },
		flux.Just("A", "B", "C"),
		flux.Just("D", "E", "F"),
		flux.Just("1", "2", "3"),
		flux.Just("4", "5", "6"),
	)
}

func (g *Generator) upperSplit(n int) flux.Operator[string, string] {
	upper := flux.Compose(flux.MapOp(strings.ToUpper), flux.FilterOp(longerThan(n)))
	return func(s flux.Stream[string]) flux.Stream[string] {
		return flux.FlatMap(upper(s), g.SplitString)
	}
}

func (g *Generator) delayedSources() (flux.Stream[string], flux.Stream[string]) {
	return flux.Just("A", "B", "C").DelayElements(g.mergeDelays[0]),
		flux.Just("D", "E", "F").DelayElements(g.mergeDelays[1])
}

func (g *Generator) randomDelay() time.Duration {
	if g.maxDelay <= 0 {
		return 0
	}
	return rand.N(g.maxDelay)
}

func longerThan(n int) func(string) bool {
	return func(s string) bool { return len(s) > n }
}

func concat2(a, b string) string { return a + b }
