// Package flux provides push-based asynchronous streams.
//
// A Stream produces zero or more values followed by completion or failure; a
// Task produces at most one. Both are cold: constructing and composing them
// does nothing until they are run or subscribed, and every run executes the
// source again.
//
// Values are pushed downstream through Emitter callbacks. A source stops as
// soon as an emit returns an error and returns that error unchanged, which
// is how cancellation, failures and early completion travel upstream.
//
// # Operators
//
// Per value:
//
//   - Map, TryMap, Filter: transform or drop values
//   - Transform, Compose: apply reusable Operator pipelines
//   - DefaultIfEmpty, SwitchIfEmpty: fall back when a source completes empty
//   - DoOnNext, DoOnEach, DoOnSubscribe, DoFinally, Log: side effects
//   - Take, First, CollectList: bound or aggregate a stream
//   - DelayElements, Interval: time-based production
//
// Flattening:
//
//   - FlatMap, FlatMapN: inner streams run concurrently, output interleaves
//   - ConcatMap: inner streams run one after another, output is ordered
//
// Combining:
//
//   - Concat: sources one after another
//   - Merge: sources concurrently, output interleaves
//   - MergeSequential: sources concurrently, output in source order
//   - Zip, ZipAll, ZipWith: pair the k-th value of every source
//
// Every concurrent combinator fails fast: the first error cancels all
// sibling branches and is the only terminal signal delivered downstream.
//
// # Usage
//
//	names := flux.Just("alex", "ben", "chloe")
//	upper := flux.Map(names, strings.ToUpper).Filter(func(s string) bool { return len(s) > 3 })
//	values, err := upper.Collect(ctx) // [ALEX CHLOE]
//
//	sub := upper.Subscribe(ctx, flux.Subscriber[string]{
//	    OnNext:     func(s string) { fmt.Println(s) },
//	    OnError:    func(err error) { log.Println(err) },
//	    OnComplete: func() { fmt.Println("done") },
//	})
//	defer sub.Cancel()
package flux
