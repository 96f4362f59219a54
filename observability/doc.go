// Package observability provides OpenTelemetry tracing and metrics for
// fluxkit services, including per-subscription tracing of flux streams.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("moviesinfo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("moviesinfo"))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("moviesinfo"))
//
// Streams and tasks:
//
//	movies := observability.TraceStream(store.FindAll(), "movieinfo.find_all", metrics)
//
// Every run of the traced producer opens one span, counts its values and
// records the terminal signal and duration.
package observability
