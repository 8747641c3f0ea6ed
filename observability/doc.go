// Package observability provides OpenTelemetry tracing and metrics
// integration for seiskit streaming pipelines.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("picker"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "stream.append")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("picker"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStreamMetrics(observability.Meter("picker"))
//	stream, err := realtime.New(realtime.WithMetrics(metrics))
//
// A nil *StreamMetrics is valid everywhere and records nothing, so
// instrumentation stays optional.
package observability
