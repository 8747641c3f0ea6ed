package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StreamMetrics holds OpenTelemetry metric instruments for the realtime
// streaming accumulator. All record methods are safe on a nil receiver.
type StreamMetrics struct {
	packetsTotal   metric.Int64Counter
	samplesTotal   metric.Int64Counter
	gapsTotal      metric.Int64Counter
	overlapsTotal  metric.Int64Counter
	trimmedTotal   metric.Int64Counter
	appendDuration metric.Float64Histogram
}

// NewStreamMetrics creates the streaming instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	packetsTotal, err := meter.Int64Counter("stream.packets.total",
		metric.WithDescription("Total number of packets appended"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.packets.total counter: %w", err)
	}

	samplesTotal, err := meter.Int64Counter("stream.samples.total",
		metric.WithDescription("Total number of samples appended"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.samples.total counter: %w", err)
	}

	gapsTotal, err := meter.Int64Counter("stream.gaps.total",
		metric.WithDescription("Total number of gaps detected between packets"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.gaps.total counter: %w", err)
	}

	overlapsTotal, err := meter.Int64Counter("stream.overlaps.total",
		metric.WithDescription("Total number of overlaps detected between packets"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.overlaps.total counter: %w", err)
	}

	trimmedTotal, err := meter.Int64Counter("stream.samples.trimmed",
		metric.WithDescription("Total number of samples removed by retention trimming"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.samples.trimmed counter: %w", err)
	}

	appendDuration, err := meter.Float64Histogram("stream.append.duration",
		metric.WithDescription("Duration of append calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.append.duration histogram: %w", err)
	}

	return &StreamMetrics{
		packetsTotal:   packetsTotal,
		samplesTotal:   samplesTotal,
		gapsTotal:      gapsTotal,
		overlapsTotal:  overlapsTotal,
		trimmedTotal:   trimmedTotal,
		appendDuration: appendDuration,
	}, nil
}

// RecordAppend records one successful packet append.
func (m *StreamMetrics) RecordAppend(ctx context.Context, channel string, samples int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("channel", channel))
	m.packetsTotal.Add(ctx, 1, attrs)
	m.samplesTotal.Add(ctx, int64(samples), attrs)
	m.appendDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGap records a detected gap.
func (m *StreamMetrics) RecordGap(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.gapsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", channel)))
}

// RecordOverlap records a detected overlap.
func (m *StreamMetrics) RecordOverlap(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.overlapsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", channel)))
}

// RecordTrim records samples removed by retention trimming.
func (m *StreamMetrics) RecordTrim(ctx context.Context, channel string, samples int) {
	if m == nil {
		return
	}
	m.trimmedTotal.Add(ctx, int64(samples), metric.WithAttributes(attribute.String("channel", channel)))
}
