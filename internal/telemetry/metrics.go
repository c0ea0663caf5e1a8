package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome labels the result of a tool call in metrics.
type ToolCallOutcome string

const (
	ToolCallOutcomeSuccess ToolCallOutcome = "success"
	ToolCallOutcomeError   ToolCallOutcome = "error"
)

// CustomMetrics records refpin-specific metrics.
// Callers use this interface without worrying about whether metrics are
// enabled; the no-op implementation simply does nothing.
type CustomMetrics interface {
	RecordToolCall(ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics that discards everything.
func NewNoopCustomMetrics() CustomMetrics {
	return &noopCustomMetrics{}
}

func (n *noopCustomMetrics) RecordToolCall(context.Context, string, ToolCallOutcome, time.Duration) {
}

type otelCustomMetrics struct {
	toolCalls    metric.Int64Counter
	toolDuration metric.Float64Histogram
}

// NewOtelCustomMetrics creates a CustomMetrics backed by the given meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"refpin.tool.calls",
		metric.WithDescription("Number of tool calls served"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool calls counter: %w", err)
	}

	toolDuration, err := meter.Float64Histogram(
		"refpin.tool.call.duration",
		metric.WithDescription("Duration of tool calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelCustomMetrics{
		toolCalls:    toolCalls,
		toolDuration: toolDuration,
	}, nil
}

func (o *otelCustomMetrics) RecordToolCall(
	ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", string(outcome)),
	)
	o.toolCalls.Add(ctx, 1, attrs)
	o.toolDuration.Record(ctx, duration.Seconds(), attrs)
}
