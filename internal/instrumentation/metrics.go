package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrTool      = "tool"
	attrOperation = "operation"
	attrStatus    = "status"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics provides recorders for the observability signals this server
// emits: tool invocations, Drive API operations, and token refreshes.
type Metrics struct {
	toolInvocationsTotal  metric.Int64Counter
	toolDuration          metric.Float64Histogram
	driveOperationsTotal  metric.Int64Counter
	driveOperationSeconds metric.Float64Histogram
	tokenRefreshTotal     metric.Int64Counter
}

// NewMetrics creates all metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("Duration of MCP tool invocations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.driveOperationsTotal, err = meter.Int64Counter(
		"drive_api_operations_total",
		metric.WithDescription("Total number of Drive API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operations_total counter: %w", err)
	}

	m.driveOperationSeconds, err = meter.Float64Histogram(
		"drive_api_operation_duration_seconds",
		metric.WithDescription("Duration of Drive API operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operation_duration_seconds histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh exchanges"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records one tool call and its duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDriveOperation records one Drive API operation and its duration.
func (m *Metrics) RecordDriveOperation(ctx context.Context, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.driveOperationsTotal.Add(ctx, 1, attrs)
	m.driveOperationSeconds.Record(ctx, duration.Seconds(), attrs)
}

// RecordTokenRefresh records the outcome of a refresh exchange.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, status string) {
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}
