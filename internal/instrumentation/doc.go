// Package instrumentation provides OpenTelemetry metrics for drivescout,
// exported through the Prometheus registry served by the metrics server.
//
// The provider is inert unless enabled, so the stdio-only code path carries
// zero instrumentation cost.
package instrumentation
