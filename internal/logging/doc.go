// Package logging provides structured logging utilities for drivescout.
//
// It centralizes slog attribute naming and sanitization so log lines stay
// consistent and never leak token material. All logging goes to stderr; with
// stdio transport, stdout is reserved for the MCP protocol stream.
package logging
