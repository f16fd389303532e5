// Package server holds the MCP server's process-wide context and the
// optional metrics endpoint.
package server
