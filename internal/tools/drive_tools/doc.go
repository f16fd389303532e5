// Package drive_tools exposes the read-only Google Drive tool set over MCP
// and contains the dispatcher that validates, authorizes, executes and
// shapes every tool call.
//
// Tool calls are independent units of work: the dispatcher holds no per-call
// state and supports arbitrary pipelining; the only shared mutable state is
// the credential, behind the auth.Manager. Each call's remote work runs
// under a bounded timeout, and cancellation from the transport abandons the
// in-flight remote call immediately (reads have no side effects to unwind).
package drive_tools
