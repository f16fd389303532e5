// Package format shapes Drive records into compact, assistant-facing MCP
// tool results.
//
// Each tool gets a fixed field projection: listings omit content, content
// results omit unrelated metadata. Overlong text is truncated with an
// explicit marker, never mid-character. Empty result sets are shaped as
// successful results with an explanatory note; only failures set the error
// flag, always as a "kind: message" envelope built from the fault taxonomy.
package format
