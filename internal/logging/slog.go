package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyTool     = "tool"
	KeyFileID   = "file_id"
	KeyDuration = "duration"
	KeyStatus   = "status"
	KeyError    = "error"
)

// Setup configures the default slog logger. Output always goes to stderr:
// with stdio transport, stdout belongs to the MCP protocol stream.
func Setup(debug bool) *slog.Logger {
	return SetupWithWriter(os.Stderr, debug)
}

// SetupWithWriter is Setup with an explicit destination, for tests.
func SetupWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// FileID returns a slog attribute for a Drive file identifier.
func FileID(id string) slog.Attr {
	return slog.String(KeyFileID, id)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error. If err is nil, returns an empty
// Group attribute that will be omitted from output, so Err(maybeNilErr) is
// always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging. Only the
// length is exposed; even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
