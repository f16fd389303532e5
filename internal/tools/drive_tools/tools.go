package drive_tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/finnvale/drivescout/internal/instrumentation"
	"github.com/finnvale/drivescout/internal/logging"
)

// RegisterTools registers the five Drive tools with the MCP server. Each
// handler delegates to the dispatcher; the outer transport never sees a Go
// error, only structured tool results.
func RegisterTools(s *mcpserver.MCPServer, d *Dispatcher) {
	searchTool := mcp.NewTool(ToolSearchDrive,
		mcp.WithDescription("Search Google Drive for files matching a query. Matches file names, and file content where Drive indexes it (Google Docs, Sheets, Slides)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms to find in file names or contents"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 20, max: 100)"),
		),
	)
	s.AddTool(searchTool, handler(d, ToolSearchDrive))

	listRecentTool := mcp.NewTool(ToolListRecentFiles,
		mcp.WithDescription("List files recently edited or viewed in Google Drive, most recent first."),
		mcp.WithNumber("hours",
			mcp.Required(),
			mcp.Description("Number of hours to look back (must be positive)"),
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Whether to list files 'edited' or 'viewed' within the window"),
			mcp.Enum("edited", "viewed"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 25, max: 100)"),
		),
	)
	s.AddTool(listRecentTool, handler(d, ToolListRecentFiles))

	getContentTool := mcp.NewTool(ToolGetFileContent,
		mcp.WithDescription("Get the text content of a Google Drive file. Google Docs, Sheets and Slides are exported as plain text or CSV; text files are downloaded directly. Binary files are not readable through this tool."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The Google Drive file ID"),
		),
	)
	s.AddTool(getContentTool, handler(d, ToolGetFileContent))

	getMetadataTool := mcp.NewTool(ToolGetFileMetadata,
		mcp.WithDescription("Get detailed metadata for a Google Drive file: name, type, size, timestamps, owners and sharing state."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The Google Drive file ID"),
		),
	)
	s.AddTool(getMetadataTool, handler(d, ToolGetFileMetadata))

	listFolderTool := mcp.NewTool(ToolListFolderContents,
		mcp.WithDescription("List the contents of a Google Drive folder, folders first."),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The Google Drive folder ID ('root' for the My Drive root)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 50, max: 100)"),
		),
	)
	s.AddTool(listFolderTool, handler(d, ToolListFolderContents))
}

// handler wraps one tool's dispatch with timing, metrics and debug logging.
func handler(d *Dispatcher, name string) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result := d.Dispatch(ctx, name, request.GetArguments())
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if result != nil && result.IsError {
			status = instrumentation.StatusError
		}
		if m := d.sc.Metrics(); m != nil {
			m.RecordToolInvocation(ctx, name, status, duration)
		}
		d.logger.Debug("tool call finished",
			logging.Tool(name),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
		)
		return result, nil
	}
}
