package drive_tools

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/finnvale/drivescout/internal/drive"
	"github.com/finnvale/drivescout/internal/fault"
	"github.com/finnvale/drivescout/internal/format"
	"github.com/finnvale/drivescout/internal/logging"
	"github.com/finnvale/drivescout/internal/server"
)

// The fixed tool set this server exposes.
const (
	ToolSearchDrive        = "search_drive"
	ToolListRecentFiles    = "list_recent_files"
	ToolGetFileContent     = "get_file_content"
	ToolGetFileMetadata    = "get_file_metadata"
	ToolListFolderContents = "list_folder_contents"
)

const (
	// defaultCallTimeout bounds the remote work of one tool call.
	defaultCallTimeout = 30 * time.Second

	// maxResultCount is the hard ceiling on results per call regardless of
	// what the caller asks for.
	maxResultCount = 100

	defaultSearchResults = 20
	defaultRecentResults = 25
	defaultFolderResults = 50
)

// Dispatcher routes a tool invocation to its handler. Validation failures
// never reach the remote layer, remote failures never escape unclassified,
// and every path produces a tool result.
type Dispatcher struct {
	sc      *server.ServerContext
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout overrides the per-call remote timeout.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) { disp.timeout = d }
}

// WithLogger sets the dispatch logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(disp *Dispatcher) { disp.logger = logger }
}

// WithClock overrides the time source used for recency cutoffs, for tests.
func WithClock(now func() time.Time) DispatcherOption {
	return func(disp *Dispatcher) { disp.now = now }
}

// NewDispatcher creates a dispatcher bound to the server context.
func NewDispatcher(sc *server.ServerContext, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sc:      sc,
		timeout: defaultCallTimeout,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates and executes one tool invocation.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	switch name {
	case ToolSearchDrive:
		return d.searchDrive(ctx, args)
	case ToolListRecentFiles:
		return d.listRecentFiles(ctx, args)
	case ToolGetFileContent:
		return d.getFileContent(ctx, args)
	case ToolGetFileMetadata:
		return d.getFileMetadata(ctx, args)
	case ToolListFolderContents:
		return d.listFolderContents(ctx, args)
	default:
		return format.Errorf(fault.KindUnknownTool, "unknown tool %q", name)
	}
}

// authorized obtains a Drive API bound to a valid credential, translating
// any credential failure into the auth_required envelope the assistant layer
// acts on ("re-authorization needed").
func (d *Dispatcher) authorized(ctx context.Context) (drive.API, *mcp.CallToolResult) {
	api, err := d.sc.AuthorizedAPI(ctx)
	if err != nil {
		switch fault.KindOf(err) {
		case fault.KindNoCredential, fault.KindRefreshFailed, fault.KindAuthRequired:
			return nil, format.Errorf(fault.KindAuthRequired, "%v", err)
		}
		return nil, format.ErrorResult(err)
	}
	return api, nil
}

func (d *Dispatcher) searchDrive(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	query, ok := stringArg(args, "query")
	if !ok || strings.TrimSpace(query) == "" {
		return format.Errorf(fault.KindInvalidArgument, "query must be a non-empty string")
	}
	limit, ok := boundedResultCount(args, defaultSearchResults, maxResultCount)
	if !ok {
		return format.Errorf(fault.KindInvalidArgument, "maxResults must be a positive integer")
	}

	api, errResult := d.authorized(ctx)
	if errResult != nil {
		return errResult
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	records, err := drive.CollectFiles(ctx, api, drive.ListOptions{
		Query:   drive.SearchQuery(query),
		OrderBy: "modifiedTime desc",
	}, limit)
	if err != nil {
		return format.ErrorResult(err)
	}
	return format.SearchResults(query, records)
}

func (d *Dispatcher) listRecentFiles(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	hours, ok := intArg(args, "hours")
	if !ok || hours <= 0 {
		return format.Errorf(fault.KindInvalidArgument, "hours must be a positive integer")
	}
	modeStr, ok := stringArg(args, "mode")
	if !ok {
		return format.Errorf(fault.KindInvalidArgument, "mode is required and must be %q or %q", drive.ModeEdited, drive.ModeViewed)
	}
	mode := drive.RecentMode(modeStr)
	if !mode.Valid() {
		return format.Errorf(fault.KindInvalidArgument, "mode must be %q or %q, got %q", drive.ModeEdited, drive.ModeViewed, modeStr)
	}
	limit, ok := boundedResultCount(args, defaultRecentResults, maxResultCount)
	if !ok {
		return format.Errorf(fault.KindInvalidArgument, "maxResults must be a positive integer")
	}

	api, errResult := d.authorized(ctx)
	if errResult != nil {
		return errResult
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// The cutoff is fixed at dispatch time; the remote filter and ordering
	// both use the timestamp field the mode selects.
	cutoff := d.now().Add(-time.Duration(hours) * time.Hour)
	query, orderBy := drive.RecentQuery(cutoff, mode)

	records, err := drive.CollectFiles(ctx, api, drive.ListOptions{
		Query:   query,
		OrderBy: orderBy,
	}, limit)
	if err != nil {
		return format.ErrorResult(err)
	}
	return format.RecentResults(hours, mode, records)
}

func (d *Dispatcher) getFileContent(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	fileID, ok := stringArg(args, "fileId")
	if !ok || strings.TrimSpace(fileID) == "" {
		return format.Errorf(fault.KindInvalidArgument, "fileId must be a non-empty string")
	}

	api, errResult := d.authorized(ctx)
	if errResult != nil {
		return errResult
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	content, err := drive.NewRetriever(api).Fetch(ctx, fileID)
	if err != nil {
		d.logger.Debug("content retrieval failed", logging.FileID(fileID), logging.Err(err))
		return format.ErrorResult(err)
	}
	return format.ContentResult(content)
}

func (d *Dispatcher) getFileMetadata(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	fileID, ok := stringArg(args, "fileId")
	if !ok || strings.TrimSpace(fileID) == "" {
		return format.Errorf(fault.KindInvalidArgument, "fileId must be a non-empty string")
	}

	api, errResult := d.authorized(ctx)
	if errResult != nil {
		return errResult
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	rec, err := api.GetFile(ctx, fileID)
	if err != nil {
		return format.ErrorResult(err)
	}
	return format.Metadata(rec)
}

func (d *Dispatcher) listFolderContents(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	// A missing folder ID is an error, not an implicit root listing:
	// substituting root could hand back results the caller never asked for.
	folderID, ok := stringArg(args, "folderId")
	if !ok || strings.TrimSpace(folderID) == "" {
		return format.Errorf(fault.KindInvalidArgument, "folderId must be a non-empty string (use \"root\" for My Drive)")
	}
	limit, ok := boundedResultCount(args, defaultFolderResults, maxResultCount)
	if !ok {
		return format.Errorf(fault.KindInvalidArgument, "maxResults must be a positive integer")
	}

	api, errResult := d.authorized(ctx)
	if errResult != nil {
		return errResult
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	records, err := drive.CollectFiles(ctx, api, drive.ListOptions{
		Query:   drive.FolderQuery(folderID),
		OrderBy: "folder,name",
	}, limit)
	if err != nil {
		return format.ErrorResult(err)
	}
	return format.FolderListing(folderID, records)
}
