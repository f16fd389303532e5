package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/finnvale/drivescout/internal/drive"
	"github.com/finnvale/drivescout/internal/fault"
)

// FileSummary is the listing projection of a FileRecord: enough to identify
// and open a file, nothing more. Content results use FileContent instead.
type FileSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	ModifiedTime   string `json:"modifiedTime,omitempty"`
	ViewedByMeTime string `json:"viewedByMeTime,omitempty"`
	WebViewLink    string `json:"webViewLink,omitempty"`
}

// FileMetadata is the full projection returned by get_file_metadata.
type FileMetadata struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         int64    `json:"size,omitempty"`
	CreatedTime  string   `json:"createdTime,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	WebViewLink  string   `json:"webViewLink,omitempty"`
	Parents      []string `json:"parents,omitempty"`
	Owners       []string `json:"owners,omitempty"`
	Shared       bool     `json:"shared"`
}

// FileContent is the projection returned by get_file_content.
type FileContent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mimeType"`
	ExportedAs string `json:"exportedAs,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"`
	Content    string `json:"content"`
}

func summarize(rec *drive.FileRecord) FileSummary {
	return FileSummary{
		ID:             rec.ID,
		Name:           rec.Name,
		MimeType:       rec.MimeType,
		ModifiedTime:   formatTime(rec.ModifiedTime),
		ViewedByMeTime: formatTime(rec.ViewedByMeTime),
		WebViewLink:    rec.WebViewLink,
	}
}

func summarizeAll(records []*drive.FileRecord) []FileSummary {
	out := make([]FileSummary, len(records))
	for i, rec := range records {
		out[i] = summarize(rec)
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// SearchResults shapes a search listing.
func SearchResults(query string, records []*drive.FileRecord) *mcp.CallToolResult {
	if len(records) == 0 {
		return jsonResult(map[string]any{
			"message": fmt.Sprintf("No files found matching %q", query),
			"files":   []FileSummary{},
		})
	}
	return jsonResult(map[string]any{
		"count": len(records),
		"files": summarizeAll(records),
	})
}

// RecentResults shapes a recency listing.
func RecentResults(hours int, mode drive.RecentMode, records []*drive.FileRecord) *mcp.CallToolResult {
	if len(records) == 0 {
		return jsonResult(map[string]any{
			"message": fmt.Sprintf("No files %s in the last %d hours", mode, hours),
			"files":   []FileSummary{},
		})
	}
	return jsonResult(map[string]any{
		"hours": hours,
		"mode":  string(mode),
		"count": len(records),
		"files": summarizeAll(records),
	})
}

// FolderListing shapes a folder's contents, folders first the way the Drive
// UI presents them.
func FolderListing(folderID string, records []*drive.FileRecord) *mcp.CallToolResult {
	folders := []FileSummary{}
	files := []FileSummary{}
	for _, rec := range records {
		if rec.IsFolder() {
			folders = append(folders, summarize(rec))
		} else {
			files = append(files, summarize(rec))
		}
	}

	body := map[string]any{
		"folderId":    folderID,
		"folderCount": len(folders),
		"fileCount":   len(files),
		"folders":     folders,
		"files":       files,
	}
	if len(records) == 0 {
		body["message"] = "The folder is empty"
	}
	return jsonResult(body)
}

// Metadata shapes a single file's metadata.
func Metadata(rec *drive.FileRecord) *mcp.CallToolResult {
	meta := FileMetadata{
		ID:           rec.ID,
		Name:         rec.Name,
		MimeType:     rec.MimeType,
		Size:         rec.Size,
		CreatedTime:  formatTime(rec.CreatedTime),
		ModifiedTime: formatTime(rec.ModifiedTime),
		WebViewLink:  rec.WebViewLink,
		Parents:      rec.Parents,
		Shared:       rec.Shared,
	}
	for _, o := range rec.Owners {
		name := o.DisplayName
		if name == "" {
			name = o.EmailAddress
		}
		meta.Owners = append(meta.Owners, name)
	}
	return jsonResult(meta)
}

// ContentResult shapes retrieved file content, truncating overlong text with
// an explicit marker.
func ContentResult(content *drive.Content) *mcp.CallToolResult {
	text, truncated := TruncateText(content.Text, MaxTextBytes)
	return jsonResult(FileContent{
		ID:         content.Record.ID,
		Name:       content.Record.Name,
		MimeType:   content.Record.MimeType,
		ExportedAs: content.ExportedAs,
		Truncated:  truncated,
		Content:    text,
	})
}

// ErrorResult turns any failure into the structured error envelope: the
// error flag set and a single text block of the form "kind: message". The
// kind tag lets the assistant on the other end explain the failure without
// inspecting internals.
func ErrorResult(err error) *mcp.CallToolResult {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return mcp.NewToolResultError(fe.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", fault.KindRemoteServerError, err))
}

// Errorf builds an error envelope directly from a kind and message.
func Errorf(kind fault.Kind, formatStr string, args ...any) *mcp.CallToolResult {
	return ErrorResult(fault.Newf(kind, formatStr, args...))
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: failed to encode result: %v", fault.KindRemoteServerError, err))
	}
	return mcp.NewToolResultText(string(data))
}
