package drive

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/finnvale/drivescout/internal/fault"
)

// MaxContentBytes caps how much file content a single get_file_content call
// will fetch. Larger files fail with content_too_large rather than being
// silently truncated, so the caller can fall back to metadata. 5 MiB is far
// beyond what an assistant context can use, while keeping worst-case
// transfer time bounded.
const MaxContentBytes = 5 << 20

// Strategy is how a file's content is turned into text.
type Strategy int

const (
	// StrategyExport asks Drive to convert a Google-native document to a
	// plain representation; the native format is not directly readable.
	StrategyExport Strategy = iota
	// StrategyDownload fetches raw bytes and decodes them as UTF-8 text.
	StrategyDownload
	// StrategyUnsupported means the file has no text representation.
	StrategyUnsupported
)

// exportMimeTypes maps Google-native document types to the plain
// representation requested from the export endpoint. Drawings are absent on
// purpose: their only export formats are images.
var exportMimeTypes = map[string]string{
	"application/vnd.google-apps.document":     "text/plain",
	"application/vnd.google-apps.spreadsheet":  "text/csv",
	"application/vnd.google-apps.presentation": "text/plain",
}

// textMimeTypes are non-text/* MIME types whose raw bytes are still text.
var textMimeTypes = map[string]bool{
	"application/json":         true,
	"application/xml":          true,
	"application/yaml":         true,
	"application/x-yaml":       true,
	"application/javascript":   true,
	"application/x-sh":         true,
	"application/x-javascript": true,
	"application/sql":          true,
}

// RetrievalStrategy maps a content-type tag to its retrieval strategy. The
// mapping is total: anything not explicitly text-compatible is unsupported,
// never a silent fall-through to binary.
func RetrievalStrategy(mimeType string) (Strategy, string) {
	if exportMime, ok := exportMimeTypes[mimeType]; ok {
		return StrategyExport, exportMime
	}
	if strings.HasPrefix(mimeType, "text/") || textMimeTypes[mimeType] {
		return StrategyDownload, ""
	}
	return StrategyUnsupported, ""
}

// Content is the text content of a file together with the metadata snapshot
// it was resolved from.
type Content struct {
	Record *FileRecord
	Text   string
	// ExportedAs is the representation a native document was exported to;
	// empty for raw downloads.
	ExportedAs string
}

// Retriever resolves a file ID to text content: metadata first, then the
// strategy the content type dictates. There is no blind-download path.
type Retriever struct {
	api      API
	maxBytes int64
}

// NewRetriever creates a content retriever with the default size cap.
func NewRetriever(api API) *Retriever {
	return &Retriever{api: api, maxBytes: MaxContentBytes}
}

// Fetch resolves fileID to readable text.
func (r *Retriever) Fetch(ctx context.Context, fileID string) (*Content, error) {
	rec, err := r.api.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	strategy, exportMime := RetrievalStrategy(rec.MimeType)
	if strategy == StrategyUnsupported {
		return nil, fault.Newf(fault.KindUnsupportedContentType,
			"file %q (%s) has no text representation; use get_file_metadata to inspect it", rec.Name, rec.MimeType)
	}

	// Declared sizes let oversized downloads fail before any transfer.
	// Native documents report no size; the limit is enforced while reading.
	if rec.Size > r.maxBytes {
		return nil, fault.Newf(fault.KindContentTooLarge,
			"file %q is %d bytes, above the %d byte content limit; use get_file_metadata instead", rec.Name, rec.Size, r.maxBytes)
	}

	var data []byte
	switch strategy {
	case StrategyExport:
		data, err = r.api.ExportFile(ctx, fileID, exportMime, r.maxBytes)
	case StrategyDownload:
		data, err = r.api.DownloadFile(ctx, fileID, r.maxBytes)
	}
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, fault.Newf(fault.KindDecodeFailure,
			"file %q is tagged %s but its content is not valid text", rec.Name, rec.MimeType)
	}

	return &Content{Record: rec, Text: string(data), ExportedAs: exportMime}, nil
}
