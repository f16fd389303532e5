package drive

import (
	"context"
	"testing"

	"github.com/finnvale/drivescout/internal/fault"
)

func TestRetrievalStrategy(t *testing.T) {
	tests := []struct {
		name         string
		mimeType     string
		expected     Strategy
		expectedMime string
	}{
		{
			name:         "google document exports as plain text",
			mimeType:     "application/vnd.google-apps.document",
			expected:     StrategyExport,
			expectedMime: "text/plain",
		},
		{
			name:         "google spreadsheet exports as csv",
			mimeType:     "application/vnd.google-apps.spreadsheet",
			expected:     StrategyExport,
			expectedMime: "text/csv",
		},
		{
			name:         "google presentation exports as plain text",
			mimeType:     "application/vnd.google-apps.presentation",
			expected:     StrategyExport,
			expectedMime: "text/plain",
		},
		{
			name:     "plain text downloads",
			mimeType: "text/plain",
			expected: StrategyDownload,
		},
		{
			name:     "markdown downloads",
			mimeType: "text/markdown",
			expected: StrategyDownload,
		},
		{
			name:     "json downloads",
			mimeType: "application/json",
			expected: StrategyDownload,
		},
		{
			name:     "yaml downloads",
			mimeType: "application/x-yaml",
			expected: StrategyDownload,
		},
		{
			name:     "google drawing is unsupported",
			mimeType: "application/vnd.google-apps.drawing",
			expected: StrategyUnsupported,
		},
		{
			name:     "pdf is unsupported",
			mimeType: "application/pdf",
			expected: StrategyUnsupported,
		},
		{
			name:     "image is unsupported",
			mimeType: "image/png",
			expected: StrategyUnsupported,
		},
		{
			name:     "folder is unsupported",
			mimeType: FolderMimeType,
			expected: StrategyUnsupported,
		},
		{
			name:     "unknown type is unsupported",
			mimeType: "application/octet-stream",
			expected: StrategyUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, mime := RetrievalStrategy(tt.mimeType)
			if strategy != tt.expected {
				t.Errorf("RetrievalStrategy(%q) = %v, expected %v", tt.mimeType, strategy, tt.expected)
			}
			if mime != tt.expectedMime {
				t.Errorf("RetrievalStrategy(%q) mime = %q, expected %q", tt.mimeType, mime, tt.expectedMime)
			}
		})
	}
}

func TestRetrieverFetchDownload(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"notes": {ID: "notes", Name: "notes.txt", MimeType: "text/plain", Size: 11},
		},
		downloads: map[string][]byte{"notes": []byte("hello world")},
	}

	content, err := NewRetriever(api).Fetch(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.Text != "hello world" {
		t.Errorf("Expected text 'hello world', got %q", content.Text)
	}
	if content.ExportedAs != "" {
		t.Errorf("Expected no export MIME for a raw download, got %q", content.ExportedAs)
	}
	if content.Record.Name != "notes.txt" {
		t.Errorf("Expected record metadata alongside content, got %+v", content.Record)
	}
}

func TestRetrieverFetchExportsNativeDocument(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"doc": {ID: "doc", Name: "Notes", MimeType: "application/vnd.google-apps.document"},
		},
		exports: map[string][]byte{"doc": []byte("exported body")},
	}

	content, err := NewRetriever(api).Fetch(context.Background(), "doc")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.Text != "exported body" {
		t.Errorf("Expected exported text, got %q", content.Text)
	}
	if content.ExportedAs != "text/plain" {
		t.Errorf("Expected export MIME text/plain, got %q", content.ExportedAs)
	}
	if len(api.exportMimes) != 1 || api.exportMimes[0] != "text/plain" {
		t.Errorf("Expected one export call with text/plain, got %v", api.exportMimes)
	}
}

func TestRetrieverFetchSpreadsheetExportsCSV(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"sheet": {ID: "sheet", Name: "Budget", MimeType: "application/vnd.google-apps.spreadsheet"},
		},
		exports: map[string][]byte{"sheet": []byte("a,b\n1,2\n")},
	}

	content, err := NewRetriever(api).Fetch(context.Background(), "sheet")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.ExportedAs != "text/csv" {
		t.Errorf("Expected export MIME text/csv, got %q", content.ExportedAs)
	}
}

func TestRetrieverFetchUnsupportedType(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"pic": {ID: "pic", Name: "photo.png", MimeType: "image/png", Size: 100},
		},
	}

	_, err := NewRetriever(api).Fetch(context.Background(), "pic")
	if err == nil {
		t.Fatal("Expected error for unsupported type")
	}
	if fault.KindOf(err) != fault.KindUnsupportedContentType {
		t.Errorf("Expected unsupported_content_type fault, got %v", fault.KindOf(err))
	}
}

func TestRetrieverFetchDeclaredSizeTooLarge(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"big": {ID: "big", Name: "big.txt", MimeType: "text/plain", Size: MaxContentBytes + 1},
		},
		downloads: map[string][]byte{"big": []byte("should not be fetched")},
	}

	_, err := NewRetriever(api).Fetch(context.Background(), "big")
	if err == nil {
		t.Fatal("Expected error for oversized file")
	}
	if fault.KindOf(err) != fault.KindContentTooLarge {
		t.Errorf("Expected content_too_large fault, got %v", fault.KindOf(err))
	}
}

func TestRetrieverFetchBinaryContentFails(t *testing.T) {
	api := &fakeAPI{
		files: map[string]*FileRecord{
			"lying": {ID: "lying", Name: "lying.txt", MimeType: "text/plain", Size: 4},
		},
		downloads: map[string][]byte{"lying": {0xff, 0xfe, 0x00, 0x01}},
	}

	_, err := NewRetriever(api).Fetch(context.Background(), "lying")
	if err == nil {
		t.Fatal("Expected error for invalid UTF-8 content")
	}
	if fault.KindOf(err) != fault.KindDecodeFailure {
		t.Errorf("Expected decode_failure fault, got %v", fault.KindOf(err))
	}
}

func TestRetrieverFetchNotFound(t *testing.T) {
	api := &fakeAPI{files: map[string]*FileRecord{}}

	_, err := NewRetriever(api).Fetch(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if fault.KindOf(err) != fault.KindNotFound {
		t.Errorf("Expected not_found fault, got %v", fault.KindOf(err))
	}
}
