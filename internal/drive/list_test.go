package drive

import (
	"context"
	"fmt"
	"testing"

	"github.com/finnvale/drivescout/internal/fault"
)

// fakeAPI serves scripted pages and canned file content for tests.
type fakeAPI struct {
	pages     [][]*FileRecord
	listErr   error
	listCalls int

	files       map[string]*FileRecord
	downloads   map[string][]byte
	exports     map[string][]byte
	exportMimes []string
}

func (f *fakeAPI) ListPage(ctx context.Context, opts ListOptions) ([]*FileRecord, string, error) {
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	page := 0
	if opts.PageToken != "" {
		fmt.Sscanf(opts.PageToken, "page-%d", &page)
	}
	f.listCalls++
	if page >= len(f.pages) {
		return nil, "", nil
	}
	next := ""
	if page+1 < len(f.pages) {
		next = fmt.Sprintf("page-%d", page+1)
	}
	return f.pages[page], next, nil
}

func (f *fakeAPI) GetFile(ctx context.Context, fileID string) (*FileRecord, error) {
	rec, ok := f.files[fileID]
	if !ok {
		return nil, fault.Newf(fault.KindNotFound, "get file %s: file not found", fileID)
	}
	return rec, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, fileID string, limit int64) ([]byte, error) {
	data, ok := f.downloads[fileID]
	if !ok {
		return nil, fault.Newf(fault.KindNotFound, "download file %s: file not found", fileID)
	}
	if int64(len(data)) > limit {
		return nil, fault.Newf(fault.KindContentTooLarge, "file %s exceeds the %d byte content limit", fileID, limit)
	}
	return data, nil
}

func (f *fakeAPI) ExportFile(ctx context.Context, fileID, mimeType string, limit int64) ([]byte, error) {
	f.exportMimes = append(f.exportMimes, mimeType)
	data, ok := f.exports[fileID]
	if !ok {
		return nil, fault.Newf(fault.KindNotFound, "export file %s: file not found", fileID)
	}
	if int64(len(data)) > limit {
		return nil, fault.Newf(fault.KindContentTooLarge, "file %s exceeds the %d byte content limit", fileID, limit)
	}
	return data, nil
}

func records(ids ...string) []*FileRecord {
	out := make([]*FileRecord, len(ids))
	for i, id := range ids {
		out[i] = &FileRecord{ID: id, Name: "file-" + id}
	}
	return out
}

func TestCollectFilesSinglePage(t *testing.T) {
	api := &fakeAPI{pages: [][]*FileRecord{records("a", "b", "c")}}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 10)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 records, got %d", len(got))
	}
}

func TestCollectFilesSpansPages(t *testing.T) {
	api := &fakeAPI{pages: [][]*FileRecord{
		records("a", "b"),
		records("c", "d"),
		records("e"),
	}}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 10)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(got))
	}
	// Page order is preserved in the combined result.
	expected := []string{"a", "b", "c", "d", "e"}
	for i, rec := range got {
		if rec.ID != expected[i] {
			t.Errorf("Record %d: expected %s, got %s", i, expected[i], rec.ID)
		}
	}
}

func TestCollectFilesStopsAtLimit(t *testing.T) {
	api := &fakeAPI{pages: [][]*FileRecord{
		records("a", "b", "c"),
		records("d", "e", "f"),
	}}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 4)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Expected 4 records, got %d", len(got))
	}
}

func TestCollectFilesDeduplicatesAcrossPages(t *testing.T) {
	// A listing shifting under the cursor can repeat an item on the next
	// page boundary.
	api := &fakeAPI{pages: [][]*FileRecord{
		records("a", "b"),
		records("b", "c"),
	}}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 10)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 unique records, got %d", len(got))
	}
	expected := []string{"a", "b", "c"}
	for i, rec := range got {
		if rec.ID != expected[i] {
			t.Errorf("Record %d: expected %s, got %s", i, expected[i], rec.ID)
		}
	}
}

func TestCollectFilesPageCap(t *testing.T) {
	// More pages than the cap allows; each page carries one record.
	pages := make([][]*FileRecord, maxPagesPerCall+5)
	for i := range pages {
		pages[i] = records(fmt.Sprintf("id-%d", i))
	}
	api := &fakeAPI{pages: pages}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 1000)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if api.listCalls != maxPagesPerCall {
		t.Errorf("Expected %d page fetches, got %d", maxPagesPerCall, api.listCalls)
	}
	if len(got) != maxPagesPerCall {
		t.Errorf("Expected %d records, got %d", maxPagesPerCall, len(got))
	}
}

func TestCollectFilesZeroLimit(t *testing.T) {
	api := &fakeAPI{pages: [][]*FileRecord{records("a")}}

	got, err := CollectFiles(context.Background(), api, ListOptions{}, 0)
	if err != nil {
		t.Fatalf("CollectFiles() error = %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil result for zero limit, got %v", got)
	}
	if api.listCalls != 0 {
		t.Errorf("Expected no page fetches for zero limit, got %d", api.listCalls)
	}
}

func TestCollectFilesPropagatesError(t *testing.T) {
	api := &fakeAPI{listErr: fault.New(fault.KindRateLimited, "list files: rate limited")}

	_, err := CollectFiles(context.Background(), api, ListOptions{}, 10)
	if err == nil {
		t.Fatal("Expected error")
	}
	if fault.KindOf(err) != fault.KindRateLimited {
		t.Errorf("Expected rate_limited fault, got %v", fault.KindOf(err))
	}
}
