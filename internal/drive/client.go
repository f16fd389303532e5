package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/finnvale/drivescout/internal/fault"
)

const (
	// maxRetryAttempts bounds how often a rate-limited call is reissued.
	// Rate limiting is the only remote failure that is retried at all.
	maxRetryAttempts = 4

	// retryInitialInterval is the first backoff delay; it doubles per
	// attempt.
	retryInitialInterval = 500 * time.Millisecond

	listFields = "nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime, viewedByMeTime, webViewLink, parents, shared)"
	getFields  = "id, name, mimeType, size, createdTime, modifiedTime, viewedByMeTime, webViewLink, parents, owners, shared"
)

// API is the narrow Drive surface the tool layer depends on. Production code
// uses *Client; tests substitute fakes.
type API interface {
	// ListPage fetches one page of a listing or search.
	ListPage(ctx context.Context, opts ListOptions) ([]*FileRecord, string, error)

	// GetFile fetches a single file's metadata.
	GetFile(ctx context.Context, fileID string) (*FileRecord, error)

	// DownloadFile fetches a file's raw bytes. Reads at most limit bytes and
	// fails with a content_too_large fault when the content exceeds it.
	DownloadFile(ctx context.Context, fileID string, limit int64) ([]byte, error)

	// ExportFile fetches a Google-native document converted to the given
	// MIME type, with the same size limit behavior as DownloadFile.
	ExportFile(ctx context.Context, fileID, mimeType string, limit int64) ([]byte, error)
}

// Client implements API against the Drive v3 service.
type Client struct {
	service *drive.Service
}

// NewClient builds a Drive client on top of an authorized HTTP client
// obtained from the credential manager.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListPage fetches one page of a listing or search.
func (c *Client) ListPage(ctx context.Context, opts ListOptions) ([]*FileRecord, string, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	list, err := retryRateLimited(ctx, func() (*drive.FileList, error) {
		call := c.service.Files.List().
			Context(ctx).
			Q(opts.Query).
			PageSize(int64(pageSize)).
			Fields(listFields)
		if opts.OrderBy != "" {
			call = call.OrderBy(opts.OrderBy)
		}
		if opts.PageToken != "" {
			call = call.PageToken(opts.PageToken)
		}
		return call.Do()
	})
	if err != nil {
		return nil, "", mapError("list files", err)
	}

	records := make([]*FileRecord, len(list.Files))
	for i, f := range list.Files {
		records[i] = convertFile(f)
	}
	return records, list.NextPageToken, nil
}

// GetFile fetches a single file's metadata.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileRecord, error) {
	file, err := retryRateLimited(ctx, func() (*drive.File, error) {
		return c.service.Files.Get(fileID).
			Context(ctx).
			Fields(getFields).
			Do()
	})
	if err != nil {
		return nil, mapError(fmt.Sprintf("get file %s", fileID), err)
	}
	return convertFile(file), nil
}

// DownloadFile fetches a file's raw bytes.
func (c *Client) DownloadFile(ctx context.Context, fileID string, limit int64) ([]byte, error) {
	resp, err := retryRateLimited(ctx, func() (*http.Response, error) {
		return c.service.Files.Get(fileID).Context(ctx).Download()
	})
	if err != nil {
		return nil, mapError(fmt.Sprintf("download file %s", fileID), err)
	}
	defer resp.Body.Close()

	return readLimited(resp.Body, fileID, limit)
}

// ExportFile fetches a Google-native document converted to the given MIME
// type.
func (c *Client) ExportFile(ctx context.Context, fileID, mimeType string, limit int64) ([]byte, error) {
	resp, err := retryRateLimited(ctx, func() (*http.Response, error) {
		return c.service.Files.Export(fileID, mimeType).Context(ctx).Download()
	})
	if err != nil {
		return nil, mapError(fmt.Sprintf("export file %s", fileID), err)
	}
	defer resp.Body.Close()

	return readLimited(resp.Body, fileID, limit)
}

// readLimited reads at most limit bytes, failing rather than truncating when
// the content is larger. Exports have no declared size up front, so the cap
// can only be enforced while reading.
func readLimited(r io.Reader, fileID string, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, mapError(fmt.Sprintf("read content of %s", fileID), err)
	}
	if int64(len(data)) > limit {
		return nil, fault.Newf(fault.KindContentTooLarge,
			"file %s exceeds the %d byte content limit; use get_file_metadata instead", fileID, limit)
	}
	return data, nil
}

// retryRateLimited runs op, reissuing it with exponential backoff only when
// the provider signals rate limiting. Every other failure is permanent.
func retryRateLimited[T any](ctx context.Context, op func() (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !isRateLimited(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(maxRetryAttempts))
}

// convertFile converts a Drive API file to a FileRecord snapshot.
func convertFile(f *drive.File) *FileRecord {
	rec := &FileRecord{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
		Shared:      f.Shared,
	}

	rec.CreatedTime = parseTime(f.CreatedTime)
	rec.ModifiedTime = parseTime(f.ModifiedTime)
	rec.ViewedByMeTime = parseTime(f.ViewedByMeTime)

	for _, owner := range f.Owners {
		rec.Owners = append(rec.Owners, Owner{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}
	return rec
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
