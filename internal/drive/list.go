package drive

import "context"

// maxPagesPerCall caps how many pages a single tool call may fetch. The
// cursor is provider-controlled, so without a cap a pathological listing
// could page forever; ten pages of MaxPageSize comfortably exceeds what any
// tool call is allowed to return.
const maxPagesPerCall = 10

// CollectFiles pages through a listing until limit records are gathered, the
// provider signals no further pages (absent cursor), or the page cap is hit.
// Records are deduplicated by ID across pages: Drive may repeat an item on a
// page boundary when the listing shifts under the cursor.
func CollectFiles(ctx context.Context, api API, opts ListOptions, limit int) ([]*FileRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	opts.PageSize = min(limit, MaxPageSize)

	var out []*FileRecord
	seen := make(map[string]bool)

	for page := 0; page < maxPagesPerCall; page++ {
		records, next, err := api.ListPage(ctx, opts)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			out = append(out, rec)
			if len(out) == limit {
				return out, nil
			}
		}
		if next == "" {
			break
		}
		opts.PageToken = next
	}
	return out, nil
}
