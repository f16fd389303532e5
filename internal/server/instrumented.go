package server

import (
	"context"
	"time"

	"github.com/finnvale/drivescout/internal/drive"
	"github.com/finnvale/drivescout/internal/instrumentation"
)

// Drive operation names recorded on metrics. A fixed set keeps label
// cardinality bounded; file IDs never become labels.
const (
	opListFiles    = "list_files"
	opGetFile      = "get_file"
	opDownloadFile = "download_file"
	opExportFile   = "export_file"
)

// instrumentedAPI wraps a drive.API, recording an operation metric with
// status and duration for every remote call.
type instrumentedAPI struct {
	api     drive.API
	metrics *instrumentation.Metrics
}

func newInstrumentedAPI(api drive.API, metrics *instrumentation.Metrics) *instrumentedAPI {
	return &instrumentedAPI{api: api, metrics: metrics}
}

func (ia *instrumentedAPI) record(ctx context.Context, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	ia.metrics.RecordDriveOperation(ctx, operation, status, time.Since(start))
}

func (ia *instrumentedAPI) ListPage(ctx context.Context, opts drive.ListOptions) ([]*drive.FileRecord, string, error) {
	start := time.Now()
	records, next, err := ia.api.ListPage(ctx, opts)
	ia.record(ctx, opListFiles, start, err)
	return records, next, err
}

func (ia *instrumentedAPI) GetFile(ctx context.Context, fileID string) (*drive.FileRecord, error) {
	start := time.Now()
	rec, err := ia.api.GetFile(ctx, fileID)
	ia.record(ctx, opGetFile, start, err)
	return rec, err
}

func (ia *instrumentedAPI) DownloadFile(ctx context.Context, fileID string, limit int64) ([]byte, error) {
	start := time.Now()
	data, err := ia.api.DownloadFile(ctx, fileID, limit)
	ia.record(ctx, opDownloadFile, start, err)
	return data, err
}

func (ia *instrumentedAPI) ExportFile(ctx context.Context, fileID, mimeType string, limit int64) ([]byte, error) {
	start := time.Now()
	data, err := ia.api.ExportFile(ctx, fileID, mimeType, limit)
	ia.record(ctx, opExportFile, start, err)
	return data, err
}
