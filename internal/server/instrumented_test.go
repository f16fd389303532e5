package server

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/finnvale/drivescout/internal/auth"
	"github.com/finnvale/drivescout/internal/drive"
	"github.com/finnvale/drivescout/internal/fault"
	"github.com/finnvale/drivescout/internal/instrumentation"
)

type failingAPI struct{ stubAPI }

func (failingAPI) GetFile(ctx context.Context, fileID string) (*drive.FileRecord, error) {
	return nil, fault.Newf(fault.KindNotFound, "get file %s: file not found", fileID)
}

func TestInstrumentedAPIRecordsDriveOperations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := instrumentation.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	api := newInstrumentedAPI(failingAPI{}, metrics)
	ctx := context.Background()

	if _, _, err := api.ListPage(ctx, drive.ListOptions{}); err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if _, err := api.GetFile(ctx, "missing"); err == nil {
		t.Fatal("Expected GetFile to fail")
	}
	if _, err := api.DownloadFile(ctx, "f1", 100); err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if _, err := api.ExportFile(ctx, "f1", "text/plain", 100); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var total int64
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "drive_api_operations_total" {
				continue
			}
			found = true
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("drive_api_operations_total is %T, expected Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	if !found {
		t.Fatal("Expected drive_api_operations_total to be exported")
	}
	if total != 4 {
		t.Errorf("Expected 4 recorded operations, got %d", total)
	}
}

func TestAuthorizedAPIWrapsClientWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := instrumentation.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	sc := NewServerContext(context.Background(), newManager(t, &auth.Credential{
		AccessToken: "valid",
		Expiry:      time.Now().Add(time.Hour),
	}))
	defer sc.Shutdown()
	sc.SetMetrics(metrics)

	api, err := sc.AuthorizedAPI(context.Background())
	if err != nil {
		t.Fatalf("AuthorizedAPI() error = %v", err)
	}
	if _, ok := api.(*instrumentedAPI); !ok {
		t.Errorf("Expected the Drive client to be wrapped for metrics, got %T", api)
	}
}
