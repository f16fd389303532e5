package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestDisabledProviderIsInert(t *testing.T) {
	provider, err := NewProvider(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if provider.Enabled() {
		t.Error("Expected the default config to leave metrics disabled")
	}
	if provider.Metrics() != nil {
		t.Error("Expected nil metrics when disabled")
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestEnabledProviderRecords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ServiceVersion = "test"

	provider, err := NewProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer provider.Shutdown(context.Background())

	if !provider.Enabled() {
		t.Fatal("Expected provider to be enabled")
	}
	m := provider.Metrics()
	if m == nil {
		t.Fatal("Expected metrics when enabled")
	}

	ctx := context.Background()
	m.RecordToolInvocation(ctx, "search_drive", StatusSuccess, 25*time.Millisecond)
	m.RecordToolInvocation(ctx, "get_file_content", StatusError, 10*time.Millisecond)
	m.RecordDriveOperation(ctx, "list files", StatusSuccess, 40*time.Millisecond)
	m.RecordTokenRefresh(ctx, StatusSuccess)
	m.RecordTokenRefresh(ctx, StatusError)
}
