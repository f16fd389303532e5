package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter(&buf, false)

	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected debug output to be suppressed at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("Expected info output to be emitted")
	}
}

func TestSetupWithWriterDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter(&buf, true)

	logger.Debug("detail")
	if !strings.Contains(buf.String(), "detail") {
		t.Error("Expected debug output in debug mode")
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("failed", Err(errors.New("kaboom")))
	if !strings.Contains(buf.String(), "error=kaboom") {
		t.Errorf("Expected error attribute, got %q", buf.String())
	}

	buf.Reset()
	logger.Info("fine", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("Expected no error attribute for nil, got %q", buf.String())
	}
}

func TestAttributeHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("call",
		Tool("search_drive"),
		FileID("f123"),
		Status("success"),
	)

	out := buf.String()
	for _, want := range []string{"tool=search_drive", "file_id=f123", "status=success"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got %q", want, out)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("SanitizeToken(empty) = %q", got)
	}
	got := SanitizeToken("ya29.super-secret-access-token")
	if strings.Contains(got, "secret") {
		t.Errorf("Sanitized token leaks content: %q", got)
	}
	if got != "[token:30 chars]" {
		t.Errorf("SanitizeToken() = %q, expected length-only form", got)
	}
}
