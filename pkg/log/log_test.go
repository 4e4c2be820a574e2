package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/strogo/oneDAL/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
	}

	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToLogLevel_InvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid level name")
		}
	}()
	ToLogLevel("verbose")
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" {
		t.Errorf("LevelWarn.String() = %q", LevelWarn.String())
	}
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("unexpected name for out-of-range level: %q", Level(42).String())
	}
}

func TestErrFmtHandler_AddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.NewCannotOpenFileError("/missing/higgs_2m.csv", "")
	logger.Error("slice load failed", ErrAttr(err))

	var record map[string]interface{}
	if uerr := json.Unmarshal(buf.Bytes(), &record); uerr != nil {
		t.Fatalf("failed to parse log output: %v", uerr)
	}

	stack, ok := record[StacktraceAttrKey].(string)
	if !ok || stack == "" {
		t.Fatal("expected a stacktrace attribute extracted from the error")
	}
	if !strings.Contains(stack, "log_test.go") {
		t.Errorf("stacktrace should point at the raising test file: %s", stack)
	}

	if typeName, _ := record[ErrorTypeKey].(string); typeName != "CannotOpenFileError" {
		t.Errorf("error type attribute = %q, want %q", typeName, "CannotOpenFileError")
	}
}

func TestSlogLogger_WithAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	scoped := logger.With(WorkloadKey, "higgs_2m")
	scoped.Info("slice loaded", RoleKey, "train", RowsKey, 97)

	if !strings.Contains(buf.String(), `"workload.name":"higgs_2m"`) {
		t.Errorf("expected workload field in output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"dataset.role":"train"`) {
		t.Errorf("expected role field in output: %s", buf.String())
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at info level")
	}
}

func TestTestLogger_CaptureAndQuery(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	scoped := logger.With(WorkloadKey, "epsilon_80k")
	scoped.Info("dataset loaded", BlocksKey, 4)
	scoped.Debug("partitioning", RoleKey, "full")

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if !logger.ContainsMessage("dataset loaded") {
		t.Error("expected 'dataset loaded' message")
	}
	if !logger.ContainsField(WorkloadKey, "epsilon_80k") {
		t.Error("expected workload field on captured entries")
	}
	if logger.ContainsField(RoleKey, "train") {
		t.Error("did not expect train role in captured entries")
	}

	logger.Clear()
	if logger.ContainsMessage("dataset loaded") {
		t.Error("Clear should drop captured entries")
	}
}

func TestTestLogger_LevelFiltering(t *testing.T) {
	logger, buf := NewTestLogger(LevelWarn)

	logger.Info("suppressed")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "suppressed") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record should pass at warn level")
	}
}
