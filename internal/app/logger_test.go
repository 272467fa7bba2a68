package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/xwstats/internal/config"
	"github.com/heartmarshall/xwstats/pkg/ctxutil"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("test message", slog.String("grid", "mini.txt"))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce valid JSON: %v", err)
	}
	if m["grid"] != "mini.txt" {
		t.Errorf("grid = %v, want mini.txt", m["grid"])
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source")
	}
}

func TestNewLogger_TextSourceOnlyAtDebug(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer

	NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &debugBuf).Info("hello")
	NewLogger(config.LogConfig{Level: "info", Format: "text"}, &infoBuf).Info("hello")

	if !strings.Contains(debugBuf.String(), "source=") {
		t.Error("text format at debug level should include source")
	}
	if strings.Contains(infoBuf.String(), "source=") {
		t.Error("text format at info level should not include source")
	}
}

func TestNewLogger_SetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(config.LogConfig{Level: tt.level, Format: "text"}, &buf)

			logger.Log(context.TODO(), tt.wantSlog, "should appear")
			if buf.Len() == 0 {
				t.Errorf("expected log output at level %v", tt.wantSlog)
			}

			buf.Reset()
			belowLevel := tt.wantSlog - 1
			logger.Log(context.TODO(), belowLevel, "should be suppressed")
			if buf.Len() != 0 {
				t.Errorf("level %v should suppress level %v, but got output: %s",
					tt.wantSlog, belowLevel, buf.String())
			}
		})
	}
}

func TestNewLogger_ContextIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	id := uuid.New()
	ctx := ctxutil.WithCommand(ctxutil.WithRunID(context.Background(), id), "analyze")
	logger.With("service", "analysis").InfoContext(ctx, "analysis complete")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["run_id"] != id.String() {
		t.Errorf("run_id = %v, want %s", m["run_id"], id)
	}
	if m["command"] != "analyze" {
		t.Errorf("command = %v, want analyze", m["command"])
	}
	if m["service"] != "analysis" {
		t.Errorf("service = %v, want analysis", m["service"])
	}

	buf.Reset()
	logger.Info("no context")
	if strings.Contains(buf.String(), "run_id") {
		t.Error("records without a run ID should not carry one")
	}
}
