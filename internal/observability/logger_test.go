package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/holosim/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("hidden")
	log.Info("snapshot", zap.Int("step", 1000))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug entry leaked at info level")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", out, err)
	}
	if entry["msg"] != "snapshot" || entry["step"] != float64(1000) {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["logger"] != "holosim" {
		t.Errorf("expected logger name holosim, got %v", entry["logger"])
	}
}

func TestInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWithWriter(config.LoggingConfig{Level: "loud"}, zapcore.AddSync(&buf)); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holosim.log")
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LoggingConfig{Level: "debug", File: path, MaxSizeMB: 1}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("calculated force", zap.Float64("fx", 1e4))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"fx":10000`) {
		t.Errorf("expected fx field in file, got %s", data)
	}
	if !strings.Contains(buf.String(), "calculated force") {
		t.Error("expected console output as well")
	}
}
