package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"chatty", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := Init(dir, "warn")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("hidden message")
	slog.Warn("visible message")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if strings.Contains(string(data), "hidden message") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(string(data), "visible message") {
		t.Errorf("Expected warn message in log, got %q", data)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if _, err := Init(t.TempDir(), "loud"); err == nil {
		t.Fatal("Expected error for unknown level, got nil")
	}
}
