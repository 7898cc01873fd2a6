package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "zenday.log")
	log, err := New("info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("almanac fallback")
	log.Debug("hidden at info")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "almanac fallback") {
		t.Fatalf("expected info line in log, got %q", data)
	}
	if strings.Contains(string(data), "hidden at info") {
		t.Fatalf("debug line should be filtered at info level")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
