package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	// Pre-create the namespace directory so the write is a file event.
	if err := os.MkdirAll(filepath.Join(base, string(NamespaceJournal)), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(JournalKey("2024-02-19"), record{Date: "2024-02-19"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key != "journal:2024-02-19" {
				t.Fatalf("expected key journal:2024-02-19, got %q", evt.Key)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestKeyForPathIgnoresNonRecords(t *testing.T) {
	base := t.TempDir()
	p := &persistence{basePath: base}
	if got := p.keyForPath(filepath.Join(base, "zenday.log")); got != "" {
		t.Fatalf("expected log file to be ignored, got %q", got)
	}
	if got := p.keyForPath(filepath.Join(base, "profile")); got != "profile" {
		t.Fatalf("expected profile key, got %q", got)
	}
	if got := p.keyForPath(filepath.Join(base, "almanac", "2024-02-19")); got != "almanac:2024-02-19" {
		t.Fatalf("expected almanac key, got %q", got)
	}
}

func TestSQLiteWatchClosesWithContext(t *testing.T) {
	p, err := openSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected no events from sqlite watch")
		}
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
