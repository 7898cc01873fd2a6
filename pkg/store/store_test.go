package store

import (
	"context"
	"errors"
	"testing"
)

type testConfig struct {
	path    string
	backend string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) BackendName() string {
	return t.backend
}

type record struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		key  string
		ns   Namespace
		day  string
		want string
	}{
		{key: ProfileKey(), ns: NamespaceProfile, want: "profile"},
		{key: JournalKey("2024-02-19"), ns: NamespaceJournal, day: "2024-02-19", want: "journal:2024-02-19"},
		{key: AlmanacKey("2024-02-19"), ns: NamespaceAlmanac, day: "2024-02-19", want: "almanac:2024-02-19"},
		{key: AnalysisKey("2024-02-19"), ns: NamespaceAnalysis, day: "2024-02-19", want: "analysis:2024-02-19"},
	}
	for _, tt := range tests {
		if tt.key != tt.want {
			t.Fatalf("expected key %q, got %q", tt.want, tt.key)
		}
		ns, day, err := SplitKey(tt.key)
		if err != nil {
			t.Fatalf("SplitKey(%q): %v", tt.key, err)
		}
		if ns != tt.ns || day != tt.day {
			t.Fatalf("SplitKey(%q) = (%s, %s), want (%s, %s)", tt.key, ns, day, tt.ns, tt.day)
		}
	}
}

func TestSplitKeyRejectsUnknown(t *testing.T) {
	for _, key := range []string{"", "zenday.log", "journal", "journal:", "weather:2024-02-19", "journal:a:b"} {
		if _, _, err := SplitKey(key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	_, err := Load(testConfig{path: t.TempDir(), backend: "redis"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

// exercisePersistence runs the shared contract against a backend.
func exercisePersistence(t *testing.T, p Persistence) {
	t.Helper()
	ctx := context.Background()

	var got record
	found, err := p.Load(AnalysisKey("2024-02-19"), &got)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if found {
		t.Fatalf("expected missing key to be absent")
	}

	first := record{Date: "2024-02-19", Score: 70}
	if err := p.Save(AnalysisKey("2024-02-19"), first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := record{Date: "2024-02-19", Score: 85}
	if err := p.Save(AnalysisKey("2024-02-19"), second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	found, err = p.Load(AnalysisKey("2024-02-19"), &got)
	if err != nil || !found {
		t.Fatalf("load after save: found=%v err=%v", found, err)
	}
	if got != second {
		t.Fatalf("expected last write to win, got %+v", got)
	}

	if err := p.Save(ProfileKey(), map[string]string{"name": "Alex"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := p.Save(JournalKey("2024-02-18"), record{Date: "2024-02-18"}); err != nil {
		t.Fatalf("save journal: %v", err)
	}
	if err := p.Save(JournalKey("2024-02-19"), record{Date: "2024-02-19"}); err != nil {
		t.Fatalf("save journal: %v", err)
	}

	keys := p.Keys(ctx, "journal:")
	if len(keys) != 2 || keys[0] != "journal:2024-02-18" || keys[1] != "journal:2024-02-19" {
		t.Fatalf("unexpected journal keys %v", keys)
	}
	if all := p.Keys(ctx, ""); len(all) != 4 {
		t.Fatalf("expected 4 keys in total, got %v", all)
	}

	if err := p.Delete(JournalKey("2024-02-18")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if keys := p.Keys(ctx, "journal:"); len(keys) != 1 {
		t.Fatalf("expected 1 journal key after delete, got %v", keys)
	}

	if err := p.Save("weather:2024-02-19", first); err == nil {
		t.Fatalf("expected invalid key to be rejected")
	}
}

func TestDiskvPersistence(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir(), backend: BackendDiskv})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	defer p.Close()
	exercisePersistence(t, p)
}

func TestSQLitePersistence(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir(), backend: BackendSQLite})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	defer p.Close()
	exercisePersistence(t, p)
}

func TestSQLiteInMemory(t *testing.T) {
	p, err := openSQLite(":memory:")
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	defer p.Close()
	exercisePersistence(t, p)
}
