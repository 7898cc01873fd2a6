// Package store persists profile, journal, almanac and analysis records as
// JSON blobs under namespaced string keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Persistence is a synchronous, last-write-wins key-value store. A missing
// key is reported as absent, not as an error.
type Persistence interface {
	Save(key string, value any) error
	Load(key string, into any) (bool, error)
	Delete(key string) error
	Keys(ctx context.Context, prefix string) []string
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Namespace groups keys by record type.
type Namespace string

const (
	NamespaceProfile  Namespace = "profile"
	NamespaceJournal  Namespace = "journal"
	NamespaceAlmanac  Namespace = "almanac"
	NamespaceAnalysis Namespace = "analysis"
)

const keySeparator = ":"

var (
	ErrUnknownBackend = errors.New("store: unknown backend")
	errInvalidKey     = errors.New("store: invalid key")
)

func ProfileKey() string { return string(NamespaceProfile) }

func JournalKey(day string) string { return dated(NamespaceJournal, day) }

func AlmanacKey(day string) string { return dated(NamespaceAlmanac, day) }

func AnalysisKey(day string) string { return dated(NamespaceAnalysis, day) }

func dated(ns Namespace, day string) string {
	return string(ns) + keySeparator + day
}

// SplitKey reverses the key builders. Day is empty for the profile key.
func SplitKey(key string) (Namespace, string, error) {
	if key == string(NamespaceProfile) {
		return NamespaceProfile, "", nil
	}
	ns, day, ok := strings.Cut(key, keySeparator)
	if !ok || day == "" || strings.Contains(day, keySeparator) {
		return "", "", fmt.Errorf("%w: %q", errInvalidKey, key)
	}
	switch Namespace(ns) {
	case NamespaceJournal, NamespaceAlmanac, NamespaceAnalysis:
		return Namespace(ns), day, nil
	}
	return "", "", fmt.Errorf("%w: %q", errInvalidKey, key)
}

// Load opens the backend named by cfg, reading the config file when cfg is nil.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}
	switch cfg.BackendName() {
	case "", BackendDiskv:
		return openDiskv(cfg.BasePath())
	case BackendSQLite:
		return openSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.BackendName())
	}
}
