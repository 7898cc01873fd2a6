package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	sqliteFile   = "zenday.db"
	sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);`
)

type sqlitePersistence struct {
	db *sql.DB
}

// openSQLite stores every record in a single kv table inside basePath. A
// basePath of ":memory:" opens a private in-memory database.
func openSQLite(basePath string) (*sqlitePersistence, error) {
	dsn := basePath
	if basePath != ":memory:" {
		if basePath == "" {
			return nil, errors.New("store: base path unknown")
		}
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
		params := url.Values{}
		params.Add("_journal_mode", "WAL")
		params.Add("_synchronous", "NORMAL")
		dsn = filepath.Join(basePath, sqliteFile) + "?" + params.Encode()
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", dsn, err)
	}
	if basePath == ":memory:" {
		// Each new connection to :memory: is a fresh database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping sqlite %q: %w", dsn, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &sqlitePersistence{db: db}, nil
}

func (s *sqlitePersistence) Save(key string, value any) error {
	if _, _, err := SplitKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()`, key, data)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *sqlitePersistence) Load(key string, into any) (bool, error) {
	if _, _, err := SplitKey(key); err != nil {
		return false, err
	}
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *sqlitePersistence) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (s *sqlitePersistence) Keys(ctx context.Context, prefix string) []string {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: list keys: %v\n", err)
		return nil
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			fmt.Fprintf(os.Stderr, "store: list keys: %v\n", err)
			return keys
		}
		keys = append(keys, key)
	}
	return keys
}

// Watch is not supported for SQLite; the channel closes with ctx and never
// carries events.
func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (s *sqlitePersistence) Close() error {
	return s.db.Close()
}
