package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

func openDiskv(basePath string) (*persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// No read cache: the CLI, TUI and MCP server may share one directory and
	// diskv's cache is per process.
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Save(key string, value any) error {
	if _, _, err := SplitKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Load(key string, into any) (bool, error) {
	if _, _, err := SplitKey(key); err != nil {
		return false, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, into); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (p *persistence) Delete(key string) error {
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys starting with prefix, sorted. Files that do not map
// back to a known key (the log file, editor backups) are skipped.
func (p *persistence) Keys(ctx context.Context, prefix string) []string {
	keys := make([]string, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		if _, _, err := SplitKey(key); err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *persistence) Close() error {
	return nil
}

// keyToPathTransform maps `journal:2024-02-19` to journal/2024-02-19 and
// `profile` to a file at the root.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s%s%s", strings.Join(pathKey.Path, keySeparator), keySeparator, pathKey.FileName)
}
