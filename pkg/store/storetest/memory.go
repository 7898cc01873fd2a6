// Package storetest provides an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"tableflip.dev/zenday/pkg/store"
)

// Memory keeps JSON-encoded records in a map. Saves are broadcast to every
// active watcher.
type Memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers []chan store.Event

	// FailSave, when set, is returned by every Save.
	FailSave error
	// FailLoad, when set, is returned by every Load.
	FailLoad error
}

var _ store.Persistence = (*Memory)(nil)

func New() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Save(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	for _, w := range m.watchers {
		select {
		case w <- store.Event{Type: store.EventKeyChanged, Key: key}:
		default:
		}
	}
	return nil
}

func (m *Memory) Load(key string, into any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLoad != nil {
		return false, m.FailLoad
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, into)
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key holds a record.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Len reports how many records are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *Memory) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) Close() error { return nil }
