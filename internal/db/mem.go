package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mithrel/firesale/pkg/api"
)

type memStore struct {
	mu     sync.RWMutex
	byPath map[string]api.RecentDocument
}

func newMemStore() *memStore {
	return &memStore{byPath: make(map[string]api.RecentDocument)}
}

// NewMemStore returns a Store kept entirely in memory.
func NewMemStore() *Store { return &Store{Recent: newMemStore()} }

func (m *memStore) Touch(ctx context.Context, path, digest string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.byPath[path]
	d.Path = path
	d.OpenedAt = at.UTC()
	d.Opens++
	d.Digest = digest
	m.byPath[path] = d
	return nil
}

func (m *memStore) Get(ctx context.Context, path string) (api.RecentDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byPath[path]
	if !ok {
		return api.RecentDocument{}, ErrNotFound
	}
	return d, nil
}

func (m *memStore) List(ctx context.Context, limit int) ([]api.RecentDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.RecentDocument, 0, len(m.byPath))
	for _, d := range m.byPath {
		out = append(out, d)
	}
	sortRecent(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byPath, path)
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPath = make(map[string]api.RecentDocument)
	return nil
}

func (m *memStore) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	list, _ := m.List(ctx, 0)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range list[min(keep, len(list)):] {
		delete(m.byPath, d.Path)
	}
	return nil
}

func sortRecent(docs []api.RecentDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].OpenedAt.Equal(docs[j].OpenedAt) {
			return docs[i].OpenedAt.After(docs[j].OpenedAt)
		}
		return docs[i].Path < docs[j].Path
	})
}
