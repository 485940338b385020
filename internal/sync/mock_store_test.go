package sync

import (
	"context"
	"sort"
	"sync"

	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/store"
)

// mockStore is an in-memory store.Store for export tests.
type mockStore struct {
	mu    sync.Mutex
	items map[string]*model.WorkItem
	rels  map[string]*model.Relationship
}

func newMockStore() *mockStore {
	return &mockStore{
		items: make(map[string]*model.WorkItem),
		rels:  make(map[string]*model.Relationship),
	}
}

func (m *mockStore) CreateWorkItem(_ context.Context, item *model.WorkItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *mockStore) GetWorkItem(_ context.Context, id string) (*model.WorkItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return item, nil
}

func (m *mockStore) ListWorkItems(_ context.Context, limit int) ([]*model.WorkItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*model.WorkItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *mockStore) UpdateWorkItem(_ context.Context, id string, _ model.WorkItemPatch) (*model.WorkItem, error) {
	return m.GetWorkItem(context.Background(), id)
}

func (m *mockStore) DeleteWorkItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *mockStore) SearchWorkItems(_ context.Context, _ string, _ int) ([]*model.WorkItem, error) {
	return nil, nil
}

func (m *mockStore) CreateRelationship(_ context.Context, rel *model.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rels[rel.ID] = rel
	return nil
}

func (m *mockStore) DeleteRelationship(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rels, id)
	return nil
}

func (m *mockStore) ListRelationships(_ context.Context) ([]*model.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rels := make([]*model.Relationship, 0, len(m.rels))
	for _, rel := range m.rels {
		rels = append(rels, rel)
	}
	sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
	return rels, nil
}

func (m *mockStore) Close() error { return nil }
