// Package memory is an in-process Store used by tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/maloquacious/dogcenter/internal/store"
)

type memStore struct {
	mu     sync.RWMutex
	open   bool
	seeded bool
	nextID int64
	dogs   []store.DogRecord
}

// New returns an empty, closed in-memory store.
func New() store.Store {
	return &memStore{nextID: 1}
}

func (m *memStore) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

func (m *memStore) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return store.ErrNotOpen
	}
	if m.seeded {
		return nil
	}
	for _, seed := range store.Seeds {
		m.insert(seed.Name, seed.FeedingTime)
	}
	m.seeded = true
	return nil
}

func (m *memStore) List(ctx context.Context) ([]store.DogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.open {
		return nil, store.ErrNotOpen
	}
	out := make([]store.DogRecord, len(m.dogs))
	copy(out, m.dogs)
	return out, nil
}

func (m *memStore) Add(ctx context.Context, name, feedingTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return store.ErrNotOpen
	}
	m.insert(name, feedingTime)
	return nil
}

func (m *memStore) Update(ctx context.Context, id int64, name, feedingTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return store.ErrNotOpen
	}
	for i := range m.dogs {
		if m.dogs[i].ID == id {
			m.dogs[i].Name = name
			m.dogs[i].FeedingTime = feedingTime
			return nil
		}
	}
	return nil
}

func (m *memStore) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return store.ErrNotOpen
	}
	for i := range m.dogs {
		if m.dogs[i].ID == id {
			m.dogs = append(m.dogs[:i], m.dogs[i+1:]...)
			return nil
		}
	}
	return nil
}

// insert mirrors AUTOINCREMENT: ids are never reused. Caller holds mu.
func (m *memStore) insert(name, feedingTime string) {
	m.dogs = append(m.dogs, store.DogRecord{ID: m.nextID, Name: name, FeedingTime: feedingTime})
	m.nextID++
}
