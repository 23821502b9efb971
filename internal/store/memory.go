package store

import (
	"context"
	"sync"

	"fjacquet/asset-tracker/internal/models"
)

// MemoryStore keeps the dataset in memory. It backs tests and the
// demo preview, which never touch the disk.
type MemoryStore struct {
	mu sync.Mutex
	ds *models.Dataset

	// Error flags for testing error conditions
	LoadError error
	SaveError error

	Saves int
}

// NewMemoryStore returns a store preloaded with a copy of ds. A nil ds is an
// empty dataset.
func NewMemoryStore(ds *models.Dataset) *MemoryStore {
	if ds == nil {
		ds = models.NewDataset()
	}
	return &MemoryStore{ds: ds.Clone()}
}

// Load returns a copy of the held dataset.
func (m *MemoryStore) Load(_ context.Context) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.ds == nil {
		return models.NewDataset(), nil
	}
	return m.ds.Clone(), nil
}

// Save replaces the held dataset with a copy of ds.
func (m *MemoryStore) Save(_ context.Context, ds *models.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if ds == nil {
		ds = models.NewDataset()
	}
	m.ds = ds.Clone()
	m.Saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }
