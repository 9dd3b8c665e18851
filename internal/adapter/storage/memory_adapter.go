package storage

import (
	"context"
	"sync"
	"time"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

var _ port.DocumentStore = (*MemoryAdapter)(nil)

// MemoryAdapter keeps records in process memory. It backs the failover store
// as the secondary and stands in for the durable stores in tests. Contents
// live exactly as long as the process.
type MemoryAdapter struct {
	mu   sync.RWMutex
	docs map[string]memoryDoc
}

type memoryDoc struct {
	record      domain.Record
	lastUpdated time.Time
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{docs: make(map[string]memoryDoc)}
}

func (m *MemoryAdapter) Connect(ctx context.Context) error    { return nil }
func (m *MemoryAdapter) Disconnect(ctx context.Context) error { return nil }
func (m *MemoryAdapter) Ping(ctx context.Context) error       { return nil }

func (m *MemoryAdapter) Load(ctx context.Context, ownerID string) (domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[ownerID]
	if !ok {
		return domain.Record{}, nil
	}
	return doc.record.Clone(), nil
}

func (m *MemoryAdapter) Save(ctx context.Context, ownerID string, record domain.Record) error {
	if record == nil {
		record = domain.Record{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[ownerID] = memoryDoc{record: record.Clone(), lastUpdated: time.Now()}
	return nil
}

func (m *MemoryAdapter) ListOwners(ctx context.Context) ([]domain.OwnerInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owners := make([]domain.OwnerInfo, 0, len(m.docs))
	for id, doc := range m.docs {
		owners = append(owners, domain.OwnerInfo{OwnerID: id, LastUpdated: doc.lastUpdated})
	}
	return owners, nil
}

func (m *MemoryAdapter) DeleteOwner(ctx context.Context, ownerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.docs[ownerID]
	delete(m.docs, ownerID)
	return ok, nil
}
