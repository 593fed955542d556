package store

import (
	"context"
	"sync"

	"jobwatch/monitor-service/internal/model"
)

// MemoryStore is an in-memory Store. It backs tests and makes it possible to
// run the monitor without any external store while keeping dedup within a
// single process lifetime.
type MemoryStore struct {
	mu       sync.Mutex
	offers   map[string]model.OfferSnapshot
	searches map[string]struct{}
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		offers:   make(map[string]model.OfferSnapshot),
		searches: make(map[string]struct{}),
	}
}

func (m *MemoryStore) HasOffer(_ context.Context, offerKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.offers[offerKey]
	return ok
}

func (m *MemoryStore) RecordOffer(_ context.Context, offerKey string, snap model.OfferSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers[offerKey] = snap
}

func (m *MemoryStore) ListSearchIDs(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.searches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(m.searches))
	for id := range m.searches {
		ids = append(ids, id)
	}
	return ids
}

func (m *MemoryStore) AddSearchID(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[id] = struct{}{}
}

func (m *MemoryStore) RemoveSearchID(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.searches, id)
}

// OfferCount returns the number of recorded offers.
func (m *MemoryStore) OfferCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.offers)
}

// Offer returns the recorded snapshot for a key, if any.
func (m *MemoryStore) Offer(offerKey string) (model.OfferSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.offers[offerKey]
	return snap, ok
}
