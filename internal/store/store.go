// Package store implements the persistent seen-set: the mapping from offer
// key to notified-offer snapshot, plus the persisted set of search
// identifiers.
//
// Every implementation absorbs transport failures at this boundary: a failed
// read degrades to "not seen" / empty, a failed write is a logged no-op.
// Callers never see a store error, so a storage outage can void the dedup
// guarantee for a cycle but can never stop the monitor loop.
package store

import (
	"context"

	"jobwatch/monitor-service/internal/model"
)

const (
	searchSetKey   = "job_searches"
	offerKeyPrefix = "offer:"
)

// Store is the seen-set and search-identifier persistence contract.
type Store interface {
	// HasOffer reports whether the offer key was recorded before.
	// Unavailable store → false (the offer is treated as new).
	HasOffer(ctx context.Context, offerKey string) bool

	// RecordOffer upserts the offer snapshot under its key. Idempotent.
	RecordOffer(ctx context.Context, offerKey string, snap model.OfferSnapshot)

	// ListSearchIDs returns the persisted search identifiers, in no
	// particular order. Unavailable or empty store → nil.
	ListSearchIDs(ctx context.Context) []string

	// AddSearchID adds an identifier to the persisted set. Idempotent.
	AddSearchID(ctx context.Context, id string)

	// RemoveSearchID removes an identifier from the persisted set.
	// Removing an absent identifier is a no-op.
	RemoveSearchID(ctx context.Context, id string)
}

// NullStore is the degraded-mode Store used when no backing store is
// reachable at startup. Reads report nothing seen, writes do nothing, so
// every offer appears new on every cycle.
type NullStore struct{}

// NewNullStore returns the no-op Store.
func NewNullStore() *NullStore { return &NullStore{} }

func (*NullStore) HasOffer(context.Context, string) bool { return false }

func (*NullStore) RecordOffer(context.Context, string, model.OfferSnapshot) {}

func (*NullStore) ListSearchIDs(context.Context) []string { return nil }

func (*NullStore) AddSearchID(context.Context, string) {}

func (*NullStore) RemoveSearchID(context.Context, string) {}
