// Package registry holds the set of active searches for the life of the
// process, backed by the store's persisted identifier set.
package registry

import (
	"context"
	"log/slog"
	"strings"

	"jobwatch/monitor-service/internal/search"
	"jobwatch/monitor-service/internal/store"
)

// Registry maps search identifier to Search, keeping insertion order for
// cycle iteration. It is owned by a single goroutine (the monitor) and is
// not safe for concurrent mutation.
type Registry struct {
	store    store.Store
	logger   *slog.Logger
	searches map[string]search.Search
	order    []string
}

// New constructs an empty Registry on top of the given store.
func New(st store.Store, logger *slog.Logger) *Registry {
	return &Registry{
		store:    st,
		logger:   logger,
		searches: make(map[string]search.Search),
	}
}

// Init populates the registry from the store's persisted identifiers.
// A persisted identifier is split on the first ":" into position and city.
// Only when the persisted set is empty are the defaults applied (and
// persisted); a deliberately emptied registry stays empty across restarts.
func (r *Registry) Init(ctx context.Context, defaults []search.Search) {
	ids := r.store.ListSearchIDs(ctx)
	if len(ids) == 0 {
		for _, s := range defaults {
			if err := r.Add(ctx, s.Position, s.City); err != nil {
				r.logger.Error("skipping invalid default search",
					slog.String("position", s.Position),
					slog.String("error", err.Error()),
				)
			}
		}
	} else {
		for _, id := range ids {
			position, city, _ := strings.Cut(id, ":")
			if err := r.Add(ctx, position, city); err != nil {
				r.logger.Error("skipping invalid persisted search",
					slog.String("search_id", id),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	r.logger.Info("registry initialized", slog.Int("searches", len(r.searches)))
}

// Add validates, inserts (last write wins on the same identifier) and
// persists the search.
func (r *Registry) Add(ctx context.Context, position, city string) error {
	s, err := search.New(position, city)
	if err != nil {
		return err
	}
	id := s.ID()
	if _, exists := r.searches[id]; !exists {
		r.order = append(r.order, id)
	}
	r.searches[id] = s
	r.store.AddSearchID(ctx, id)
	r.logger.Info("added search", slog.String("search_id", id))
	return nil
}

// Remove drops the search from the registry and the persisted set.
// Removing an absent search is a no-op.
func (r *Registry) Remove(ctx context.Context, position, city string) error {
	s, err := search.New(position, city)
	if err != nil {
		return err
	}
	id := s.ID()
	if _, exists := r.searches[id]; exists {
		delete(r.searches, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.store.RemoveSearchID(ctx, id)
	r.logger.Info("removed search", slog.String("search_id", id))
	return nil
}

// Active returns the searches in insertion order, as a snapshot for one
// monitor cycle.
func (r *Registry) Active() []search.Search {
	out := make([]search.Search, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.searches[id])
	}
	return out
}

// Len returns the number of registered searches.
func (r *Registry) Len() int { return len(r.searches) }
