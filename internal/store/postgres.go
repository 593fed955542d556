package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobwatch/monitor-service/internal/model"
)

// PostgresStore persists the seen-set in Postgres: one row per notified
// offer in seen_offers (snapshot as JSONB) and one row per search
// identifier in searches.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore applies the schema and returns a PostgresStore. Schema
// creation is the one store operation that is allowed to fail construction:
// without the tables every later call would degrade anyway.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*PostgresStore, error) {
	ddl := `
CREATE TABLE IF NOT EXISTS seen_offers (
	offer_key TEXT PRIMARY KEY,
	snapshot  JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS searches (
	id TEXT PRIMARY KEY
);`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) HasOffer(ctx context.Context, offerKey string) bool {
	var seen bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM seen_offers WHERE offer_key = $1)`,
		offerKey,
	).Scan(&seen)
	if err != nil {
		s.logger.Error("seen_offers lookup failed, treating offer as new",
			slog.String("offer_key", offerKey),
			slog.String("error", err.Error()),
		)
		return false
	}
	return seen
}

func (s *PostgresStore) RecordOffer(ctx context.Context, offerKey string, snap model.OfferSnapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("snapshot marshal failed, offer not recorded",
			slog.String("offer_key", offerKey),
			slog.String("error", err.Error()),
		)
		return
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO seen_offers (offer_key, snapshot)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (offer_key) DO NOTHING`,
		offerKey, string(raw),
	)
	if err != nil {
		s.logger.Error("seen_offers insert failed, offer not recorded",
			slog.String("offer_key", offerKey),
			slog.String("error", err.Error()),
		)
	}
}

func (s *PostgresStore) ListSearchIDs(ctx context.Context) []string {
	rows, err := s.pool.Query(ctx, `SELECT id FROM searches`)
	if err != nil {
		s.logger.Error("searches query failed, no persisted searches loaded",
			slog.String("error", err.Error()),
		)
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			s.logger.Error("searches scan failed, no persisted searches loaded",
				slog.String("error", err.Error()),
			)
			return nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("searches iteration failed, no persisted searches loaded",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return ids
}

func (s *PostgresStore) AddSearchID(ctx context.Context, id string) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO searches (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		s.logger.Error("searches insert failed, search id not persisted",
			slog.String("search_id", id),
			slog.String("error", err.Error()),
		)
	}
}

func (s *PostgresStore) RemoveSearchID(ctx context.Context, id string) {
	_, err := s.pool.Exec(ctx, `DELETE FROM searches WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("searches delete failed, search id not removed",
			slog.String("search_id", id),
			slog.String("error", err.Error()),
		)
	}
}
