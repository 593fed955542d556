package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Open connects to the backing store named by storeURL, choosing the backend
// from the URL scheme (redis:// or postgres://). When the store cannot be
// reached the service still starts: Open logs the failure and returns the
// NullStore, trading dedup guarantees for availability.
func Open(ctx context.Context, storeURL string, logger *slog.Logger) Store {
	st, err := open(ctx, storeURL, logger)
	if err != nil {
		logger.Error("store unavailable, running without dedup persistence",
			slog.String("store_url", storeURL),
			slog.String("error", err.Error()),
		)
		return NewNullStore()
	}
	return st
}

func open(ctx context.Context, storeURL string, logger *slog.Logger) (Store, error) {
	switch {
	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		pool, err := pgxpool.New(ctx, storeURL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres ping failed: %w", err)
		}
		st, err := NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("connected to postgres store")
		return st, nil
	default:
		opts, err := redis.ParseURL(storeURL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Info("connected to redis store")
		return NewRedisStore(rdb, logger), nil
	}
}
