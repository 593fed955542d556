package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"jobwatch/monitor-service/internal/model"
)

// RedisStore persists the seen-set in Redis: one SET of search identifiers
// under "job_searches" and one HASH per notified offer under
// "offer:<offerKey>".
type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewRedisStore constructs a RedisStore around an already-connected client.
func NewRedisStore(rdb *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

func (s *RedisStore) HasOffer(ctx context.Context, offerKey string) bool {
	n, err := s.rdb.Exists(ctx, offerKeyPrefix+offerKey).Result()
	if err != nil {
		s.logger.Error("redis EXISTS failed, treating offer as new",
			slog.String("offer_key", offerKey),
			slog.String("error", err.Error()),
		)
		return false
	}
	return n > 0
}

func (s *RedisStore) RecordOffer(ctx context.Context, offerKey string, snap model.OfferSnapshot) {
	fields := map[string]string{
		"companyName":       snap.CompanyName,
		"jobTitle":          snap.JobTitle,
		"lastPublicated":    snap.LastPublicated,
		"technologies":      strings.Join(snap.Technologies, ","),
		"displayWorkplace":  snap.DisplayWorkplace,
		"offerAbsoluteUri":  snap.OfferAbsoluteURI,
		"positionLevels":    strings.Join(snap.PositionLevels, ","),
		"salaryDisplayText": snap.SalaryDisplayText,
	}
	if err := s.rdb.HSet(ctx, offerKeyPrefix+offerKey, fields).Err(); err != nil {
		s.logger.Error("redis HSET failed, offer not recorded",
			slog.String("offer_key", offerKey),
			slog.String("error", err.Error()),
		)
	}
}

func (s *RedisStore) ListSearchIDs(ctx context.Context) []string {
	ids, err := s.rdb.SMembers(ctx, searchSetKey).Result()
	if err != nil {
		s.logger.Error("redis SMEMBERS failed, no persisted searches loaded",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return ids
}

func (s *RedisStore) AddSearchID(ctx context.Context, id string) {
	if err := s.rdb.SAdd(ctx, searchSetKey, id).Err(); err != nil {
		s.logger.Error("redis SADD failed, search id not persisted",
			slog.String("search_id", id),
			slog.String("error", err.Error()),
		)
	}
}

func (s *RedisStore) RemoveSearchID(ctx context.Context, id string) {
	if err := s.rdb.SRem(ctx, searchSetKey, id).Err(); err != nil {
		s.logger.Error("redis SREM failed, search id not removed",
			slog.String("search_id", id),
			slog.String("error", err.Error()),
		)
	}
}
