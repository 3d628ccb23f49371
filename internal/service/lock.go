package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisSectionLocker implements SectionLocker with a SET NX key per
// section. The TTL bounds lock lifetime if a process dies mid-generation;
// the database-level advisory lock remains the authoritative guard.
type RedisSectionLocker struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisSectionLocker creates a section locker with the given TTL.
func NewRedisSectionLocker(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisSectionLocker {
	return &RedisSectionLocker{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "section_locker").Logger(),
	}
}

// Acquire takes the per-section lock. Returns false when another caller
// already holds it.
func (l *RedisSectionLocker) Acquire(ctx context.Context, sectionID uuid.UUID) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, lockKey(sectionID), 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire section lock: %w", err)
	}
	return ok, nil
}

// Release drops the per-section lock. Failures are logged only; the TTL
// reclaims the key on its own.
func (l *RedisSectionLocker) Release(ctx context.Context, sectionID uuid.UUID) {
	if err := l.rdb.Del(ctx, lockKey(sectionID)).Err(); err != nil {
		l.log.Warn().
			Err(err).
			Str("section_id", sectionID.String()).
			Msg("Failed to release section lock, TTL will expire it")
	}
}

func lockKey(sectionID uuid.UUID) string {
	return fmt.Sprintf("section:%s:genlock", sectionID)
}
