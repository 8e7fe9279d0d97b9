package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// RedisIdempotencyRepository caches responses in Redis with a TTL. Keys carry
// the process run id, so a restarted process never replays an earlier run's
// responses.
type RedisIdempotencyRepository struct {
	client redis.Cmdable
	ttl    time.Duration
	runID  uuid.UUID
}

// NewRedisIdempotencyRepository creates a repository whose entries expire after ttl
func NewRedisIdempotencyRepository(client redis.Cmdable, runID uuid.UUID, ttl time.Duration) *RedisIdempotencyRepository {
	return &RedisIdempotencyRepository{client: client, runID: runID, ttl: ttl}
}

// Get returns the cached response, or nil on a cache miss
func (r *RedisIdempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	val, err := r.client.Get(ctx, redisKey(r.runID, key, requestPath)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	var idemKey models.IdempotencyKey
	if err := json.Unmarshal(val, &idemKey); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}

	return &idemKey, nil
}

// Store saves a response unless one is already cached for the key
func (r *RedisIdempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	if idemKey.CreatedAt.IsZero() {
		idemKey.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(idemKey)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := r.client.SetNX(ctx, redisKey(r.runID, idemKey.Key, idemKey.RequestPath), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

func redisKey(runID uuid.UUID, key, requestPath string) string {
	return idempotencyKeyPrefix + runID.String() + ":" + requestPath + ":" + key
}
