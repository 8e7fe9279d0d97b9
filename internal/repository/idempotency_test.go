package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idempotencyStore is the behaviour both backends share
type idempotencyStore interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// runIdempotencyContract checks repo, and that other, a store for a different
// process run on the same backend, never sees repo's responses
func runIdempotencyContract(t *testing.T, repo, other idempotencyStore, prefix string) {
	ctx := context.Background()
	key := func(name string) string { return fmt.Sprintf("%s-%s", prefix, name) }

	t.Run("store and get", func(t *testing.T) {
		stored := &models.IdempotencyKey{
			Key:            key("deposit"),
			RequestPath:    "/api/v1/deposits",
			ResponseStatus: 201,
			ResponseBody:   `{"id":1,"amount":"100.00"}`,
		}
		require.NoError(t, repo.Store(ctx, stored))

		got, err := repo.Get(ctx, stored.Key, stored.RequestPath)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, stored.ResponseStatus, got.ResponseStatus)
		assert.Equal(t, stored.ResponseBody, got.ResponseBody)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, key("unknown"), "/api/v1/deposits")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("first response wins", func(t *testing.T) {
		first := &models.IdempotencyKey{Key: key("dup"), RequestPath: "/api/v1/transfers", ResponseStatus: 201, ResponseBody: `{"first":true}`}
		second := &models.IdempotencyKey{Key: key("dup"), RequestPath: "/api/v1/transfers", ResponseStatus: 201, ResponseBody: `{"second":true}`}
		require.NoError(t, repo.Store(ctx, first))
		require.NoError(t, repo.Store(ctx, second))

		got, err := repo.Get(ctx, first.Key, first.RequestPath)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ResponseBody, got.ResponseBody)
	})

	t.Run("same key on another path is independent", func(t *testing.T) {
		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
			Key: key("shared"), RequestPath: "/api/v1/withdrawals", ResponseStatus: 201, ResponseBody: "withdrawal",
		}))

		got, err := repo.Get(ctx, key("shared"), "/api/v1/cards")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("responses from another run are not replayed", func(t *testing.T) {
		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
			Key: key("restart"), RequestPath: "/api/v1/accounts", ResponseStatus: 201, ResponseBody: `{"id":1000}`,
		}))

		got, err := other.Get(ctx, key("restart"), "/api/v1/accounts")
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, other.Store(ctx, &models.IdempotencyKey{
			Key: key("restart"), RequestPath: "/api/v1/accounts", ResponseStatus: 201, ResponseBody: `{"id":1000,"run":2}`,
		}))
		got, err = other.Get(ctx, key("restart"), "/api/v1/accounts")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, `{"id":1000,"run":2}`, got.ResponseBody)
	})
}

func TestIdempotencyRepository_Postgres(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	runID := uuid.New()
	runIdempotencyContract(t, NewIdempotencyRepository(database, runID), NewIdempotencyRepository(database, uuid.New()), "pg")
}

func TestIdempotencyRepository_DeleteOlderThan(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewIdempotencyRepository(database, uuid.New())
	earlierRun := NewIdempotencyRepository(database, uuid.New())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, earlierRun.Store(ctx, &models.IdempotencyKey{
		Key: "stale", RequestPath: "/api/v1/loans", ResponseStatus: 201, ResponseBody: "stale", CreatedAt: now.Add(-time.Minute),
	}))

	require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
		Key: "old", RequestPath: "/api/v1/loans", ResponseStatus: 201, ResponseBody: "old", CreatedAt: now.Add(-25 * time.Hour),
	}))
	require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
		Key: "recent", RequestPath: "/api/v1/loans", ResponseStatus: 201, ResponseBody: "recent", CreatedAt: now.Add(-time.Hour),
	}))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted, "the expired key and the earlier run's key")

	stale, err := earlierRun.Get(ctx, "stale", "/api/v1/loans")
	require.NoError(t, err)
	assert.Nil(t, stale)

	old, err := repo.Get(ctx, "old", "/api/v1/loans")
	require.NoError(t, err)
	assert.Nil(t, old)

	recent, err := repo.Get(ctx, "recent", "/api/v1/loans")
	require.NoError(t, err)
	assert.NotNil(t, recent)

	deleted, err = repo.DeleteOlderThan(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestIdempotencyRepository_Redis(t *testing.T) {
	addr := requireEnv(t, "REDIS_ADDR")

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close() //nolint:errcheck // test cleanup
	require.NoError(t, client.Ping(context.Background()).Err())

	runID := uuid.New()
	repo := NewRedisIdempotencyRepository(client, runID, time.Minute)
	other := NewRedisIdempotencyRepository(client, uuid.New(), time.Minute)
	runIdempotencyContract(t, repo, other, fmt.Sprintf("redis-%d", time.Now().UnixNano()))

	ttl, err := client.TTL(context.Background(), redisKey(runID, "missing", "/api/v1/deposits")).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-2), ttl)
}

func TestRedisKey(t *testing.T) {
	run := uuid.MustParse("6f1c2b1e-2d7a-4c2f-9a51-0d3c8e7f4b10")

	assert.Equal(t, "idempotency:6f1c2b1e-2d7a-4c2f-9a51-0d3c8e7f4b10:/api/v1/deposits:abc", redisKey(run, "abc", "/api/v1/deposits"))
	assert.NotEqual(t, redisKey(run, "abc", "/api/v1/deposits"), redisKey(run, "abc", "/api/v1/withdrawals"))
	assert.NotEqual(t, redisKey(run, "abc", "/api/v1/deposits"), redisKey(uuid.New(), "abc", "/api/v1/deposits"))
}
