package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/backoffice/internal/db"
	"github.com/benx421/backoffice/internal/models"
	"github.com/google/uuid"
)

// IdempotencyRepository caches responses in Postgres. It backs the idempotency
// middleware when Redis is not configured.
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type idempotencyRepository struct {
	db    *db.DB
	runID uuid.UUID
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
// Responses are scoped to runID: ids restart with every process, so a response
// cached by an earlier run describes records that no longer exist.
func NewIdempotencyRepository(database *db.DB, runID uuid.UUID) IdempotencyRepository {
	return &idempotencyRepository{db: database, runID: runID}
}

// Get returns the cached response, or nil when the key has not been seen
func (r *idempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, request_path, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE run_id = $1 AND key = $2 AND request_path = $3
	`

	var idemKey models.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, r.runID, key, requestPath).Scan(
		&idemKey.Key,
		&idemKey.RequestPath,
		&idemKey.ResponseStatus,
		&idemKey.ResponseBody,
		&idemKey.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return &idemKey, nil
}

// Store saves a response. The first stored response for a key wins.
func (r *idempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	createdAt := idemKey.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO idempotency_keys (run_id, key, request_path, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id, key, request_path) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		r.runID,
		idemKey.Key,
		idemKey.RequestPath,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// DeleteOlderThan purges cached responses created before cutoff along with
// every response cached by another run
func (r *idempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM idempotency_keys WHERE created_at < $1 OR run_id <> $2`, cutoff, r.runID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency keys: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted idempotency keys: %w", err)
	}

	return deleted, nil
}
