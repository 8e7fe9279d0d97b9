// Package repository persists what the in-memory engine has already committed:
// the ledger journal, cached idempotent responses and audit documents.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/backoffice/internal/db"
	"github.com/benx421/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// JournalRepository appends committed ledger entries to Postgres
type JournalRepository interface {
	Append(ctx context.Context, entries ...*models.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID int64) ([]*models.LedgerEntry, error)
}

type journalRepository struct {
	db    *db.DB
	runID uuid.UUID
}

// NewJournalRepository creates a JournalRepository that files entries under
// runID. Entry ids are only unique within one process run.
func NewJournalRepository(database *db.DB, runID uuid.UUID) JournalRepository {
	return &journalRepository{db: database, runID: runID}
}

// Append writes entries in one transaction. A transfer pair is therefore
// journaled together or not at all.
func (r *journalRepository) Append(ctx context.Context, entries ...*models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO ledger_entries (
			run_id, id, account_id, kind, amount, description,
			counterpart_account_id, loan_id, card_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, e := range entries {
		_, err := tx.ExecContext(ctx, query,
			r.runID,
			e.ID,
			e.AccountID,
			e.Kind,
			e.Amount,
			e.Description,
			nullableID(e.CounterpartAccountID),
			nullableID(e.LoanID),
			nullableID(e.CardID),
			e.Timestamp,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("ledger entry %d: %w", e.ID, models.ErrDuplicateEntry)
			}
			return fmt.Errorf("failed to journal ledger entry %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal transaction: %w", err)
	}

	return nil
}

// ListByAccount returns an account's entries journaled by this run, most recent first
func (r *journalRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, account_id, kind, amount, description,
		       counterpart_account_id, loan_id, card_id, created_at
		FROM ledger_entries
		WHERE run_id = $1 AND account_id = $2
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, r.runID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var (
			e                            models.LedgerEntry
			counterpart, loanID, cardID sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.Kind,
			&e.Amount,
			&e.Description,
			&counterpart,
			&loanID,
			&cardID,
			&e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.CounterpartAccountID = idOrNil(counterpart)
		e.LoanID = idOrNil(loanID)
		e.CardID = idOrNil(cardID)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func idOrNil(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
