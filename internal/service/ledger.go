package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// entryRef ties a ledger entry back to the loan or card that caused it
type entryRef struct {
	loanID *int64
	cardID *int64
}

// TransactionLedger records every balance movement as an append-only entry.
//
// Exported Record* methods take the account lock themselves. The unexported
// deposit and withdraw variants expect the caller to hold it, which is how the
// loan and card engines fold a ledger movement into their own unit of work.
type TransactionLedger struct {
	accounts Balances
	ids      *IDAllocator
	now      func() time.Time

	mu        sync.RWMutex
	entries   []*models.LedgerEntry
	byAccount map[int64][]int
}

// NewTransactionLedger creates an empty ledger over accounts
func NewTransactionLedger(accounts Balances, ids *IDAllocator, now func() time.Time) *TransactionLedger {
	return &TransactionLedger{
		accounts:  accounts,
		ids:       ids,
		now:       now,
		byAccount: make(map[int64][]int),
	}
}

// RecordDeposit credits an account and records a positive entry
func (l *TransactionLedger) RecordDeposit(accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	if description == "" {
		description = "Deposit"
	}
	if err := l.checkTarget(accountID, amount); err != nil {
		return nil, err
	}

	unlock := l.accounts.Lock(accountID)
	defer unlock()

	return l.deposit(accountID, amount, description, entryRef{})
}

// RecordWithdraw debits an account and records a negative entry
func (l *TransactionLedger) RecordWithdraw(accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	if description == "" {
		description = "Withdraw"
	}
	if err := l.checkTarget(accountID, amount); err != nil {
		return nil, err
	}

	unlock := l.accounts.Lock(accountID)
	defer unlock()

	return l.withdraw(accountID, amount, description, entryRef{})
}

// RecordTransfer moves amount between two accounts and records the linked pair
// of entries. Either both balances and both entries change, or nothing does.
func (l *TransactionLedger) RecordTransfer(fromID, toID int64, amount decimal.Decimal) (*models.TransferEntries, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, validationError("%s", err.Error())
	}
	if fromID == toID {
		return nil, validationError("cannot transfer to the same account")
	}
	if _, err := l.accounts.Get(fromID); err != nil {
		return nil, err
	}
	if _, err := l.accounts.Get(toID); err != nil {
		return nil, err
	}

	unlock := l.accounts.Lock(fromID, toID)
	defer unlock()

	if err := l.accounts.Debit(fromID, amount); err != nil {
		return nil, err
	}

	if err := l.accounts.Credit(toID, amount); err != nil {
		if rbErr := l.accounts.Credit(fromID, amount); rbErr != nil {
			return nil, &ServiceError{
				Code:    ErrCodeInternalError,
				Message: fmt.Sprintf("failed to roll back debit of account %d after failed credit: %v", fromID, rbErr),
				Err:     err,
			}
		}
		return nil, err
	}

	from, to := fromID, toID
	now := l.now()
	debit := &models.LedgerEntry{
		AccountID:            fromID,
		Kind:                 models.EntryKindTransfer,
		Amount:               amount.Neg(),
		Timestamp:            now,
		Description:          fmt.Sprintf("Transfer to Account #%d", toID),
		CounterpartAccountID: &to,
	}
	credit := &models.LedgerEntry{
		AccountID:            toID,
		Kind:                 models.EntryKindTransfer,
		Amount:               amount,
		Timestamp:            now,
		Description:          fmt.Sprintf("Transfer from Account #%d", fromID),
		CounterpartAccountID: &from,
	}

	l.append(debit, credit)

	return &models.TransferEntries{Debit: copyEntry(debit), Credit: copyEntry(credit)}, nil
}

// ListForAccount returns an account's entries, most recent first
func (l *TransactionLedger) ListForAccount(accountID int64) []*models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.byAccount[accountID]
	out := make([]*models.LedgerEntry, 0, len(idx))
	for i := len(idx) - 1; i >= 0; i-- {
		out = append(out, copyEntry(l.entries[idx[i]]))
	}
	return out
}

// ListAll returns the full ledger in insertion order
func (l *TransactionLedger) ListAll() []*models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*models.LedgerEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, copyEntry(e))
	}
	return out
}

// Count returns the number of entries recorded
func (l *TransactionLedger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// deposit credits and records; the caller holds the account lock
// checkTarget rejects bad amounts and unknown accounts before any account lock
// is allocated for accountID.
func (l *TransactionLedger) checkTarget(accountID int64, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return validationError("%s", err.Error())
	}
	_, err := l.accounts.Get(accountID)
	return err
}

func (l *TransactionLedger) deposit(accountID int64, amount decimal.Decimal, description string, ref entryRef) (*models.LedgerEntry, error) {
	if err := l.accounts.Credit(accountID, amount); err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:   accountID,
		Kind:        models.EntryKindDeposit,
		Amount:      amount,
		Timestamp:   l.now(),
		Description: description,
		LoanID:      ref.loanID,
		CardID:      ref.cardID,
	}
	l.append(entry)

	return copyEntry(entry), nil
}

// withdraw debits and records; the caller holds the account lock
func (l *TransactionLedger) withdraw(accountID int64, amount decimal.Decimal, description string, ref entryRef) (*models.LedgerEntry, error) {
	if err := l.accounts.Debit(accountID, amount); err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:   accountID,
		Kind:        models.EntryKindWithdraw,
		Amount:      amount.Neg(),
		Timestamp:   l.now(),
		Description: description,
		LoanID:      ref.loanID,
		CardID:      ref.cardID,
	}
	l.append(entry)

	return copyEntry(entry), nil
}

// append assigns ids and stores entries in one critical section so a transfer
// pair is never observed half-written
func (l *TransactionLedger) append(entries ...*models.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		e.ID = l.ids.Next(ClassTransaction)
		l.entries = append(l.entries, e)
		l.byAccount[e.AccountID] = append(l.byAccount[e.AccountID], len(l.entries)-1)
	}
}

func copyEntry(e *models.LedgerEntry) *models.LedgerEntry {
	cp := *e
	return &cp
}
