package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the kind of balance movement a ledger entry records
type EntryKind string

const (
	EntryKindDeposit  EntryKind = "deposit"
	EntryKindWithdraw EntryKind = "withdraw"
	EntryKindTransfer EntryKind = "transfer"
)

// LedgerEntry is one immutable, signed balance movement against one account.
//
// Transfers produce two entries linked through CounterpartAccountID. Loan and
// card movements carry LoanID or CardID back to the record that caused them.
type LedgerEntry struct {
	Timestamp            time.Time       `db:"created_at" json:"timestamp"`
	CounterpartAccountID *int64          `db:"counterpart_account_id" json:"counterpart_account_id,omitempty"`
	LoanID               *int64          `db:"loan_id" json:"loan_id,omitempty"`
	CardID               *int64          `db:"card_id" json:"card_id,omitempty"`
	Description          string          `db:"description" json:"description"`
	Kind                 EntryKind       `db:"kind" json:"kind"`
	Amount               decimal.Decimal `db:"amount" json:"amount"`
	ID                   int64           `db:"id" json:"id"`
	AccountID            int64           `db:"account_id" json:"account_id"`
}

// IsCredit reports whether the entry increased the account balance
func (e *LedgerEntry) IsCredit() bool {
	return e.Amount.IsPositive()
}

// TransferEntries is the linked pair of entries a transfer produces
type TransferEntries struct {
	Debit  *LedgerEntry `json:"debit"`
	Credit *LedgerEntry `json:"credit"`
}
