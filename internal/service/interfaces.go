package service

import (
	"context"

	"github.com/benx421/backoffice/internal/events"
	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// Balances is the capability the ledger, loan and card engines hold over
// accounts. Balance changes only ever go through Credit and Debit.
type Balances interface {
	Get(id int64) (*models.Account, error)
	Credit(id int64, amount decimal.Decimal) error
	Debit(id int64, amount decimal.Decimal) error
	Lock(ids ...int64) (unlock func())
}

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Journal persists committed ledger entries outside the process
type Journal interface {
	Append(ctx context.Context, entries ...*models.LedgerEntry) error
}

// EventPublisher announces committed operations to other systems
type EventPublisher interface {
	Publish(ctx context.Context, event *events.Event) error
}

// AccountManager handles account lifecycle and reporting
type AccountManager interface {
	OpenAccount(ctx context.Context, holderName string, accountType models.AccountType, initialDeposit decimal.Decimal) (*models.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

// Teller handles deposits, withdrawals and transfers
type Teller interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error)
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*models.TransferEntries, error)
	ListTransactions(ctx context.Context, accountID int64) ([]*models.LedgerEntry, error)
	ListAllTransactions(ctx context.Context) ([]*models.LedgerEntry, error)
}

// LoanOfficer handles loan pricing, origination and repayment
type LoanOfficer interface {
	QuoteLoan(ctx context.Context, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.LoanQuote, error)
	OriginateLoan(ctx context.Context, accountID int64, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.Loan, error)
	PayLoan(ctx context.Context, loanID int64, amount decimal.Decimal) (*models.Loan, error)
	GetLoan(ctx context.Context, loanID int64) (*models.Loan, error)
	ListLoans(ctx context.Context, accountID int64, activeOnly bool) ([]*models.Loan, error)
}

// CardIssuer handles card issuance, purchases and settlement
type CardIssuer interface {
	IssueCard(ctx context.Context, accountID int64, cardType models.CardType) (*models.Card, error)
	CardPurchase(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error)
	CardPayment(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error)
	SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) (*models.Card, error)
	GetCard(ctx context.Context, cardID int64) (*models.Card, error)
	ListCards(ctx context.Context, accountID int64, activeOnly bool) ([]*models.Card, error)
}

// Ensure concrete types implement interfaces
var (
	_ Balances       = (*AccountStore)(nil)
	_ AccountManager = (*Bank)(nil)
	_ Teller         = (*Bank)(nil)
	_ LoanOfficer    = (*Bank)(nil)
	_ CardIssuer     = (*Bank)(nil)
)
