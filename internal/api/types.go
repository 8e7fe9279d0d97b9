package api

import (
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// ErrorCode is the machine-readable failure kind in an error body
type ErrorCode string

const (
	ValidationError    ErrorCode = "validation_error"
	NotFound           ErrorCode = "not_found"
	InsufficientFunds  ErrorCode = "insufficient_funds"
	InsufficientCredit ErrorCode = "insufficient_credit"
	InactiveCard       ErrorCode = "inactive_card"
	AlreadyPaidOff     ErrorCode = "already_paid_off"
	InternalError      ErrorCode = "internal_error"
)

// Error is the body of every failed request
type Error struct {
	Error   ErrorCode `json:"error"`
	Message string    `json:"message"`
}

// OpenAccountRequest opens an account
type OpenAccountRequest struct {
	HolderName     string             `json:"holder_name"`
	AccountType    models.AccountType `json:"account_type"`
	InitialDeposit decimal.Decimal    `json:"initial_deposit"`
}

// MovementRequest is a deposit or withdrawal against one account
type MovementRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   int64           `json:"account_id"`
}

// TransferRequest moves funds between two accounts
type TransferRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
}

// AmountRequest carries the amount of a loan or card payment or a card purchase
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// LoanRequest originates a loan
type LoanRequest struct {
	LoanType  models.LoanType `json:"loan_type"`
	Principal decimal.Decimal `json:"principal"`
	AccountID int64           `json:"account_id"`
	TermYears int             `json:"term_years"`
}

// CardRequest issues a card
type CardRequest struct {
	CardType  models.CardType `json:"card_type"`
	AccountID int64           `json:"account_id"`
}

// CardStatusRequest activates or deactivates a card
type CardStatusRequest struct {
	Status models.CardStatus `json:"status"`
}

// Account is the response body for an account
type Account struct {
	CreatedAt   time.Time          `json:"created_at"`
	HolderName  string             `json:"holder_name"`
	AccountType models.AccountType `json:"account_type"`
	Balance     string             `json:"balance"`
	ID          int64              `json:"id"`
}

// Transaction is the response body for a ledger entry
type Transaction struct {
	Timestamp            time.Time        `json:"timestamp"`
	CounterpartAccountID *int64           `json:"counterpart_account_id,omitempty"`
	LoanID               *int64           `json:"loan_id,omitempty"`
	CardID               *int64           `json:"card_id,omitempty"`
	Kind                 models.EntryKind `json:"kind"`
	Description          string           `json:"description"`
	Amount               string           `json:"amount"`
	ID                   int64            `json:"id"`
	AccountID            int64            `json:"account_id"`
}

// Transfer is the response body for a transfer
type Transfer struct {
	Debit  Transaction `json:"debit"`
	Credit Transaction `json:"credit"`
}

// LoanQuote is the response body for a loan quote
type LoanQuote struct {
	LoanType          models.LoanType `json:"loan_type"`
	Principal         string          `json:"principal"`
	AnnualRatePercent string          `json:"annual_rate_percent"`
	MonthlyPayment    string          `json:"monthly_payment"`
	TotalRepayment    string          `json:"total_repayment"`
	TotalInterest     string          `json:"total_interest"`
	TermYears         int             `json:"term_years"`
}

// Loan is the response body for a loan
type Loan struct {
	OriginatedAt      time.Time         `json:"originated_at"`
	NextPaymentDate   time.Time         `json:"next_payment_date"`
	LoanType          models.LoanType   `json:"loan_type"`
	Status            models.LoanStatus `json:"status"`
	Principal         string            `json:"principal"`
	AnnualRatePercent string            `json:"annual_rate_percent"`
	MonthlyPayment    string            `json:"monthly_payment"`
	TotalRepayment    string            `json:"total_repayment"`
	TotalInterest     string            `json:"total_interest"`
	RemainingBalance  string            `json:"remaining_balance"`
	PaidPercent       string            `json:"paid_percent"`
	TermYears         int               `json:"term_years"`
	ID                int64             `json:"id"`
	AccountID         int64             `json:"account_id"`
}

// Card is the response body for a card. CVV is only set on issuance.
type Card struct {
	IssuedAt        time.Time         `json:"issued_at"`
	CardType        models.CardType   `json:"card_type"`
	Number          string            `json:"number"`
	Expiry          string            `json:"expiry"`
	CVV             string            `json:"cvv,omitempty"`
	Status          models.CardStatus `json:"status"`
	CreditLimit     string            `json:"credit_limit"`
	AvailableCredit string            `json:"available_credit"`
	UsedCredit      string            `json:"used_credit"`
	AnnualFee       string            `json:"annual_fee"`
	RewardRate      string            `json:"reward_rate"`
	RewardsEarned   string            `json:"rewards_earned"`
	ID              int64             `json:"id"`
	AccountID       int64             `json:"account_id"`
}

// Summary is the response body for the dashboard totals
type Summary struct {
	TotalBalance           string `json:"total_balance"`
	OutstandingLoanBalance string `json:"outstanding_loan_balance"`
	TotalAccounts          int    `json:"total_accounts"`
	TotalTransactions      int    `json:"total_transactions"`
	ActiveLoans            int    `json:"active_loans"`
	ActiveCards            int    `json:"active_cards"`
}

// Health is the response body of the health check
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Money renders an amount with exactly two fraction digits
func Money(d decimal.Decimal) string {
	return d.StringFixed(models.MoneyPlaces)
}

func NewAccount(a *models.Account) Account {
	return Account{
		ID:          a.ID,
		HolderName:  a.HolderName,
		AccountType: a.Type,
		Balance:     Money(a.Balance),
		CreatedAt:   a.CreatedAt,
	}
}

func NewTransaction(e *models.LedgerEntry) Transaction {
	return Transaction{
		ID:                   e.ID,
		AccountID:            e.AccountID,
		Kind:                 e.Kind,
		Amount:               Money(e.Amount),
		Description:          e.Description,
		CounterpartAccountID: e.CounterpartAccountID,
		LoanID:               e.LoanID,
		CardID:               e.CardID,
		Timestamp:            e.Timestamp,
	}
}

func NewTransactions(entries []*models.LedgerEntry) []Transaction {
	out := make([]Transaction, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewTransaction(e))
	}
	return out
}

func NewLoanQuote(loanType models.LoanType, principal decimal.Decimal, termYears int, q *models.LoanQuote) LoanQuote {
	return LoanQuote{
		LoanType:          loanType,
		Principal:         Money(principal),
		TermYears:         termYears,
		AnnualRatePercent: q.AnnualRatePercent.StringFixed(1),
		MonthlyPayment:    Money(q.MonthlyPayment),
		TotalRepayment:    Money(q.TotalRepayment),
		TotalInterest:     Money(q.TotalInterest),
	}
}

func NewLoan(l *models.Loan) Loan {
	return Loan{
		ID:                l.ID,
		AccountID:         l.AccountID,
		LoanType:          l.Type,
		Status:            l.Status,
		Principal:         Money(l.Principal),
		AnnualRatePercent: l.AnnualRatePercent.StringFixed(1),
		TermYears:         l.TermYears,
		MonthlyPayment:    Money(l.MonthlyPayment),
		TotalRepayment:    Money(l.TotalRepayment),
		TotalInterest:     Money(l.TotalInterest),
		RemainingBalance:  Money(l.RemainingBalance),
		PaidPercent:       l.PaidPercent().StringFixed(1),
		OriginatedAt:      l.OriginatedAt,
		NextPaymentDate:   l.NextPaymentDate,
	}
}

// NewCard renders a card without its CVV
func NewCard(c *models.Card) Card {
	return Card{
		ID:              c.ID,
		AccountID:       c.AccountID,
		CardType:        c.Type,
		Number:          c.FormattedNumber(),
		Expiry:          c.ExpiryString(),
		Status:          c.Status,
		CreditLimit:     Money(c.CreditLimit),
		AvailableCredit: Money(c.AvailableCredit),
		UsedCredit:      Money(c.UsedCredit),
		AnnualFee:       Money(c.AnnualFee),
		RewardRate:      c.RewardRate.StringFixed(1),
		RewardsEarned:   Money(c.RewardsEarned),
		IssuedAt:        c.IssuedAt,
	}
}

// NewIssuedCard renders a freshly issued card, CVV included
func NewIssuedCard(c *models.Card) Card {
	out := NewCard(c)
	out.CVV = c.CVV
	return out
}

func NewSummary(s *models.Summary) Summary {
	return Summary{
		TotalAccounts:          s.TotalAccounts,
		TotalBalance:           Money(s.TotalBalance),
		TotalTransactions:      s.TotalTransactions,
		ActiveLoans:            s.ActiveLoans,
		OutstandingLoanBalance: Money(s.OutstandingLoanBalance),
		ActiveCards:            s.ActiveCards,
	}
}
