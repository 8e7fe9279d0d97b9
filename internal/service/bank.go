package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/benx421/backoffice/internal/events"
	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// Bank is the request-facing front of the engine. Every mutation commits in
// the engine first; journaling and event publishing happen afterwards and
// their failures are logged without undoing the committed operation.
type Bank struct {
	engine    *Engine
	journal   Journal
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBank creates a bank over engine. journal and publisher may be nil.
func NewBank(engine *Engine, journal Journal, publisher EventPublisher, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bank{
		engine:    engine,
		journal:   journal,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// OpenAccount opens an account with an optional opening deposit
func (b *Bank) OpenAccount(ctx context.Context, holderName string, accountType models.AccountType, initialDeposit decimal.Decimal) (*models.Account, error) {
	account, entry, err := b.engine.OpenAccount(holderName, accountType, initialDeposit)
	if err != nil {
		b.logger.Warn("account opening rejected", "holder_name", holderName, "error", err)
		return nil, err
	}

	b.logger.Info("account opened",
		"account_id", account.ID,
		"account_type", account.Type,
		"initial_deposit", initialDeposit.StringFixed(models.MoneyPlaces))

	b.record(ctx, entry)
	b.publish(ctx, events.New(events.AccountOpened, account.ID, initialDeposit, account.CreatedAt).WithEntries(entry))

	return account, nil
}

// GetAccount returns a snapshot of one account
func (b *Bank) GetAccount(_ context.Context, accountID int64) (*models.Account, error) {
	return b.engine.Accounts.Get(accountID)
}

// ListAccounts returns every account in opening order
func (b *Bank) ListAccounts(_ context.Context) ([]*models.Account, error) {
	return b.engine.Accounts.List(), nil
}

// Summary returns the dashboard totals
func (b *Bank) Summary(_ context.Context) (*models.Summary, error) {
	return b.engine.Summary(), nil
}

// Deposit credits an account
func (b *Bank) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	entry, err := b.engine.Ledger.RecordDeposit(accountID, amount, description)
	if err != nil {
		b.logger.Warn("deposit rejected", "account_id", accountID, "error", err)
		return nil, err
	}

	b.logger.Info("deposit recorded", "account_id", accountID, "entry_id", entry.ID, "amount", entry.Amount.String())
	b.record(ctx, entry)
	b.publish(ctx, events.New(events.Deposited, accountID, amount, entry.Timestamp).WithEntries(entry))

	return entry, nil
}

// Withdraw debits an account
func (b *Bank) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	entry, err := b.engine.Ledger.RecordWithdraw(accountID, amount, description)
	if err != nil {
		b.logger.Warn("withdrawal rejected", "account_id", accountID, "error", err)
		return nil, err
	}

	b.logger.Info("withdrawal recorded", "account_id", accountID, "entry_id", entry.ID, "amount", entry.Amount.String())
	b.record(ctx, entry)
	b.publish(ctx, events.New(events.Withdrawn, accountID, amount, entry.Timestamp).WithEntries(entry))

	return entry, nil
}

// Transfer moves funds between two accounts
func (b *Bank) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*models.TransferEntries, error) {
	pair, err := b.engine.Ledger.RecordTransfer(fromID, toID, amount)
	if err != nil {
		b.logger.Warn("transfer rejected", "from_account_id", fromID, "to_account_id", toID, "error", err)
		return nil, err
	}

	b.logger.Info("transfer recorded",
		"from_account_id", fromID,
		"to_account_id", toID,
		"debit_entry_id", pair.Debit.ID,
		"credit_entry_id", pair.Credit.ID,
		"amount", pair.Credit.Amount.String())

	b.record(ctx, pair.Debit, pair.Credit)
	b.publish(ctx, events.New(events.Transferred, fromID, amount, pair.Debit.Timestamp).
		WithEntries(pair.Debit, pair.Credit).
		WithSubject(toID))

	return pair, nil
}

// ListTransactions returns an account's entries, newest first
func (b *Bank) ListTransactions(_ context.Context, accountID int64) ([]*models.LedgerEntry, error) {
	if !b.engine.Accounts.Exists(accountID) {
		return nil, notFoundError("account", accountID)
	}
	return b.engine.Ledger.ListForAccount(accountID), nil
}

// ListAllTransactions returns every entry in ledger order
func (b *Bank) ListAllTransactions(_ context.Context) ([]*models.LedgerEntry, error) {
	return b.engine.Ledger.ListAll(), nil
}

// QuoteLoan prices a loan without originating it
func (b *Bank) QuoteLoan(_ context.Context, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.LoanQuote, error) {
	return b.engine.Loans.Quote(loanType, principal, termYears)
}

// OriginateLoan creates a loan and disburses the principal into the account
func (b *Bank) OriginateLoan(ctx context.Context, accountID int64, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.Loan, error) {
	loan, entry, err := b.engine.Loans.originate(accountID, loanType, principal, termYears)
	if err != nil {
		b.logger.Warn("loan origination rejected", "account_id", accountID, "loan_type", loanType, "error", err)
		return nil, err
	}

	b.logger.Info("loan originated",
		"loan_id", loan.ID,
		"account_id", accountID,
		"principal", loan.Principal.String(),
		"monthly_payment", loan.MonthlyPayment.String())

	b.record(ctx, entry)
	b.publish(ctx, events.New(events.LoanOriginated, accountID, principal, loan.OriginatedAt).
		WithEntries(entry).
		WithSubject(loan.ID))

	return loan, nil
}

// PayLoan applies a repayment drawn from the loan's account
func (b *Bank) PayLoan(ctx context.Context, loanID int64, amount decimal.Decimal) (*models.Loan, error) {
	loan, entry, err := b.engine.Loans.applyPayment(loanID, amount)
	if err != nil {
		b.logger.Warn("loan payment rejected", "loan_id", loanID, "error", err)
		return nil, err
	}

	b.logger.Info("loan payment applied",
		"loan_id", loanID,
		"amount", amount.String(),
		"remaining_balance", loan.RemainingBalance.String(),
		"status", loan.Status)

	b.record(ctx, entry)
	b.publish(ctx, events.New(events.LoanPayment, loan.AccountID, amount, entry.Timestamp).
		WithEntries(entry).
		WithSubject(loanID).
		WithDetail(string(loan.Status)))

	return loan, nil
}

// GetLoan returns a snapshot of one loan
func (b *Bank) GetLoan(_ context.Context, loanID int64) (*models.Loan, error) {
	return b.engine.Loans.Get(loanID)
}

// ListLoans returns loans, optionally narrowed to one account and to active loans.
// An accountID of zero lists every account.
func (b *Bank) ListLoans(_ context.Context, accountID int64, activeOnly bool) ([]*models.Loan, error) {
	if accountID != 0 && !b.engine.Accounts.Exists(accountID) {
		return nil, notFoundError("account", accountID)
	}
	return b.engine.Loans.List(accountID, activeOnly), nil
}

// IssueCard issues a card against an account
func (b *Bank) IssueCard(ctx context.Context, accountID int64, cardType models.CardType) (*models.Card, error) {
	card, err := b.engine.Cards.Issue(accountID, cardType)
	if err != nil {
		b.logger.Warn("card issuance rejected", "account_id", accountID, "card_type", cardType, "error", err)
		return nil, err
	}

	b.logger.Info("card issued",
		"card_id", card.ID,
		"account_id", accountID,
		"card_type", card.Type,
		"credit_limit", card.CreditLimit.String())

	b.publish(ctx, events.New(events.CardIssued, accountID, card.CreditLimit, card.IssuedAt).
		WithSubject(card.ID).
		WithDetail(string(card.Type)))

	return card, nil
}

// CardPurchase charges a purchase to a card
func (b *Bank) CardPurchase(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error) {
	card, entry, err := b.engine.Cards.purchase(cardID, amount)
	if err != nil {
		b.logger.Warn("card purchase rejected", "card_id", cardID, "error", err)
		return nil, err
	}

	b.logger.Info("card purchase recorded",
		"card_id", cardID,
		"amount", amount.String(),
		"available_credit", card.AvailableCredit.String())

	b.record(ctx, entry)
	b.publish(ctx, events.New(events.CardPurchase, card.AccountID, amount, b.now()).
		WithEntries(entry).
		WithSubject(cardID))

	return card, nil
}

// CardPayment settles used credit on a card from its account
func (b *Bank) CardPayment(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error) {
	card, entry, err := b.engine.Cards.pay(cardID, amount)
	if err != nil {
		b.logger.Warn("card payment rejected", "card_id", cardID, "error", err)
		return nil, err
	}

	if entry == nil {
		b.logger.Info("card payment skipped, nothing owed", "card_id", cardID)
		return card, nil
	}

	b.logger.Info("card payment applied", "card_id", cardID, "amount", entry.Amount.Neg().String(), "used_credit", card.UsedCredit.String())
	b.record(ctx, entry)
	b.publish(ctx, events.New(events.CardPayment, card.AccountID, entry.Amount.Neg(), entry.Timestamp).
		WithEntries(entry).
		WithSubject(cardID))

	return card, nil
}

// SetCardStatus activates or deactivates a card
func (b *Bank) SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) (*models.Card, error) {
	card, err := b.engine.Cards.SetStatus(cardID, status)
	if err != nil {
		return nil, err
	}

	b.logger.Info("card status changed", "card_id", cardID, "status", status)
	b.publish(ctx, events.New(events.CardStatus, card.AccountID, decimal.Zero, b.now()).
		WithSubject(cardID).
		WithDetail(string(status)))

	return card, nil
}

// GetCard returns a snapshot of one card
func (b *Bank) GetCard(_ context.Context, cardID int64) (*models.Card, error) {
	return b.engine.Cards.Get(cardID)
}

// ListCards returns cards, optionally narrowed to one account and to active cards.
// An accountID of zero lists every account.
func (b *Bank) ListCards(_ context.Context, accountID int64, activeOnly bool) ([]*models.Card, error) {
	if accountID != 0 && !b.engine.Accounts.Exists(accountID) {
		return nil, notFoundError("account", accountID)
	}
	return b.engine.Cards.List(accountID, activeOnly), nil
}

func (b *Bank) record(ctx context.Context, entries ...*models.LedgerEntry) {
	if b.journal == nil {
		return
	}

	var committed []*models.LedgerEntry
	for _, e := range entries {
		if e != nil {
			committed = append(committed, e)
		}
	}
	if len(committed) == 0 {
		return
	}

	if err := b.journal.Append(ctx, committed...); err != nil {
		b.logger.Error("failed to journal ledger entries", "count", len(committed), "error", err)
	}
}

func (b *Bank) publish(ctx context.Context, event *events.Event) {
	if b.publisher == nil {
		return
	}

	if err := b.publisher.Publish(ctx, event); err != nil {
		b.logger.Error("failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}
