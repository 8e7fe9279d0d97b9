package service

import (
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// Engine wires the components that share one consistency domain: account
// balances. It is constructed once per process (or per test) and every
// component reaches accounts only through the Balances capability.
type Engine struct {
	IDs      *IDAllocator
	Accounts *AccountStore
	Ledger   *TransactionLedger
	Loans    *LoanEngine
	Cards    *CardEngine
}

// NewEngine builds an empty engine
func NewEngine(ids *IDAllocator, generator CardNumberGenerator, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	if generator == nil {
		generator = SecureCardNumbers{}
	}

	accounts := NewAccountStore(ids, now)
	ledger := NewTransactionLedger(accounts, ids, now)

	return &Engine{
		IDs:      ids,
		Accounts: accounts,
		Ledger:   ledger,
		Loans:    NewLoanEngine(accounts, ledger, ids, now),
		Cards:    NewCardEngine(accounts, ledger, ids, generator, now),
	}
}

// OpenAccount creates an account and credits the opening deposit through the
// ledger. A zero deposit opens the account without an entry.
func (e *Engine) OpenAccount(holderName string, accountType models.AccountType, initialDeposit decimal.Decimal) (*models.Account, *models.LedgerEntry, error) {
	if err := ValidateInitialDeposit(initialDeposit); err != nil {
		return nil, nil, validationError("%s", err.Error())
	}

	account, err := e.Accounts.Open(holderName, accountType)
	if err != nil {
		return nil, nil, err
	}

	if initialDeposit.IsZero() {
		return account, nil, nil
	}

	unlock := e.Accounts.Lock(account.ID)
	defer unlock()

	entry, err := e.Ledger.deposit(account.ID, initialDeposit, "Initial deposit", entryRef{})
	if err != nil {
		return nil, nil, err
	}

	account, err = e.Accounts.Get(account.ID)
	if err != nil {
		return nil, nil, err
	}

	return account, entry, nil
}

// Summary returns the dashboard totals
func (e *Engine) Summary() *models.Summary {
	activeLoans, outstanding := e.Loans.Outstanding()

	return &models.Summary{
		TotalAccounts:          len(e.Accounts.List()),
		TotalBalance:           e.Accounts.TotalBalance(),
		TotalTransactions:      e.Ledger.Count(),
		ActiveLoans:            activeLoans,
		OutstandingLoanBalance: outstanding,
		ActiveCards:            e.Cards.ActiveCount(),
	}
}
