package service

import (
	"strings"
	"sync"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// AccountStore owns every account and is the only place balances change
type AccountStore struct {
	ids   *IDAllocator
	now   func() time.Time
	locks *accountLocks

	mu       sync.RWMutex
	accounts map[int64]*models.Account
	order    []int64
}

// NewAccountStore creates an empty AccountStore
func NewAccountStore(ids *IDAllocator, now func() time.Time) *AccountStore {
	return &AccountStore{
		ids:      ids,
		now:      now,
		locks:    newAccountLocks(),
		accounts: make(map[int64]*models.Account),
	}
}

// Open creates an account with a zero balance. Opening deposits are credited
// through the ledger like any other movement.
func (s *AccountStore) Open(holderName string, accountType models.AccountType) (*models.Account, error) {
	if err := ValidateHolderName(holderName); err != nil {
		return nil, validationError("%s", err.Error())
	}
	if !accountType.Valid() {
		return nil, validationError("unknown account type %q", accountType)
	}

	account := &models.Account{
		ID:         s.ids.Next(ClassAccount),
		HolderName: strings.TrimSpace(holderName),
		Type:       accountType,
		Balance:    decimal.Zero,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.accounts[account.ID] = account
	s.order = append(s.order, account.ID)
	s.mu.Unlock()

	cp := *account
	return &cp, nil
}

// Get returns a snapshot of an account
func (s *AccountStore) Get(id int64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, notFoundError("account", id)
	}

	cp := *account
	return &cp, nil
}

// Exists reports whether an account is known
func (s *AccountStore) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok
}

// List returns snapshots of every account in opening order
func (s *AccountStore) List() []*models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Account, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.accounts[id]
		out = append(out, &cp)
	}
	return out
}

// TotalBalance sums every account balance
func (s *AccountStore) TotalBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, account := range s.accounts {
		total = total.Add(account.Balance)
	}
	return total
}

// Credit adds amount to an account balance
func (s *AccountStore) Credit(id int64, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return validationError("%s", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return notFoundError("account", id)
	}

	account.Balance = account.Balance.Add(amount)
	return nil
}

// Debit subtracts amount from an account balance, refusing to go negative
func (s *AccountStore) Debit(id int64, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return validationError("%s", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return notFoundError("account", id)
	}

	if amount.GreaterThan(account.Balance) {
		return insufficientFundsError(id)
	}

	account.Balance = account.Balance.Sub(amount)
	return nil
}

// Lock serializes a unit of work over the given accounts
func (s *AccountStore) Lock(ids ...int64) (unlock func()) {
	return s.locks.lock(ids...)
}
