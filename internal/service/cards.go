package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

const (
	cardValidityYears = 5
	maxNumberAttempts = 10
)

// cardTier holds the fixed terms of a card product
type cardTier struct {
	creditLimit decimal.Decimal
	annualFee   decimal.Decimal
	rewardRate  decimal.Decimal
}

var cardTiers = map[models.CardType]cardTier{
	models.CardTypeCredit: {
		creditLimit: decimal.NewFromInt(5000),
		annualFee:   decimal.NewFromInt(50),
		rewardRate:  decimal.RequireFromString("1.0"),
	},
	models.CardTypeGold: {
		creditLimit: decimal.NewFromInt(15000),
		annualFee:   decimal.NewFromInt(150),
		rewardRate:  decimal.RequireFromString("2.0"),
	},
	models.CardTypePlatinum: {
		creditLimit: decimal.NewFromInt(30000),
		annualFee:   decimal.NewFromInt(300),
		rewardRate:  decimal.RequireFromString("3.0"),
	},
}

// CardEngine issues cards and keeps each credit line reconciled with its account
type CardEngine struct {
	accounts  Balances
	ledger    *TransactionLedger
	ids       *IDAllocator
	generator CardNumberGenerator
	now       func() time.Time

	mu     sync.RWMutex
	cards  map[int64]*models.Card
	order  []int64
	issued map[string]struct{}
}

// NewCardEngine creates a CardEngine with no cards
func NewCardEngine(
	accounts Balances,
	ledger *TransactionLedger,
	ids *IDAllocator,
	generator CardNumberGenerator,
	now func() time.Time,
) *CardEngine {
	return &CardEngine{
		accounts:  accounts,
		ledger:    ledger,
		ids:       ids,
		generator: generator,
		now:       now,
		cards:     make(map[int64]*models.Card),
		issued:    make(map[string]struct{}),
	}
}

// Issue creates an active card of the given tier bound to an account. Debit
// cards take the account balance at issuance as their limit.
func (e *CardEngine) Issue(accountID int64, cardType models.CardType) (*models.Card, error) {
	if _, err := e.accounts.Get(accountID); err != nil {
		return nil, err
	}

	tier, ok := cardTiers[cardType]
	if !ok && cardType != models.CardTypeDebit {
		return nil, validationError("unknown card type %q", cardType)
	}

	unlock := e.accounts.Lock(accountID)
	defer unlock()

	if cardType == models.CardTypeDebit {
		account, err := e.accounts.Get(accountID)
		if err != nil {
			return nil, err
		}
		tier = cardTier{
			creditLimit: account.Balance,
			annualFee:   decimal.Zero,
			rewardRate:  decimal.Zero,
		}
	}

	cvv, err := e.generator.CVV()
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to generate cvv", Err: err}
	}
	if err := ValidateCVV(cvv); err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "generated cvv is malformed", Err: err}
	}

	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	number, err := e.uniqueNumber()
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		ID:              e.ids.Next(ClassCard),
		AccountID:       accountID,
		Type:            cardType,
		Number:          number,
		CVV:             cvv,
		Expiry:          now.AddDate(cardValidityYears, 0, 0),
		CreditLimit:     tier.creditLimit,
		AvailableCredit: tier.creditLimit,
		UsedCredit:      decimal.Zero,
		AnnualFee:       tier.annualFee,
		RewardRate:      tier.rewardRate,
		RewardsEarned:   decimal.Zero,
		Status:          models.CardStatusActive,
		IssuedAt:        now,
	}

	e.cards[card.ID] = card
	e.order = append(e.order, card.ID)
	e.issued[number] = struct{}{}

	cp := *card
	return &cp, nil
}

// uniqueNumber draws numbers until one has not been issued before; the caller holds e.mu
func (e *CardEngine) uniqueNumber() (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := e.generator.CardNumber()
		if err != nil {
			return "", &ServiceError{Code: ErrCodeInternalError, Message: "failed to generate card number", Err: err}
		}
		if err := ValidateLuhn(number); err != nil || len(number) != cardNumberLength {
			return "", &ServiceError{Code: ErrCodeInternalError, Message: "generated card number is malformed", Err: err}
		}
		if _, taken := e.issued[number]; !taken {
			return number, nil
		}
	}

	return "", &ServiceError{
		Code:    ErrCodeInternalError,
		Message: fmt.Sprintf("no unique card number after %d attempts", maxNumberAttempts),
	}
}

// Purchase charges amount against the card's credit line. Debit cards also
// debit the linked account and record a ledger entry; other tiers carry the
// obligation on the card until it is paid.
func (e *CardEngine) Purchase(cardID int64, amount decimal.Decimal) (*models.Card, error) {
	card, _, err := e.purchase(cardID, amount)
	return card, err
}

func (e *CardEngine) purchase(cardID int64, amount decimal.Decimal) (*models.Card, *models.LedgerEntry, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, nil, validationError("%s", err.Error())
	}

	card, err := e.Get(cardID)
	if err != nil {
		return nil, nil, err
	}

	unlock := e.accounts.Lock(card.AccountID)
	defer unlock()

	card, err = e.usableCard(cardID)
	if err != nil {
		return nil, nil, err
	}

	if amount.GreaterThan(card.AvailableCredit) {
		return nil, nil, &ServiceError{
			Code:    ErrCodeInsufficientCredit,
			Message: fmt.Sprintf("insufficient credit on card %d", cardID),
		}
	}

	var entry *models.LedgerEntry
	if card.IsDebit() {
		description := fmt.Sprintf("Card purchase - %s Card #%d", card.Type, cardID)
		id := cardID
		entry, err = e.ledger.withdraw(card.AccountID, amount, description, entryRef{cardID: &id})
		if err != nil {
			return nil, nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored := e.cards[cardID]
	stored.UsedCredit = stored.UsedCredit.Add(amount)
	stored.AvailableCredit = stored.AvailableCredit.Sub(amount)
	stored.RewardsEarned = stored.RewardsEarned.Add(models.Percent(amount, stored.RewardRate))

	cp := *stored
	return &cp, entry, nil
}

// Pay settles outstanding card balance from the linked account. The applied
// amount is capped at what is owed; the account must still cover the full
// requested amount.
func (e *CardEngine) Pay(cardID int64, amount decimal.Decimal) (*models.Card, error) {
	card, _, err := e.pay(cardID, amount)
	return card, err
}

func (e *CardEngine) pay(cardID int64, amount decimal.Decimal) (*models.Card, *models.LedgerEntry, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, nil, validationError("%s", err.Error())
	}

	card, err := e.Get(cardID)
	if err != nil {
		return nil, nil, err
	}

	unlock := e.accounts.Lock(card.AccountID)
	defer unlock()

	card, err = e.usableCard(cardID)
	if err != nil {
		return nil, nil, err
	}

	account, err := e.accounts.Get(card.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, nil, insufficientFundsError(account.ID)
	}

	applied := decimal.Min(amount, card.UsedCredit)
	if !applied.IsPositive() {
		return card, nil, nil
	}

	description := fmt.Sprintf("Card payment - %s Card #%d", card.Type, cardID)
	id := cardID
	entry, err := e.ledger.withdraw(card.AccountID, applied, description, entryRef{cardID: &id})
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored := e.cards[cardID]
	stored.UsedCredit = stored.UsedCredit.Sub(applied)
	stored.AvailableCredit = stored.AvailableCredit.Add(applied)

	cp := *stored
	return &cp, entry, nil
}

// SetStatus activates or deactivates a card
func (e *CardEngine) SetStatus(cardID int64, status models.CardStatus) (*models.Card, error) {
	if status != models.CardStatusActive && status != models.CardStatusInactive {
		return nil, validationError("unknown card status %q", status)
	}

	card, err := e.Get(cardID)
	if err != nil {
		return nil, err
	}

	unlock := e.accounts.Lock(card.AccountID)
	defer unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	stored := e.cards[cardID]
	stored.Status = status

	cp := *stored
	return &cp, nil
}

// usableCard re-reads a card under the account lock and checks it can transact
func (e *CardEngine) usableCard(cardID int64) (*models.Card, error) {
	card, err := e.Get(cardID)
	if err != nil {
		return nil, err
	}

	if card.Status != models.CardStatusActive {
		return nil, &ServiceError{
			Code:    ErrCodeInactiveCard,
			Message: fmt.Sprintf("card %d is not active", cardID),
		}
	}

	if err := ValidateExpiry(card.Expiry, e.now()); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInactiveCard,
			Message: fmt.Sprintf("card %d is not active", cardID),
			Err:     err,
		}
	}

	return card, nil
}

// Get returns a snapshot of a card
func (e *CardEngine) Get(cardID int64) (*models.Card, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	card, ok := e.cards[cardID]
	if !ok {
		return nil, notFoundError("card", cardID)
	}

	cp := *card
	return &cp, nil
}

// List returns cards in issuance order. A zero accountID matches every
// account; activeOnly drops inactive cards.
func (e *CardEngine) List(accountID int64, activeOnly bool) []*models.Card {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*models.Card, 0, len(e.order))
	for _, id := range e.order {
		card := e.cards[id]
		if accountID != 0 && card.AccountID != accountID {
			continue
		}
		if activeOnly && card.Status != models.CardStatusActive {
			continue
		}
		cp := *card
		out = append(out, &cp)
	}
	return out
}

// ActiveCount returns the number of active cards
func (e *CardEngine) ActiveCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, card := range e.cards {
		if card.Status == models.CardStatusActive {
			count++
		}
	}
	return count
}
