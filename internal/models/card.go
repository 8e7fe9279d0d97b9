package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CardType is the product tier of a card
type CardType string

const (
	CardTypeDebit    CardType = "Debit"
	CardTypeCredit   CardType = "Credit"
	CardTypeGold     CardType = "Gold"
	CardTypePlatinum CardType = "Platinum"
)

// CardStatus represents whether a card accepts purchases and payments
type CardStatus string

const (
	CardStatusActive   CardStatus = "Active"
	CardStatusInactive CardStatus = "Inactive"
)

// Card is a debit or credit-tier card bound to an account.
//
// UsedCredit + AvailableCredit always equals CreditLimit.
type Card struct {
	IssuedAt        time.Time       `json:"issued_at"`
	Expiry          time.Time       `json:"expiry"`
	Number          string          `json:"number"`
	CVV             string          `json:"-"`
	Type            CardType        `json:"card_type"`
	Status          CardStatus      `json:"status"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	UsedCredit      decimal.Decimal `json:"used_credit"`
	AnnualFee       decimal.Decimal `json:"annual_fee"`
	RewardRate      decimal.Decimal `json:"reward_rate"`
	RewardsEarned   decimal.Decimal `json:"rewards_earned"`
	ID              int64           `json:"id"`
	AccountID       int64           `json:"account_id"`
}

// IsDebit reports whether purchases on the card debit the linked account directly
func (c *Card) IsDebit() bool {
	return c.Type == CardTypeDebit
}

// ExpiryString renders the expiry as MM/YY
func (c *Card) ExpiryString() string {
	return c.Expiry.Format("01/06")
}

// FormattedNumber groups the card number in blocks of four digits
func (c *Card) FormattedNumber() string {
	var b strings.Builder
	for i, r := range c.Number {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
