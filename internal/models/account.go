// Package models defines the domain records shared by the engine, the repositories and the API layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product an account was opened as
type AccountType string

const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
	AccountTypeBusiness AccountType = "Business"
)

// Account is a customer account and its current balance
type Account struct {
	CreatedAt  time.Time       `json:"created_at"`
	HolderName string          `json:"holder_name"`
	Type       AccountType     `json:"account_type"`
	Balance    decimal.Decimal `json:"balance"`
	ID         int64           `json:"id"`
}

// Valid reports whether t is one of the offered account products
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness:
		return true
	}
	return false
}
