package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType selects the fixed annual rate a loan is priced at
type LoanType string

const (
	LoanTypePersonal LoanType = "Personal"
	LoanTypeHome     LoanType = "Home"
	LoanTypeAuto     LoanType = "Auto"
	LoanTypeBusiness LoanType = "Business"
)

// LoanStatus represents the repayment state of a loan
type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "Active"
	LoanStatusPaidOff LoanStatus = "PaidOff"
)

// LoanQuote holds the amortization terms for a principal over a term
type LoanQuote struct {
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalRepayment    decimal.Decimal `json:"total_repayment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
}

// Loan is a fixed-rate installment loan disbursed into an account.
//
// RemainingBalance only decreases, never below zero, and Status is PaidOff
// exactly when RemainingBalance is zero.
type Loan struct {
	OriginatedAt      time.Time       `json:"originated_at"`
	NextPaymentDate   time.Time       `json:"next_payment_date"`
	Type              LoanType        `json:"loan_type"`
	Status            LoanStatus      `json:"status"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalRepayment    decimal.Decimal `json:"total_repayment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	TermYears         int             `json:"term_years"`
	ID                int64           `json:"id"`
	AccountID         int64           `json:"account_id"`
}

// PaidPercent returns the share of principal already repaid, to one decimal place
func (l *Loan) PaidPercent() decimal.Decimal {
	if !l.Principal.IsPositive() {
		return decimal.Zero
	}
	return l.Principal.Sub(l.RemainingBalance).Mul(hundred).Div(l.Principal).Round(1)
}
