package models

import "github.com/shopspring/decimal"

// Summary aggregates the back-office dashboard totals
type Summary struct {
	TotalBalance           decimal.Decimal `json:"total_balance"`
	OutstandingLoanBalance decimal.Decimal `json:"outstanding_loan_balance"`
	TotalAccounts          int             `json:"total_accounts"`
	TotalTransactions      int             `json:"total_transactions"`
	ActiveLoans            int             `json:"active_loans"`
	ActiveCards            int             `json:"active_cards"`
}
