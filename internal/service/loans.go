package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// paymentInterval is the spacing between scheduled loan payments
const paymentInterval = 30 * 24 * time.Hour

var (
	defaultLoanRate = decimal.RequireFromString("8.0")

	loanRates = map[models.LoanType]decimal.Decimal{
		models.LoanTypePersonal: decimal.RequireFromString("8.5"),
		models.LoanTypeHome:     decimal.RequireFromString("6.5"),
		models.LoanTypeAuto:     decimal.RequireFromString("7.0"),
		models.LoanTypeBusiness: decimal.RequireFromString("9.5"),
	}

	monthsPerYear = decimal.NewFromInt(12)
	percentScale  = decimal.NewFromInt(100)
)

// AnnualRate returns the fixed APR for a loan type
func AnnualRate(loanType models.LoanType) decimal.Decimal {
	if rate, ok := loanRates[loanType]; ok {
		return rate
	}
	return defaultLoanRate
}

// LoanEngine prices, originates and services fixed-rate amortized loans
type LoanEngine struct {
	accounts Balances
	ledger   *TransactionLedger
	ids      *IDAllocator
	now      func() time.Time

	mu    sync.RWMutex
	loans map[int64]*models.Loan
	order []int64
}

// NewLoanEngine creates a LoanEngine with no loans
func NewLoanEngine(accounts Balances, ledger *TransactionLedger, ids *IDAllocator, now func() time.Time) *LoanEngine {
	return &LoanEngine{
		accounts: accounts,
		ledger:   ledger,
		ids:      ids,
		now:      now,
		loans:    make(map[int64]*models.Loan),
	}
}

// Quote computes the amortization terms for a principal over termYears
func (e *LoanEngine) Quote(loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.LoanQuote, error) {
	if err := ValidateAmount(principal); err != nil {
		return nil, validationError("invalid principal: %s", err.Error())
	}
	if err := ValidateTerm(termYears); err != nil {
		return nil, validationError("%s", err.Error())
	}

	rate := AnnualRate(loanType)
	payments := int64(termYears) * 12

	payment := models.RoundMoney(monthlyPayment(principal, rate, payments))
	total := payment.Mul(decimal.NewFromInt(payments))

	return &models.LoanQuote{
		AnnualRatePercent: rate,
		MonthlyPayment:    payment,
		TotalRepayment:    total,
		TotalInterest:     total.Sub(principal),
	}, nil
}

// monthlyPayment applies the standard annuity formula
// P * r * (1+r)^n / ((1+r)^n - 1) with r the monthly rate
func monthlyPayment(principal, annualRatePercent decimal.Decimal, payments int64) decimal.Decimal {
	n := decimal.NewFromInt(payments)
	r := annualRatePercent.Div(percentScale).Div(monthsPerYear)
	if r.IsZero() {
		return principal.Div(n)
	}

	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// Originate books a new loan and disburses the principal into the account
func (e *LoanEngine) Originate(accountID int64, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.Loan, error) {
	loan, _, err := e.originate(accountID, loanType, principal, termYears)
	return loan, err
}

func (e *LoanEngine) originate(accountID int64, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.Loan, *models.LedgerEntry, error) {
	if _, err := e.accounts.Get(accountID); err != nil {
		return nil, nil, err
	}

	quote, err := e.Quote(loanType, principal, termYears)
	if err != nil {
		return nil, nil, err
	}

	unlock := e.accounts.Lock(accountID)
	defer unlock()

	now := e.now()
	loan := &models.Loan{
		ID:                e.ids.Next(ClassLoan),
		AccountID:         accountID,
		Type:              loanType,
		Principal:         principal,
		AnnualRatePercent: quote.AnnualRatePercent,
		TermYears:         termYears,
		MonthlyPayment:    quote.MonthlyPayment,
		TotalRepayment:    quote.TotalRepayment,
		TotalInterest:     quote.TotalInterest,
		RemainingBalance:  principal,
		Status:            models.LoanStatusActive,
		OriginatedAt:      now,
		NextPaymentDate:   now.Add(paymentInterval),
	}

	loanID := loan.ID
	description := fmt.Sprintf("Loan disbursement - %s Loan #%d", loanType, loanID)
	entry, err := e.ledger.deposit(accountID, principal, description, entryRef{loanID: &loanID})
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	e.loans[loan.ID] = loan
	e.order = append(e.order, loan.ID)
	e.mu.Unlock()

	cp := *loan
	return &cp, entry, nil
}

// ApplyPayment debits the linked account and reduces the outstanding balance.
// Payments beyond the remaining balance are accepted and zero it.
func (e *LoanEngine) ApplyPayment(loanID int64, amount decimal.Decimal) (*models.Loan, error) {
	loan, _, err := e.applyPayment(loanID, amount)
	return loan, err
}

func (e *LoanEngine) applyPayment(loanID int64, amount decimal.Decimal) (*models.Loan, *models.LedgerEntry, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, nil, validationError("%s", err.Error())
	}

	loan, err := e.Get(loanID)
	if err != nil {
		return nil, nil, err
	}

	unlock := e.accounts.Lock(loan.AccountID)
	defer unlock()

	// Re-read under the account lock; a concurrent payment may have settled it.
	loan, err = e.Get(loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status == models.LoanStatusPaidOff {
		return nil, nil, &ServiceError{
			Code:    ErrCodeAlreadyPaidOff,
			Message: fmt.Sprintf("loan %d has already been paid off", loanID),
		}
	}

	description := fmt.Sprintf("Loan payment - %s Loan #%d", loan.Type, loanID)
	id := loanID
	entry, err := e.ledger.withdraw(loan.AccountID, amount, description, entryRef{loanID: &id})
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored := e.loans[loanID]
	remaining := stored.RemainingBalance.Sub(amount)
	if !remaining.IsPositive() {
		remaining = decimal.Zero
		stored.Status = models.LoanStatusPaidOff
	}
	stored.RemainingBalance = remaining
	stored.NextPaymentDate = stored.NextPaymentDate.Add(paymentInterval)

	cp := *stored
	return &cp, entry, nil
}

// Get returns a snapshot of a loan
func (e *LoanEngine) Get(loanID int64) (*models.Loan, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	loan, ok := e.loans[loanID]
	if !ok {
		return nil, notFoundError("loan", loanID)
	}

	cp := *loan
	return &cp, nil
}

// List returns loans in origination order. A zero accountID matches every
// account; activeOnly drops paid-off loans.
func (e *LoanEngine) List(accountID int64, activeOnly bool) []*models.Loan {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*models.Loan, 0, len(e.order))
	for _, id := range e.order {
		loan := e.loans[id]
		if accountID != 0 && loan.AccountID != accountID {
			continue
		}
		if activeOnly && loan.Status != models.LoanStatusActive {
			continue
		}
		cp := *loan
		out = append(out, &cp)
	}
	return out
}

// Outstanding returns the number of active loans and their combined remaining balance
func (e *LoanEngine) Outstanding() (int, decimal.Decimal) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	total := decimal.Zero
	for _, loan := range e.loans {
		if loan.Status == models.LoanStatusActive {
			count++
			total = total.Add(loan.RemainingBalance)
		}
	}
	return count, total
}
