package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLoanOfficer handles loan pricing, origination and repayment. Construct it with NewMockLoanOfficer.
type MockLoanOfficer struct {
	mock.Mock
}

// QuoteLoan provides a mock function with given fields: ctx, loanType, principal, termYears
func (_m *MockLoanOfficer) QuoteLoan(ctx context.Context, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.LoanQuote, error) {
	ret := _m.Called(ctx, loanType, principal, termYears)

	if len(ret) == 0 {
		panic("no return value specified for QuoteLoan")
	}

	var r0 *models.LoanQuote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LoanQuote)
	}

	return r0, ret.Error(1)
}

// OriginateLoan provides a mock function with given fields: ctx, accountID, loanType, principal, termYears
func (_m *MockLoanOfficer) OriginateLoan(ctx context.Context, accountID int64, loanType models.LoanType, principal decimal.Decimal, termYears int) (*models.Loan, error) {
	ret := _m.Called(ctx, accountID, loanType, principal, termYears)

	if len(ret) == 0 {
		panic("no return value specified for OriginateLoan")
	}

	var r0 *models.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Loan)
	}

	return r0, ret.Error(1)
}

// PayLoan provides a mock function with given fields: ctx, loanID, amount
func (_m *MockLoanOfficer) PayLoan(ctx context.Context, loanID int64, amount decimal.Decimal) (*models.Loan, error) {
	ret := _m.Called(ctx, loanID, amount)

	if len(ret) == 0 {
		panic("no return value specified for PayLoan")
	}

	var r0 *models.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Loan)
	}

	return r0, ret.Error(1)
}

// GetLoan provides a mock function with given fields: ctx, loanID
func (_m *MockLoanOfficer) GetLoan(ctx context.Context, loanID int64) (*models.Loan, error) {
	ret := _m.Called(ctx, loanID)

	if len(ret) == 0 {
		panic("no return value specified for GetLoan")
	}

	var r0 *models.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Loan)
	}

	return r0, ret.Error(1)
}

// ListLoans provides a mock function with given fields: ctx, accountID, activeOnly
func (_m *MockLoanOfficer) ListLoans(ctx context.Context, accountID int64, activeOnly bool) ([]*models.Loan, error) {
	ret := _m.Called(ctx, accountID, activeOnly)

	if len(ret) == 0 {
		panic("no return value specified for ListLoans")
	}

	var r0 []*models.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Loan)
	}

	return r0, ret.Error(1)
}

// NewMockLoanOfficer creates a new instance of MockLoanOfficer. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockLoanOfficer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoanOfficer {
	m := &MockLoanOfficer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
