package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTeller handles deposits, withdrawals and transfers. Construct it with NewMockTeller.
type MockTeller struct {
	mock.Mock
}

// Deposit provides a mock function with given fields: ctx, accountID, amount, description
func (_m *MockTeller) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	ret := _m.Called(ctx, accountID, amount, description)

	if len(ret) == 0 {
		panic("no return value specified for Deposit")
	}

	var r0 *models.LedgerEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LedgerEntry)
	}

	return r0, ret.Error(1)
}

// Withdraw provides a mock function with given fields: ctx, accountID, amount, description
func (_m *MockTeller) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	ret := _m.Called(ctx, accountID, amount, description)

	if len(ret) == 0 {
		panic("no return value specified for Withdraw")
	}

	var r0 *models.LedgerEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LedgerEntry)
	}

	return r0, ret.Error(1)
}

// Transfer provides a mock function with given fields: ctx, fromID, toID, amount
func (_m *MockTeller) Transfer(ctx context.Context, fromID int64, toID int64, amount decimal.Decimal) (*models.TransferEntries, error) {
	ret := _m.Called(ctx, fromID, toID, amount)

	if len(ret) == 0 {
		panic("no return value specified for Transfer")
	}

	var r0 *models.TransferEntries
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TransferEntries)
	}

	return r0, ret.Error(1)
}

// ListTransactions provides a mock function with given fields: ctx, accountID
func (_m *MockTeller) ListTransactions(ctx context.Context, accountID int64) ([]*models.LedgerEntry, error) {
	ret := _m.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for ListTransactions")
	}

	var r0 []*models.LedgerEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.LedgerEntry)
	}

	return r0, ret.Error(1)
}

// ListAllTransactions provides a mock function with given fields: ctx
func (_m *MockTeller) ListAllTransactions(ctx context.Context) ([]*models.LedgerEntry, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListAllTransactions")
	}

	var r0 []*models.LedgerEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.LedgerEntry)
	}

	return r0, ret.Error(1)
}

// NewMockTeller creates a new instance of MockTeller. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockTeller(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTeller {
	m := &MockTeller{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
