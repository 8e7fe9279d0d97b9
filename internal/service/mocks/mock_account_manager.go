// Package mocks holds testify mocks for the service and middleware interfaces.
package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountManager handles account lifecycle and reporting. Construct it with NewMockAccountManager.
type MockAccountManager struct {
	mock.Mock
}

// OpenAccount provides a mock function with given fields: ctx, holderName, accountType, initialDeposit
func (_m *MockAccountManager) OpenAccount(ctx context.Context, holderName string, accountType models.AccountType, initialDeposit decimal.Decimal) (*models.Account, error) {
	ret := _m.Called(ctx, holderName, accountType, initialDeposit)

	if len(ret) == 0 {
		panic("no return value specified for OpenAccount")
	}

	var r0 *models.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Account)
	}

	return r0, ret.Error(1)
}

// GetAccount provides a mock function with given fields: ctx, accountID
func (_m *MockAccountManager) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	ret := _m.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for GetAccount")
	}

	var r0 *models.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Account)
	}

	return r0, ret.Error(1)
}

// ListAccounts provides a mock function with given fields: ctx
func (_m *MockAccountManager) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListAccounts")
	}

	var r0 []*models.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Account)
	}

	return r0, ret.Error(1)
}

// Summary provides a mock function with given fields: ctx
func (_m *MockAccountManager) Summary(ctx context.Context) (*models.Summary, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Summary")
	}

	var r0 *models.Summary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Summary)
	}

	return r0, ret.Error(1)
}

// NewMockAccountManager creates a new instance of MockAccountManager. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockAccountManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountManager {
	m := &MockAccountManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
