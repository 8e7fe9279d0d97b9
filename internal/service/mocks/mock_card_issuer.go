package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCardIssuer handles card issuance, purchases and settlement. Construct it with NewMockCardIssuer.
type MockCardIssuer struct {
	mock.Mock
}

// IssueCard provides a mock function with given fields: ctx, accountID, cardType
func (_m *MockCardIssuer) IssueCard(ctx context.Context, accountID int64, cardType models.CardType) (*models.Card, error) {
	ret := _m.Called(ctx, accountID, cardType)

	if len(ret) == 0 {
		panic("no return value specified for IssueCard")
	}

	var r0 *models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Card)
	}

	return r0, ret.Error(1)
}

// CardPurchase provides a mock function with given fields: ctx, cardID, amount
func (_m *MockCardIssuer) CardPurchase(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error) {
	ret := _m.Called(ctx, cardID, amount)

	if len(ret) == 0 {
		panic("no return value specified for CardPurchase")
	}

	var r0 *models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Card)
	}

	return r0, ret.Error(1)
}

// CardPayment provides a mock function with given fields: ctx, cardID, amount
func (_m *MockCardIssuer) CardPayment(ctx context.Context, cardID int64, amount decimal.Decimal) (*models.Card, error) {
	ret := _m.Called(ctx, cardID, amount)

	if len(ret) == 0 {
		panic("no return value specified for CardPayment")
	}

	var r0 *models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Card)
	}

	return r0, ret.Error(1)
}

// SetCardStatus provides a mock function with given fields: ctx, cardID, status
func (_m *MockCardIssuer) SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) (*models.Card, error) {
	ret := _m.Called(ctx, cardID, status)

	if len(ret) == 0 {
		panic("no return value specified for SetCardStatus")
	}

	var r0 *models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Card)
	}

	return r0, ret.Error(1)
}

// GetCard provides a mock function with given fields: ctx, cardID
func (_m *MockCardIssuer) GetCard(ctx context.Context, cardID int64) (*models.Card, error) {
	ret := _m.Called(ctx, cardID)

	if len(ret) == 0 {
		panic("no return value specified for GetCard")
	}

	var r0 *models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Card)
	}

	return r0, ret.Error(1)
}

// ListCards provides a mock function with given fields: ctx, accountID, activeOnly
func (_m *MockCardIssuer) ListCards(ctx context.Context, accountID int64, activeOnly bool) ([]*models.Card, error) {
	ret := _m.Called(ctx, accountID, activeOnly)

	if len(ret) == 0 {
		panic("no return value specified for ListCards")
	}

	var r0 []*models.Card
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Card)
	}

	return r0, ret.Error(1)
}

// NewMockCardIssuer creates a new instance of MockCardIssuer. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockCardIssuer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCardIssuer {
	m := &MockCardIssuer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
