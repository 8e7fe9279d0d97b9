package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockJournal persists committed ledger entries. Construct it with NewMockJournal.
type MockJournal struct {
	mock.Mock
}

// Append provides a mock function with given fields: ctx, entries
func (_m *MockJournal) Append(ctx context.Context, entries ...*models.LedgerEntry) error {
	ret := _m.Called(ctx, entries)

	if len(ret) == 0 {
		panic("no return value specified for Append")
	}

	return ret.Error(0)
}

// NewMockJournal creates a new instance of MockJournal. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockJournal(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockJournal {
	m := &MockJournal{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
