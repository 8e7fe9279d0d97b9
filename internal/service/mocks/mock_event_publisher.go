package mocks

import (
	"context"

	"github.com/benx421/backoffice/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher announces committed operations. Construct it with NewMockEventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) Publish(ctx context.Context, event *events.Event) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for Publish")
	}

	return ret.Error(0)
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
