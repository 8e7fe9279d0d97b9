package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHealthChecker validates system health. Construct it with NewMockHealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

// PingContext provides a mock function with given fields: ctx
func (_m *MockHealthChecker) PingContext(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for PingContext")
	}

	return ret.Error(0)
}

// NewMockHealthChecker creates a new instance of MockHealthChecker. It also registers a
// cleanup function that asserts the mock's expectations.
func NewMockHealthChecker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHealthChecker {
	m := &MockHealthChecker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
