package service

import (
	"errors"
	"fmt"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeValidation         = "validation_error"
	ErrCodeNotFound           = "not_found"
	ErrCodeInsufficientFunds  = "insufficient_funds"
	ErrCodeInsufficientCredit = "insufficient_credit"
	ErrCodeInactiveCard       = "inactive_card"
	ErrCodeAlreadyPaidOff     = "already_paid_off"
	ErrCodeInternalError      = "internal_error"
)

// IsCode reports whether err is, or wraps, a ServiceError with the given code
func IsCode(err error, code string) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code == code
	}
	return false
}

func validationError(format string, args ...any) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func notFoundError(entity string, id int64) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %d not found", entity, id),
	}
}

func insufficientFundsError(accountID int64) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("insufficient funds in account %d", accountID),
	}
}
