package service

import (
	"testing"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertMoney compares decimals by value so 100 and 100.00 are equal
func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got.String())
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(NewIDAllocator(), &sequenceNumbers{}, fixedClock)
}

func openAccount(t *testing.T, e *Engine, holder string, deposit string) *models.Account {
	t.Helper()
	account, _, err := e.OpenAccount(holder, models.AccountTypeChecking, dec(deposit))
	require.NoError(t, err)
	return account
}

func balanceOf(t *testing.T, e *Engine, accountID int64) decimal.Decimal {
	t.Helper()
	account, err := e.Accounts.Get(accountID)
	require.NoError(t, err)
	return account.Balance
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, IsCode(err, code), "expected %s, got %v", code, err)
}

// sequenceNumbers hands out predictable Luhn-valid card numbers. Numbers
// listed in repeat are returned first, in order.
type sequenceNumbers struct {
	repeat []string
	n      int
}

func (s *sequenceNumbers) CardNumber() (string, error) {
	if len(s.repeat) > 0 {
		number := s.repeat[0]
		s.repeat = s.repeat[1:]
		return number, nil
	}
	s.n++
	digits := make([]int, cardNumberLength-1)
	for i, v := 0, s.n; v > 0 && i < len(digits); i, v = i+1, v/10 {
		digits[len(digits)-1-i] = v % 10
	}
	digits[0] = 4
	check := (10 - luhnSum(digits, true)%10) % 10

	b := make([]byte, 0, cardNumberLength)
	for _, d := range digits {
		b = append(b, byte('0'+d))
	}
	return string(append(b, byte('0'+check))), nil
}

func (s *sequenceNumbers) CVV() (string, error) { return "123", nil }
