package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// ValidateLuhn validates a card number using the Luhn algorithm
func ValidateLuhn(cardNumber string) error {
	var digits []int
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}

	if len(digits) < 13 || len(digits) > 19 {
		return fmt.Errorf("invalid card number length: must be 13-19 digits")
	}

	if luhnSum(digits, false)%10 != 0 {
		return fmt.Errorf("invalid card number: failed Luhn check")
	}

	return nil
}

// luhnSum sums digits right to left, doubling every second one. With
// pendingCheck set the rightmost digit is treated as the second position, as
// it is when computing a check digit that will be appended.
func luhnSum(digits []int, pendingCheck bool) int {
	sum := 0
	isSecond := pendingCheck

	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]

		if isSecond {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isSecond = !isSecond
	}

	return sum
}

// ValidateExpiry checks if a card has expired as of now. A card is valid through
// the last day of its expiry month.
func ValidateExpiry(expiry, now time.Time) error {
	if expiry.Year() < now.Year() {
		return fmt.Errorf("card expired: year %d is in the past", expiry.Year())
	}

	if expiry.Year() == now.Year() && expiry.Month() < now.Month() {
		return fmt.Errorf("card expired: %02d/%d", int(expiry.Month()), expiry.Year())
	}

	return nil
}

// ValidateCVV checks if CVV format is valid.
func ValidateCVV(cvv string) error {
	if len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("invalid CVV: must be 3 or 4 digits")
	}

	for _, r := range cvv {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid CVV: must contain only digits")
		}
	}

	return nil
}

// ValidateAmount checks that amount is positive and carries no sub-cent precision
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return validateCents(amount)
}

// ValidateInitialDeposit checks an opening deposit, which may be zero
func ValidateInitialDeposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("initial deposit cannot be negative")
	}

	return validateCents(amount)
}

// ValidateTerm checks a loan term in years
func ValidateTerm(termYears int) error {
	if termYears <= 0 {
		return fmt.Errorf("invalid term: must be at least 1 year")
	}

	return nil
}

// ValidateHolderName checks an account holder name
func ValidateHolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("holder name cannot be empty")
	}

	return nil
}

func validateCents(amount decimal.Decimal) error {
	if !models.IsWholeCents(amount) {
		return fmt.Errorf("invalid amount: at most %d decimal places allowed", models.MoneyPlaces)
	}

	return nil
}
