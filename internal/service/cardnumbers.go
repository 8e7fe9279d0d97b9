package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	cardNumberLength = 16
	cvvLength        = 3
)

// CardNumberGenerator produces card credentials
type CardNumberGenerator interface {
	CardNumber() (string, error)
	CVV() (string, error)
}

// SecureCardNumbers draws card numbers and CVVs from crypto/rand. Numbers carry
// a Luhn check digit so they pass the same validation card processors apply.
type SecureCardNumbers struct{}

// CardNumber returns 15 random digits followed by their Luhn check digit
func (SecureCardNumbers) CardNumber() (string, error) {
	digits := make([]int, cardNumberLength-1, cardNumberLength)
	for i := range digits {
		d, err := randomDigit()
		if err != nil {
			return "", err
		}
		digits[i] = d
	}

	check := (10 - luhnSum(digits, true)%10) % 10
	digits = append(digits, check)

	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String(), nil
}

// CVV returns a three digit code in the range 100-999
func (SecureCardNumbers) CVV() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate cvv: %w", err)
	}
	return fmt.Sprintf("%0*d", cvvLength, 100+n.Int64()), nil
}

func randomDigit() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10))
	if err != nil {
		return 0, fmt.Errorf("failed to generate card digit: %w", err)
	}
	return int(n.Int64()), nil
}
