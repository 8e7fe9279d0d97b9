package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateLuhn(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		wantErr    bool
	}{
		{
			name:       "valid card number",
			cardNumber: "4532015112830366",
			wantErr:    false,
		},
		{
			name:       "another valid card",
			cardNumber: "4556737586899855",
			wantErr:    false,
		},
		{
			name:       "invalid card number",
			cardNumber: "1234567890123456",
			wantErr:    true,
		},
		{
			name:       "empty card number",
			cardNumber: "",
			wantErr:    true,
		},
		{
			name:       "non-numeric card",
			cardNumber: "abcd1234efgh5678",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLuhn(tt.cardNumber)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCVV(t *testing.T) {
	tests := []struct {
		name    string
		cvv     string
		wantErr bool
	}{
		{name: "valid 3-digit CVV", cvv: "123", wantErr: false},
		{name: "valid 4-digit CVV", cvv: "1234", wantErr: false},
		{name: "too short", cvv: "12", wantErr: true},
		{name: "too long", cvv: "12345", wantErr: true},
		{name: "non-numeric", cvv: "12a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCVV(tt.cvv)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  time.Time
		wantErr bool
	}{
		{name: "future year", expiry: time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC), wantErr: false},
		{name: "current month", expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), wantErr: false},
		{name: "earlier this year", expiry: time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "past year", expiry: time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpiry(tt.expiry, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "positive whole amount", amount: "100", wantErr: false},
		{name: "positive cents", amount: "0.01", wantErr: false},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-5", wantErr: true},
		{name: "sub-cent precision", amount: "1.005", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInitialDeposit(t *testing.T) {
	assert.NoError(t, ValidateInitialDeposit(decimal.Zero))
	assert.NoError(t, ValidateInitialDeposit(decimal.NewFromInt(1000)))
	assert.Error(t, ValidateInitialDeposit(decimal.NewFromInt(-1)))
}

func TestValidateTerm(t *testing.T) {
	assert.NoError(t, ValidateTerm(1))
	assert.Error(t, ValidateTerm(0))
	assert.Error(t, ValidateTerm(-3))
}

func TestValidateHolderName(t *testing.T) {
	assert.NoError(t, ValidateHolderName("Ada Lovelace"))
	assert.Error(t, ValidateHolderName("   "))
}
