package models

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every monetary value is kept at
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds a value to cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// IsWholeCents reports whether d carries no precision beyond cents
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}

// Percent returns pct percent of d, rounded to cents
func Percent(d, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(d.Mul(pct).Div(hundred))
}
