package models

import "github.com/shopspring/decimal"

// CentsToDecimal converts integer minor units to a two-place decimal amount.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// DecimalToCents converts an amount to integer minor units, rounding to the
// currency's two decimal places first.
func DecimalToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
