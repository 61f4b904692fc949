package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "12.99", CentsToDecimal(1299).StringFixed(2))
	assert.Equal(t, "0.00", CentsToDecimal(0).StringFixed(2))
	assert.Equal(t, "0.05", CentsToDecimal(5).StringFixed(2))
}

func TestDecimalToCents(t *testing.T) {
	assert.EqualValues(t, 1299, DecimalToCents(decimal.RequireFromString("12.99")))
	assert.EqualValues(t, 1000, DecimalToCents(decimal.RequireFromString("10")))
	// sub-cent precision rounds half away from zero
	assert.EqualValues(t, 1300, DecimalToCents(decimal.RequireFromString("12.995")))
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1299, 123456789} {
		assert.Equal(t, cents, DecimalToCents(CentsToDecimal(cents)))
	}
}
