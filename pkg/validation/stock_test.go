package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	var apiErr *global.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, message, apiErr.Message)
}

func TestValidateAvailableStock(t *testing.T) {
	book := &models.Book{Title: "Dune", StockQuantity: 3}

	assert.NoError(t, ValidateAvailableStock(book, 3))
	assert.NoError(t, ValidateAvailableStock(book, 1))

	err := ValidateAvailableStock(book, 4)
	requireBadRequest(t, err, "Not enough stock available. Available: 3")
}

func TestValidateTotalQuantity(t *testing.T) {
	book := &models.Book{Title: "Dune", StockQuantity: 5}

	assert.NoError(t, ValidateTotalQuantity(book, 5))

	err := ValidateTotalQuantity(book, 6)
	requireBadRequest(t, err, "Total quantity exceeds available stock. Available: 5")
}

func TestValidateZeroStock(t *testing.T) {
	book := &models.Book{Title: "Dune", StockQuantity: 0}

	err := ValidateAvailableStock(book, 1)
	requireBadRequest(t, err, "Not enough stock available. Available: 0")
}
