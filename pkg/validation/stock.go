package validation

import (
	"fmt"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

// ValidateAvailableStock checks a freshly requested quantity against current
// stock. Side-effect free.
func ValidateAvailableStock(book *models.Book, requestedQuantity int) error {
	if book.StockQuantity < requestedQuantity {
		return global.BadRequest(fmt.Sprintf("Not enough stock available. Available: %d", book.StockQuantity))
	}
	return nil
}

// ValidateTotalQuantity applies the same stock check to a post-merge total,
// used when an existing cart line's quantity would grow. Keeping the two
// entry points separate keeps the merge arithmetic out of this package.
func ValidateTotalQuantity(book *models.Book, totalQuantity int) error {
	if totalQuantity > book.StockQuantity {
		return global.BadRequest(fmt.Sprintf("Total quantity exceeds available stock. Available: %d", book.StockQuantity))
	}
	return nil
}
