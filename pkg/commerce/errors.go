package commerce

import (
	"errors"

	"github.com/openshelf/bookstore-api/pkg/global"
)

func mapBookErr(err error) error {
	if errors.Is(err, ErrBookNotFound) {
		return global.NotFound("Book not found")
	}
	return err
}

func mapCartErr(err error) error {
	if errors.Is(err, ErrCartItemNotFound) {
		return global.NotFound("Cart item not found")
	}
	return err
}

func mapOrderErr(err error) error {
	if errors.Is(err, ErrOrderNotFound) {
		return global.NotFound("Order not found")
	}
	return err
}
