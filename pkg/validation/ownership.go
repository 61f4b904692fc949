package validation

import (
	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Ownership checks are pure comparisons. The messages deliberately do not
// reveal who the real owner is.

func ValidateCartItemOwnership(userID bson.ObjectID, item *models.CartItem) error {
	if item.UserID != userID {
		return global.Forbidden("Cart item does not belong to current user")
	}
	return nil
}

func ValidateOrderOwnership(userID bson.ObjectID, order *models.Order) error {
	if order.UserID != userID {
		return global.Forbidden("Order does not belong to current user")
	}
	return nil
}
