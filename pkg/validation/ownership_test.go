package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

func TestValidateCartItemOwnership(t *testing.T) {
	owner := bson.NewObjectID()
	item := &models.CartItem{UserID: owner}

	assert.NoError(t, ValidateCartItemOwnership(owner, item))

	err := ValidateCartItemOwnership(bson.NewObjectID(), item)
	var apiErr *global.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "Cart item does not belong to current user", apiErr.Message)
}

func TestValidateOrderOwnership(t *testing.T) {
	owner := bson.NewObjectID()
	order := &models.Order{UserID: owner}

	assert.NoError(t, ValidateOrderOwnership(owner, order))

	err := ValidateOrderOwnership(bson.NewObjectID(), order)
	var apiErr *global.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "Order does not belong to current user", apiErr.Message)
}
