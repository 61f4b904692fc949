package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtPurchaseCents: 1050}
	assert.Equal(t, "31.50", item.Subtotal().StringFixed(2))
}

func TestOrderToDTO(t *testing.T) {
	order := Order{
		ID:     bson.NewObjectID(),
		UserID: bson.NewObjectID(),
		Status: OrderStatusConfirmed,
		Items: []OrderItem{
			{BookID: bson.NewObjectID(), BookTitle: "Dune", BookAuthor: "Frank Herbert", Quantity: 2, PriceAtPurchaseCents: 1050},
			{BookID: bson.NewObjectID(), BookTitle: "The Great Gatsby", BookAuthor: "F. Scott Fitzgerald", Quantity: 1, PriceAtPurchaseCents: 400},
		},
		TotalCents:      2500,
		ShippingAddress: "1 Main St",
	}

	dto := order.ToDTO()

	assert.Equal(t, order.ID.Hex(), dto.ID)
	assert.Equal(t, OrderStatusConfirmed, dto.Status)
	assert.Equal(t, "25.00", dto.TotalAmount.StringFixed(2))
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "10.50", dto.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, "21.00", dto.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "4.00", dto.Items[1].Subtotal.StringFixed(2))
}

func TestRefreshTokenIsExpired(t *testing.T) {
	// covered through the auth package as well; this pins the boundary
	tok := RefreshToken{}
	assert.True(t, tok.IsExpired(tok.ExpiresAt.Add(1)))
	assert.False(t, tok.IsExpired(tok.ExpiresAt.Add(-1)))
}
