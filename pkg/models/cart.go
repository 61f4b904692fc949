package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem is one (user, book) line. The (user_id, book_id) pair is unique;
// adding the same book again merges quantities instead of creating a second
// line.
type CartItem struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	BookID    bson.ObjectID `bson:"book_id" json:"bookId"`
	Quantity  int           `bson:"quantity" json:"quantity"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

func (ci *CartItem) SetTimestamps() {
	now := time.Now()
	if ci.CreatedAt.IsZero() {
		ci.CreatedAt = now
	}
	ci.UpdatedAt = now
}

type AddToCartRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemDTO carries the line plus the book's live price. Cart subtotals are
// recomputed from the current catalog price on every read; only orders
// snapshot prices.
type CartItemDTO struct {
	ID         string          `json:"id"`
	BookID     string          `json:"bookId"`
	BookTitle  string          `json:"bookTitle"`
	BookAuthor string          `json:"bookAuthor"`
	BookPrice  decimal.Decimal `json:"bookPrice"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items       []CartItemDTO   `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
