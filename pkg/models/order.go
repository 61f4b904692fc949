package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// OrderItem is a line of a placed order. Price and book attribution are
// snapshotted at checkout; later catalog edits never change what the buyer
// paid.
type OrderItem struct {
	BookID               bson.ObjectID `bson:"book_id" json:"bookId"`
	BookTitle            string        `bson:"book_title" json:"bookTitle"`
	BookAuthor           string        `bson:"book_author" json:"bookAuthor"`
	Quantity             int           `bson:"quantity" json:"quantity"`
	PriceAtPurchaseCents int64         `bson:"price_at_purchase_cents" json:"-"`
}

func (oi *OrderItem) Subtotal() decimal.Decimal {
	return CentsToDecimal(oi.PriceAtPurchaseCents * int64(oi.Quantity))
}

// Order is created exactly once per successful checkout and stored with its
// lines as a single document.
type Order struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          bson.ObjectID `bson:"user_id" json:"userId"`
	Status          string        `bson:"status" json:"status"`
	Items           []OrderItem   `bson:"items" json:"items"`
	TotalCents      int64         `bson:"total_cents" json:"-"`
	ShippingAddress string        `bson:"shipping_address" json:"shippingAddress"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
}

func (o *Order) TotalAmount() decimal.Decimal {
	return CentsToDecimal(o.TotalCents)
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required,nohtml"`
}

type OrderItemDTO struct {
	BookID          string          `json:"bookId"`
	BookTitle       string          `json:"bookTitle"`
	BookAuthor      string          `json:"bookAuthor"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID              string          `json:"id"`
	Items           []OrderItemDTO  `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (o *Order) ToDTO() OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			BookID:          item.BookID.Hex(),
			BookTitle:       item.BookTitle,
			BookAuthor:      item.BookAuthor,
			Quantity:        item.Quantity,
			PriceAtPurchase: CentsToDecimal(item.PriceAtPurchaseCents),
			Subtotal:        item.Subtotal(),
		})
	}
	return OrderDTO{
		ID:              o.ID.Hex(),
		Items:           items,
		TotalAmount:     o.TotalAmount(),
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
	}
}
