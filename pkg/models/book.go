package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Book is a catalog entry. Prices are stored in integer cents so money
// arithmetic never leaves the currency's minor-unit precision.
type Book struct {
	ID            bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title         string         `json:"title" bson:"title"`
	Author        string         `json:"author" bson:"author"`
	ISBN          string         `json:"isbn" bson:"isbn,omitempty"`
	Description   string         `json:"description" bson:"description,omitempty"`
	PriceCents    int64          `json:"-" bson:"price_cents"`
	StockQuantity int            `json:"stockQuantity" bson:"stock_quantity"`
	ImageURL      string         `json:"imageUrl" bson:"image_url,omitempty"`
	CategoryID    *bson.ObjectID `json:"categoryId,omitempty" bson:"category_id,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updated_at"`
}

func (b *Book) Price() decimal.Decimal {
	return CentsToDecimal(b.PriceCents)
}

func (b *Book) SetTimestamps() {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type BookRequest struct {
	Title         string          `json:"title" binding:"required,nohtml"`
	Author        string          `json:"author" binding:"required,nohtml"`
	ISBN          string          `json:"isbn" binding:"nohtml"`
	Description   string          `json:"description" binding:"nohtml"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stockQuantity" binding:"gte=0"`
	ImageURL      string          `json:"imageUrl" binding:"nohtml"`
	CategoryID    string          `json:"categoryId"`
}

// BookDTO is the wire shape for a catalog entry; price as a decimal string.
type BookDTO struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryID    string          `json:"categoryId,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
}

func (b *Book) ToDTO(categoryName string) BookDTO {
	dto := BookDTO{
		ID:            b.ID.Hex(),
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Description:   b.Description,
		Price:         b.Price(),
		StockQuantity: b.StockQuantity,
		ImageURL:      b.ImageURL,
		CategoryName:  categoryName,
	}
	if b.CategoryID != nil {
		dto.CategoryID = b.CategoryID.Hex()
	}
	return dto
}

// PagedBooks wraps a paginated book listing.
type PagedBooks struct {
	Content       []BookDTO `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int64     `json:"totalPages"`
}
