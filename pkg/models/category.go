package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Category struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updated_at"`
}

func (c *Category) SetTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,nohtml"`
	Description string `json:"description" binding:"nohtml"`
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BookCount   int64  `json:"bookCount"`
}

func (c *Category) ToDTO(bookCount int64) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		BookCount:   bookCount,
	}
}
