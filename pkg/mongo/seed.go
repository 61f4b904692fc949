package mongo

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/bookstore-api/pkg/auth"
	"github.com/openshelf/bookstore-api/pkg/models"
)

type seedBook struct {
	isbn        string
	title       string
	author      string
	description string
	priceCents  int64
	stock       int
	category    string
}

var seedCategories = []models.Category{
	{Name: "Fiction", Description: "Fiction and literature books"},
	{Name: "Non-Fiction", Description: "Non-fiction and educational books"},
	{Name: "Science Fiction", Description: "Sci-fi and fantasy books"},
	{Name: "Technology", Description: "Programming and tech books"},
}

var seedBooks = []seedBook{
	{"978-0743273565", "The Great Gatsby", "F. Scott Fitzgerald",
		"A classic novel of the Jazz Age", 1299, 50, "Fiction"},
	{"978-0446310789", "To Kill a Mockingbird", "Harper Lee",
		"A masterpiece of modern American literature", 1499, 35, "Fiction"},
	{"978-0062316097", "Sapiens: A Brief History of Humankind", "Yuval Noah Harari",
		"A brief history of our species", 1899, 25, "Non-Fiction"},
	{"978-0441172719", "Dune", "Frank Herbert",
		"Epic science fiction masterpiece", 1699, 40, "Science Fiction"},
	{"978-0132350884", "Clean Code", "Robert C. Martin",
		"A handbook of agile software craftsmanship", 3999, 20, "Technology"},
}

// SeedIfEmpty populates an empty database with the starter catalog and the
// default admin account. Safe to call on every startup; existing data short
// circuits it.
func SeedIfEmpty(ctx context.Context) error {
	books := NewBookRepo()
	categories := NewCategoryRepo()
	users := NewUserRepo()

	count, err := GetCollection("books").CountDocuments(ctx, bson.D{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	byName := make(map[string]models.Category, len(seedCategories))
	for _, c := range seedCategories {
		category := c
		category.SetTimestamps()
		if err := categories.Insert(ctx, &category); err != nil {
			if errors.Is(err, ErrDuplicateCategory) {
				continue
			}
			return err
		}
		byName[category.Name] = category
	}

	for _, sb := range seedBooks {
		book := models.Book{
			Title:         sb.title,
			Author:        sb.author,
			ISBN:          sb.isbn,
			Description:   sb.description,
			PriceCents:    sb.priceCents,
			StockQuantity: sb.stock,
		}
		if category, ok := byName[sb.category]; ok {
			id := category.ID
			book.CategoryID = &id
		}
		book.SetTimestamps()
		if err := books.Insert(ctx, &book); err != nil && !errors.Is(err, ErrDuplicateISBN) {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:     "admin@bookstore.com",
		Password:  string(hashed),
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
	}
	admin.SetTimestamps()
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, auth.ErrEmailExists) {
		return err
	}

	log.Println("Seeded empty database with starter catalog")
	return nil
}
