package commerce

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/validation"
)

// CartService owns every cart-line mutation for one user at a time. All
// mutations run inside a store transaction so two concurrent adds against the
// same (user, book) line cannot both read the old quantity and drop an
// increment.
type CartService struct {
	books BookStore
	cart  CartStore
	tx    TxRunner
}

func NewCartService(books BookStore, cart CartStore, tx TxRunner) *CartService {
	return &CartService{books: books, cart: cart, tx: tx}
}

// Get returns the cart's lines with totals derived from the current catalog
// price. The cart is not yet a commitment, so prices here are live; only
// orders snapshot them.
func (s *CartService) Get(ctx context.Context, userID bson.ObjectID) (*models.CartResponse, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.CartItemDTO, 0, len(items))
	var totalItems int
	var totalCents int64
	for i := range items {
		dto, book, err := s.toDTO(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
		totalItems += items[i].Quantity
		totalCents += book.PriceCents * int64(items[i].Quantity)
	}

	return &models.CartResponse{
		Items:       dtos,
		TotalItems:  totalItems,
		TotalAmount: models.CentsToDecimal(totalCents),
	}, nil
}

// Add puts quantity units of a book into the user's cart, merging into an
// existing line when one exists. The post-merge total is validated against
// current stock before anything is written.
func (s *CartService) Add(ctx context.Context, userID, bookID bson.ObjectID, quantity int) (*models.CartItemDTO, error) {
	var result *models.CartItemDTO

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		book, err := s.books.GetBook(ctx, bookID)
		if err != nil {
			return mapBookErr(err)
		}
		if err := validation.ValidateAvailableStock(book, quantity); err != nil {
			return err
		}

		item, err := s.cart.FindByUserAndBook(ctx, userID, bookID)
		switch {
		case err == nil:
			newQuantity := item.Quantity + quantity
			if err := validation.ValidateTotalQuantity(book, newQuantity); err != nil {
				return err
			}
			item.Quantity = newQuantity
		case errors.Is(err, ErrCartItemNotFound):
			item = &models.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
		default:
			return err
		}

		item.SetTimestamps()
		if err := s.cart.Save(ctx, item); err != nil {
			return err
		}

		dto := dtoFromLine(item, book)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update replaces a line's quantity. The new quantity is an absolute total,
// validated against current stock.
func (s *CartService) Update(ctx context.Context, userID, itemID bson.ObjectID, quantity int) (*models.CartItemDTO, error) {
	var result *models.CartItemDTO

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := s.cart.GetByID(ctx, itemID)
		if err != nil {
			return mapCartErr(err)
		}
		if err := validation.ValidateCartItemOwnership(userID, item); err != nil {
			return err
		}

		book, err := s.books.GetBook(ctx, item.BookID)
		if err != nil {
			return mapBookErr(err)
		}
		if err := validation.ValidateTotalQuantity(book, quantity); err != nil {
			return err
		}

		item.Quantity = quantity
		item.SetTimestamps()
		if err := s.cart.Save(ctx, item); err != nil {
			return err
		}

		dto := dtoFromLine(item, book)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes a single line. Removing a line that does not exist is a
// NotFound, not a silent no-op.
func (s *CartService) Remove(ctx context.Context, userID, itemID bson.ObjectID) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := s.cart.GetByID(ctx, itemID)
		if err != nil {
			return mapCartErr(err)
		}
		if err := validation.ValidateCartItemOwnership(userID, item); err != nil {
			return err
		}
		return s.cart.Delete(ctx, itemID)
	})
}

// Clear deletes every line for the user. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID bson.ObjectID) error {
	return s.cart.ClearByUser(ctx, userID)
}

// ListLines exposes the raw lines for checkout.
func (s *CartService) ListLines(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	return s.cart.ListByUser(ctx, userID)
}

func (s *CartService) toDTO(ctx context.Context, item *models.CartItem) (models.CartItemDTO, *models.Book, error) {
	book, err := s.books.GetBook(ctx, item.BookID)
	if err != nil {
		return models.CartItemDTO{}, nil, fmt.Errorf("load book %s for cart line: %w", item.BookID.Hex(), err)
	}
	return dtoFromLine(item, book), book, nil
}

func dtoFromLine(item *models.CartItem, book *models.Book) models.CartItemDTO {
	return models.CartItemDTO{
		ID:         item.ID.Hex(),
		BookID:     book.ID.Hex(),
		BookTitle:  book.Title,
		BookAuthor: book.Author,
		BookPrice:  book.Price(),
		Quantity:   item.Quantity,
		Subtotal:   models.CentsToDecimal(book.PriceCents * int64(item.Quantity)),
	}
}
