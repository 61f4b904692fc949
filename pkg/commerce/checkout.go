package commerce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/validation"
)

// CheckoutService turns a cart into a placed order. The whole conversion
// runs in one store transaction: stock re-validation, the order write, the
// stock decrements and the cart clear all commit or all roll back. Stock
// decrements are conditional, so two checkouts racing over the same book
// serialize into one winner and one InsufficientStock failure instead of an
// oversell.
type CheckoutService struct {
	books  BookStore
	cart   CartStore
	orders OrderStore
	tx     TxRunner
}

func NewCheckoutService(books BookStore, cart CartStore, orders OrderStore, tx TxRunner) *CheckoutService {
	return &CheckoutService{books: books, cart: cart, orders: orders, tx: tx}
}

// Checkout converts the user's cart into a CONFIRMED order.
func (s *CheckoutService) Checkout(ctx context.Context, userID bson.ObjectID, shippingAddress string) (*models.OrderDTO, error) {
	var placed *models.Order

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.cart.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return global.BadRequest("Cart is empty")
		}

		// Re-validate every line against current stock before any mutation;
		// stock may have moved since the line was added.
		books := make([]*models.Book, len(lines))
		for i := range lines {
			book, err := s.books.GetBook(ctx, lines[i].BookID)
			if err != nil {
				return mapBookErr(err)
			}
			if book.StockQuantity < lines[i].Quantity {
				return global.BadRequest(fmt.Sprintf("Not enough stock for '%s'. Available: %d",
					book.Title, book.StockQuantity))
			}
			books[i] = book
		}

		order := &models.Order{
			UserID:          userID,
			Status:          models.OrderStatusConfirmed,
			ShippingAddress: shippingAddress,
			CreatedAt:       time.Now(),
		}
		var totalCents int64
		for i := range lines {
			item := models.OrderItem{
				BookID:               books[i].ID,
				BookTitle:            books[i].Title,
				BookAuthor:           books[i].Author,
				Quantity:             lines[i].Quantity,
				PriceAtPurchaseCents: books[i].PriceCents,
			}
			order.Items = append(order.Items, item)
			totalCents += item.PriceAtPurchaseCents * int64(item.Quantity)
		}
		order.TotalCents = totalCents

		// Order first, decrements second: a storage failure on the order
		// write never touches stock.
		if err := s.orders.Insert(ctx, order); err != nil {
			return err
		}

		for i := range lines {
			if err := s.books.DecrementStock(ctx, books[i].ID, lines[i].Quantity); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					// The conditional decrement lost a race; re-read so the
					// message reports what is actually left, not the snapshot.
					available := books[i].StockQuantity
					if fresh, rerr := s.books.GetBook(ctx, books[i].ID); rerr == nil {
						available = fresh.StockQuantity
					}
					return global.BadRequest(fmt.Sprintf("Not enough stock for '%s'. Available: %d",
						books[i].Title, available))
				}
				return err
			}
		}

		if err := s.cart.ClearByUser(ctx, userID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := placed.ToDTO()
	return &dto, nil
}

// ListOrders returns the user's orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, userID bson.ObjectID) ([]models.OrderDTO, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]models.OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, orders[i].ToDTO())
	}
	return dtos, nil
}

// GetOrder returns a single order, enforcing that it belongs to the caller.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID bson.ObjectID) (*models.OrderDTO, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	if err := validation.ValidateOrderOwnership(userID, order); err != nil {
		return nil, err
	}
	dto := order.ToDTO()
	return &dto, nil
}
