package commerce

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/models"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// BookStore is read access to catalog entries plus the one mutation checkout
// needs. DecrementStock must be conditional: it fails with
// ErrInsufficientStock instead of ever driving stock below zero.
type BookStore interface {
	GetBook(ctx context.Context, id bson.ObjectID) (*models.Book, error)
	DecrementStock(ctx context.Context, id bson.ObjectID, quantity int) error
}

type CartStore interface {
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error)
	FindByUserAndBook(ctx context.Context, userID, bookID bson.ObjectID) (*models.CartItem, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.CartItem, error)
	Save(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id bson.ObjectID) error
	ClearByUser(ctx context.Context, userID bson.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error)
}

// TxRunner executes fn inside one atomic unit against the backing store.
// Every mutation fn performs through the stores commits or rolls back as a
// whole.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PassthroughTx runs fn directly, for stores that do not need (or cannot
// provide) transactions.
type PassthroughTx struct{}

func (PassthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
