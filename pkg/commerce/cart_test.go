package commerce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

type fakeBookStore struct {
	books map[bson.ObjectID]*models.Book
}

func newFakeBookStore(books ...*models.Book) *fakeBookStore {
	s := &fakeBookStore{books: make(map[bson.ObjectID]*models.Book)}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

func (s *fakeBookStore) GetBook(_ context.Context, id bson.ObjectID) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *fakeBookStore) DecrementStock(_ context.Context, id bson.ObjectID, quantity int) error {
	book, ok := s.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if book.StockQuantity < quantity {
		return ErrInsufficientStock
	}
	book.StockQuantity -= quantity
	return nil
}

type fakeCartStore struct {
	items []*models.CartItem
}

func (s *fakeCartStore) ListByUser(_ context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *fakeCartStore) FindByUserAndBook(_ context.Context, userID, bookID bson.ObjectID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.UserID == userID && item.BookID == bookID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (s *fakeCartStore) GetByID(_ context.Context, id bson.ObjectID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (s *fakeCartStore) Save(_ context.Context, item *models.CartItem) error {
	if item.ID.IsZero() {
		item.ID = bson.NewObjectID()
		copied := *item
		s.items = append(s.items, &copied)
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == item.ID {
			copied := *item
			s.items[i] = &copied
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (s *fakeCartStore) Delete(_ context.Context, id bson.ObjectID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (s *fakeCartStore) ClearByUser(_ context.Context, userID bson.ObjectID) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

type fakeOrderStore struct {
	orders []*models.Order
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	order.ID = bson.NewObjectID()
	copied := *order
	s.orders = append(s.orders, &copied)
	return nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id bson.ObjectID) (*models.Order, error) {
	for _, order := range s.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID bson.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func testBook(title string, priceCents int64, stock int) *models.Book {
	return &models.Book{
		ID:            bson.NewObjectID(),
		Title:         title,
		Author:        "Test Author",
		PriceCents:    priceCents,
		StockQuantity: stock,
	}
}

func assertAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *global.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, message, apiErr.Message)
}

func TestAddCreatesLine(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1299, 10)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	dto, err := svc.Add(context.Background(), user, book.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, dto.Quantity)
	assert.Equal(t, "Dune", dto.BookTitle)
	assert.Equal(t, "25.98", dto.Subtotal.StringFixed(2))
	assert.Len(t, cart.items, 1)
}

func TestAddMergesExistingLine(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1299, 10)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	_, err := svc.Add(context.Background(), user, book.ID, 1)
	require.NoError(t, err)
	dto, err := svc.Add(context.Background(), user, book.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, dto.Quantity)
	require.Len(t, cart.items, 1)
	assert.Equal(t, 3, cart.items[0].Quantity)
}

func TestAddRejectsMoreThanStock(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1299, 3)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	_, err := svc.Add(context.Background(), user, book.ID, 5)

	assertAPIError(t, err, 400, "Not enough stock available. Available: 3")
	assert.Empty(t, cart.items)
}

func TestAddRejectsMergedTotalOverStock(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1299, 3)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	_, err := svc.Add(context.Background(), user, book.ID, 2)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), user, book.ID, 2)

	assertAPIError(t, err, 400, "Total quantity exceeds available stock. Available: 3")
	require.Len(t, cart.items, 1)
	assert.Equal(t, 2, cart.items[0].Quantity, "failed merge must not change the line")
}

func TestAddUnknownBook(t *testing.T) {
	svc := NewCartService(newFakeBookStore(), &fakeCartStore{}, PassthroughTx{})

	_, err := svc.Add(context.Background(), bson.NewObjectID(), bson.NewObjectID(), 1)

	assertAPIError(t, err, 404, "Book not found")
}

func TestUpdateSetsAbsoluteQuantity(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1299, 10)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	added, err := svc.Add(context.Background(), user, book.ID, 5)
	require.NoError(t, err)

	itemID, err := bson.ObjectIDFromHex(added.ID)
	require.NoError(t, err)
	dto, err := svc.Update(context.Background(), user, itemID, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, dto.Quantity)
	assert.Equal(t, 2, cart.items[0].Quantity)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	owner := bson.NewObjectID()
	intruder := bson.NewObjectID()
	book := testBook("Dune", 1299, 10)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	added, err := svc.Add(context.Background(), owner, book.ID, 1)
	require.NoError(t, err)

	itemID, err := bson.ObjectIDFromHex(added.ID)
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), intruder, itemID, 2)

	assertAPIError(t, err, 403, "Cart item does not belong to current user")
	assert.Equal(t, 1, cart.items[0].Quantity)
}

func TestRemoveEnforcesOwnership(t *testing.T) {
	owner := bson.NewObjectID()
	intruder := bson.NewObjectID()
	book := testBook("Dune", 1299, 10)
	cart := &fakeCartStore{}
	svc := NewCartService(newFakeBookStore(book), cart, PassthroughTx{})

	added, err := svc.Add(context.Background(), owner, book.ID, 1)
	require.NoError(t, err)

	itemID, err := bson.ObjectIDFromHex(added.ID)
	require.NoError(t, err)
	err = svc.Remove(context.Background(), intruder, itemID)

	assertAPIError(t, err, 403, "Cart item does not belong to current user")
	assert.Len(t, cart.items, 1)
}

func TestRemoveMissingLine(t *testing.T) {
	svc := NewCartService(newFakeBookStore(), &fakeCartStore{}, PassthroughTx{})

	err := svc.Remove(context.Background(), bson.NewObjectID(), bson.NewObjectID())

	assertAPIError(t, err, 404, "Cart item not found")
}

func TestClearEmptyCartSucceeds(t *testing.T) {
	svc := NewCartService(newFakeBookStore(), &fakeCartStore{}, PassthroughTx{})

	assert.NoError(t, svc.Clear(context.Background(), bson.NewObjectID()))
}

func TestGetUsesLivePrices(t *testing.T) {
	user := bson.NewObjectID()
	book := testBook("Dune", 1000, 10)
	books := newFakeBookStore(book)
	cart := &fakeCartStore{}
	svc := NewCartService(books, cart, PassthroughTx{})

	_, err := svc.Add(context.Background(), user, book.ID, 2)
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "20.00", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, 2, resp.TotalItems)

	// A price change shows up on the next read.
	books.books[book.ID].PriceCents = 1500
	resp, err = svc.Get(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "30.00", resp.TotalAmount.StringFixed(2))
}
