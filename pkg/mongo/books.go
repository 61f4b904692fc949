package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openshelf/bookstore-api/pkg/commerce"
	"github.com/openshelf/bookstore-api/pkg/models"
)

var ErrDuplicateISBN = errors.New("book with this ISBN already exists")

// BookRepo implements commerce.BookStore plus the catalog CRUD queries.
type BookRepo struct{}

func NewBookRepo() *BookRepo {
	return &BookRepo{}
}

func (r *BookRepo) GetBook(ctx context.Context, id bson.ObjectID) (*models.Book, error) {
	var book models.Book
	err := GetCollection("books").FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, commerce.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DecrementStock is a compare-and-set: the filter only matches while stock
// still covers the quantity, so the counter can never go negative no matter
// how many checkouts race.
func (r *BookRepo) DecrementStock(ctx context.Context, id bson.ObjectID, quantity int) error {
	res, err := GetCollection("books").UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "stock_quantity", Value: bson.D{{Key: "$gte", Value: quantity}}},
		},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "stock_quantity", Value: -quantity}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commerce.ErrInsufficientStock
	}
	return nil
}

func (r *BookRepo) List(ctx context.Context, page, size int, sortField string, sortDir int) ([]models.Book, int64, error) {
	return r.findPage(ctx, bson.D{}, page, size, sortField, sortDir)
}

func (r *BookRepo) Search(ctx context.Context, keyword string, page, size int) ([]models.Book, int64, error) {
	pattern := bson.D{{Key: "$regex", Value: keyword}, {Key: "$options", Value: "i"}}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "title", Value: pattern}},
		bson.D{{Key: "author", Value: pattern}},
	}}}
	return r.findPage(ctx, filter, page, size, "title", 1)
}

func (r *BookRepo) ListByCategory(ctx context.Context, categoryID bson.ObjectID, page, size int) ([]models.Book, int64, error) {
	return r.findPage(ctx, bson.D{{Key: "category_id", Value: categoryID}}, page, size, "title", 1)
}

func (r *BookRepo) CountByCategory(ctx context.Context, categoryID bson.ObjectID) (int64, error) {
	return GetCollection("books").CountDocuments(ctx, bson.D{{Key: "category_id", Value: categoryID}})
}

func (r *BookRepo) Insert(ctx context.Context, book *models.Book) error {
	if book.ID.IsZero() {
		book.ID = bson.NewObjectID()
	}
	_, err := GetCollection("books").InsertOne(ctx, book)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateISBN
	}
	return err
}

func (r *BookRepo) Update(ctx context.Context, book *models.Book) error {
	res, err := GetCollection("books").ReplaceOne(ctx, bson.D{{Key: "_id", Value: book.ID}}, book)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateISBN
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commerce.ErrBookNotFound
	}
	return nil
}

func (r *BookRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := GetCollection("books").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return commerce.ErrBookNotFound
	}
	return nil
}

func (r *BookRepo) findPage(ctx context.Context, filter bson.D, page, size int, sortField string, sortDir int) ([]models.Book, int64, error) {
	coll := GetCollection("books")

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}
