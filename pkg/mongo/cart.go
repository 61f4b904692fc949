package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openshelf/bookstore-api/pkg/commerce"
	"github.com/openshelf/bookstore-api/pkg/models"
)

// CartRepo implements commerce.CartStore. The unique (user_id, book_id)
// index backs the one-line-per-book invariant; concurrent first-adds collide
// on it instead of creating duplicate lines.
type CartRepo struct{}

func NewCartRepo() *CartRepo {
	return &CartRepo{}
}

func (r *CartRepo) ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	cursor, err := GetCollection("cart_items").Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepo) FindByUserAndBook(ctx context.Context, userID, bookID bson.ObjectID) (*models.CartItem, error) {
	var item models.CartItem
	err := GetCollection("cart_items").FindOne(ctx, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "book_id", Value: bookID},
	}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, commerce.ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) GetByID(ctx context.Context, id bson.ObjectID) (*models.CartItem, error) {
	var item models.CartItem
	err := GetCollection("cart_items").FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, commerce.ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) Save(ctx context.Context, item *models.CartItem) error {
	coll := GetCollection("cart_items")
	if item.ID.IsZero() {
		item.ID = bson.NewObjectID()
		_, err := coll.InsertOne(ctx, item)
		return err
	}
	_, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: item.ID}}, item)
	return err
}

func (r *CartRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := GetCollection("cart_items").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return commerce.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepo) ClearByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := GetCollection("cart_items").DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	return err
}
