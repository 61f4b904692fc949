package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openshelf/bookstore-api/pkg/models"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category with this name already exists")
)

type CategoryRepo struct{}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := GetCollection("categories").Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id bson.ObjectID) (*models.Category, error) {
	var category models.Category
	err := GetCollection("categories").FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = bson.NewObjectID()
	}
	_, err := GetCollection("categories").InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateCategory
	}
	return err
}

func (r *CategoryRepo) Update(ctx context.Context, category *models.Category) error {
	res, err := GetCollection("categories").ReplaceOne(ctx, bson.D{{Key: "_id", Value: category.ID}}, category)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateCategory
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := GetCollection("categories").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
