package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/openshelf/bookstore-api/pkg/auth"
	"github.com/openshelf/bookstore-api/pkg/models"
)

// TokenRepo implements auth.TokenStore.
type TokenRepo struct{}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{}
}

func (r *TokenRepo) Insert(ctx context.Context, token *models.RefreshToken) error {
	if token.ID.IsZero() {
		token.ID = bson.NewObjectID()
	}
	_, err := GetCollection("refresh_tokens").InsertOne(ctx, token)
	return err
}

func (r *TokenRepo) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := GetCollection("refresh_tokens").DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	return err
}

// Claim flips an active token to revoked and returns it in one
// findOneAndUpdate. Under concurrent rotation of the same raw value the
// filter matches for exactly one caller; every other caller sees
// ErrTokenNotFound.
func (r *TokenRepo) Claim(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := GetCollection("refresh_tokens").FindOneAndUpdate(ctx,
		bson.D{
			{Key: "token_hash", Value: tokenHash},
			{Key: "revoked", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "revoked", Value: true}}}},
	).Decode(&token)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auth.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}
