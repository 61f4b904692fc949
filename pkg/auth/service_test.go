package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

type fakeUserStore struct {
	users []*models.User
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
	}
	user.ID = bson.NewObjectID()
	copied := *user
	s.users = append(s.users, &copied)
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

type fakeTokenStore struct {
	tokens []*models.RefreshToken
}

func (s *fakeTokenStore) Insert(_ context.Context, token *models.RefreshToken) error {
	token.ID = bson.NewObjectID()
	copied := *token
	s.tokens = append(s.tokens, &copied)
	return nil
}

func (s *fakeTokenStore) DeleteByUser(_ context.Context, userID bson.ObjectID) error {
	kept := s.tokens[:0]
	for _, tok := range s.tokens {
		if tok.UserID != userID {
			kept = append(kept, tok)
		}
	}
	s.tokens = kept
	return nil
}

func (s *fakeTokenStore) Claim(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, tok := range s.tokens {
		if tok.TokenHash == tokenHash && !tok.Revoked {
			tok.Revoked = true
			copied := *tok
			return &copied, nil
		}
	}
	return nil, ErrTokenNotFound
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeUserStore, *fakeTokenStore) {
	users := &fakeUserStore{}
	tokens := &fakeTokenStore{}
	provider := NewTokenProvider("test-secret", 15*time.Minute)
	return NewService(users, tokens, provider, 7*24*time.Hour, passthroughTx{}), users, tokens
}

func registerTestUser(t *testing.T, svc *Service) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "reader@example.com",
		Password:  "correct horse",
		FirstName: "Avid",
		LastName:  "Reader",
	})
	require.NoError(t, err)
	return resp
}

func assertAuthAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *global.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, message, apiErr.Message)
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, users, tokens := newTestService()

	resp := registerTestUser(t, svc)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, resp.AccessToken, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 900, resp.ExpiresIn)
	assert.Equal(t, models.RoleUser, resp.Role)

	require.Len(t, users.users, 1)
	assert.NotEqual(t, "correct horse", users.users[0].Password, "password must be stored hashed")

	require.Len(t, tokens.tokens, 1)
	assert.Equal(t, HashToken(resp.RefreshToken), tokens.tokens[0].TokenHash,
		"only the hash may be persisted")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "reader@example.com",
		Password:  "another pass",
		FirstName: "Second",
		LastName:  "Reader",
	})

	assertAuthAPIError(t, err, 400, "Email already exists")
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), "reader@example.com", "wrong")
	assertAuthAPIError(t, err, 401, "Invalid email or password")

	_, err = svc.Login(context.Background(), "nobody@example.com", "correct horse")
	assertAuthAPIError(t, err, 401, "Invalid email or password")
}

func TestLoginRevokesPriorRefreshToken(t *testing.T) {
	svc, _, tokens := newTestService()
	first := registerTestUser(t, svc)

	second, err := svc.Login(context.Background(), "reader@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Len(t, tokens.tokens, 1, "a user holds at most one active refresh token")

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assertAuthAPIError(t, err, 400, "Invalid refresh token")
}

func TestRefreshIsSingleUse(t *testing.T) {
	svc, _, _ := newTestService()
	registered := registerTestUser(t, svc)

	rotated, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assertAuthAPIError(t, err, 400, "Invalid refresh token")

	again, err := svc.Refresh(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, again.RefreshToken)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Refresh(context.Background(), "never-issued")

	assertAuthAPIError(t, err, 400, "Invalid refresh token")
}

func TestRefreshExpiredTokenIsRevoked(t *testing.T) {
	svc, users, tokens := newTestService()
	registerTestUser(t, svc)

	raw, hash, err := newRefreshToken()
	require.NoError(t, err)
	tokens.tokens = []*models.RefreshToken{{
		ID:        bson.NewObjectID(),
		UserID:    users.users[0].ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}}

	_, err = svc.Refresh(context.Background(), raw)
	assertAuthAPIError(t, err, 400, "Refresh token expired")
	assert.True(t, tokens.tokens[0].Revoked, "an expired presentation still burns the token")

	_, err = svc.Refresh(context.Background(), raw)
	assertAuthAPIError(t, err, 400, "Invalid refresh token")
}

func TestResolveAccessToken(t *testing.T) {
	svc, _, _ := newTestService()
	resp := registerTestUser(t, svc)

	user, err := svc.ResolveAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", user.Email)

	_, err = svc.ResolveAccessToken(context.Background(), "not.a.token")
	assertAuthAPIError(t, err, 401, "Invalid or expired access token")
}
