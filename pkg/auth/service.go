package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/logger"
	"github.com/openshelf/bookstore-api/pkg/models"
)

// refresh tokens carry 384 bits of entropy, well past the 256-bit floor
const refreshTokenBytes = 48

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrTokenNotFound = errors.New("refresh token not found")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// TokenStore persists refresh tokens by hash. Claim is the heart of
// rotation: it atomically flips exactly one ACTIVE token to revoked and
// returns it, so two concurrent rotations of the same raw value produce one
// winner and one ErrTokenNotFound.
type TokenStore interface {
	Insert(ctx context.Context, token *models.RefreshToken) error
	DeleteByUser(ctx context.Context, userID bson.ObjectID) error
	Claim(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
}

type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements registration, login and single-use refresh rotation.
type Service struct {
	users      UserStore
	tokens     TokenStore
	provider   *TokenProvider
	refreshTTL time.Duration
	tx         TxRunner
}

func NewService(users UserStore, tokens TokenStore, provider *TokenProvider, refreshTTL time.Duration, tx TxRunner) *Service {
	return &Service{users: users, tokens: tokens, provider: provider, refreshTTL: refreshTTL, tx: tx}
}

// Register creates the account and issues the first token pair.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	}
	user.SetTimestamps()

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, global.BadRequest("Email already exists")
		}
		return nil, err
	}

	logger.Audit("AUTH_REGISTER", user.Email, "SUCCESS", "New account created")
	return s.issue(ctx, user)
}

// Login verifies credentials and issues a fresh pair, revoking any refresh
// token the user held before.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, global.Unauthorized("Invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		logger.Audit("AUTH_LOGIN", email, "FAILURE", "Bad credentials")
		return nil, global.Unauthorized("Invalid email or password")
	}

	logger.Audit("AUTH_LOGIN", user.Email, "SUCCESS", "User login")
	return s.issue(ctx, user)
}

// Refresh rotates a refresh token. The presented token is atomically revoked
// before its replacement exists; a second caller holding the same raw value
// always fails. An expired token is revoked by the claim even though the
// call fails.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*models.AuthResponse, error) {
	claimed, err := s.tokens.Claim(ctx, HashToken(rawToken))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, global.BadRequest("Invalid refresh token")
		}
		return nil, err
	}
	if claimed.IsExpired(time.Now()) {
		return nil, global.BadRequest("Refresh token expired")
	}

	user, err := s.users.GetByID(ctx, claimed.UserID)
	if err != nil {
		return nil, err
	}

	logger.Audit("AUTH_REFRESH", user.Email, "SUCCESS", "Token rotated")
	return s.issue(ctx, user)
}

// ResolveAccessToken verifies a bearer token and loads the user it names.
func (s *Service) ResolveAccessToken(ctx context.Context, token string) (*models.User, error) {
	email, err := s.provider.Subject(token)
	if err != nil {
		return nil, global.Unauthorized("Invalid or expired access token")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, global.Unauthorized("Invalid or expired access token")
		}
		return nil, err
	}
	return user, nil
}

// issue revokes every prior refresh token for the user, persists a new one
// and mints an access token. Runs in a transaction so two concurrent issues
// can never leave two active tokens behind.
func (s *Service) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	raw, hash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.tokens.Insert(ctx, &models.RefreshToken{
			UserID:    user.ID,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(s.refreshTTL),
			Revoked:   false,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	access, err := s.provider.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:        access,
		AccessToken:  access,
		RefreshToken: raw,
		TokenType:    "Bearer",
		ExpiresIn:    s.provider.ExpiresInSeconds(),
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
	}, nil
}

func newRefreshToken() (raw, hash string, err error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

// HashToken is the at-rest form of a raw refresh token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
