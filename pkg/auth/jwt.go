package auth

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// hs256 needs at least a 256-bit key
const minKeyLengthBytes = 32

var ErrInvalidAccessToken = errors.New("invalid access token")

// TokenProvider mints and verifies short-lived HS256 access tokens. The
// subject claim carries the user's email. Secrets may be raw text or
// base64-encoded; short keys are zero-padded up to the HS256 minimum.
type TokenProvider struct {
	key []byte
	ttl time.Duration
}

func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(key) == 0 {
		key = []byte(secret)
	}
	if len(key) < minKeyLengthBytes {
		padded := make([]byte, minKeyLengthBytes)
		copy(padded, key)
		key = padded
	}
	return &TokenProvider{key: key, ttl: ttl}
}

func (p *TokenProvider) Generate(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.key)
}

// Subject verifies the token's signature and expiry and returns its subject.
func (p *TokenProvider) Subject(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAccessToken
		}
		return p.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidAccessToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidAccessToken
	}
	return claims.Subject, nil
}

func (p *TokenProvider) ExpiresInSeconds() int64 {
	return int64(p.ttl.Seconds())
}
