package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/gizo333/react-server/internal/auth/service TokenGenerator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/gizo333/react-server/internal/errors"
)

const DefaultTokenTTL = 15 * time.Minute

type TokenGenerator interface {
	Generate(userID string) (string, error)
	GenerateWithTTL(userID string, ttl time.Duration) (string, error)
	Verify(tokenString string) (*SessionClaims, error)
	TTL() time.Duration
}

// TokenService issues and verifies HS256-signed session tokens. Expiry is
// embedded in the signed claims, so verification is stateless.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (ts *TokenService) Generate(userID string) (string, error) {
	return ts.GenerateWithTTL(userID, ts.ttl)
}

func (ts *TokenService) GenerateWithTTL(userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// Verify parses and validates the given token string. It returns
// ErrExpiredToken for a well-signed token past its expiry and ErrInvalidToken
// for any signature mismatch, malformed structure, or non-HMAC algorithm.
func (ts *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherror.ErrInvalidToken
		}
		return ts.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrExpiredToken
		}
		return nil, autherror.ErrInvalidToken
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}
