package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/gizo333/react-server/internal/errors"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		ttl         time.Duration
		expectedTTL time.Duration
	}{
		{name: "explicit ttl", ttl: 30 * time.Minute, expectedTTL: 30 * time.Minute},
		{name: "zero ttl falls back to default", ttl: 0, expectedTTL: DefaultTokenTTL},
		{name: "negative ttl falls back to default", ttl: -time.Minute, expectedTTL: DefaultTokenTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService("secret", tt.ttl)
			assert.Equal(t, tt.expectedTTL, ts.TTL())
		})
	}
}

func TestGenerateAndVerify(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)

	// Already expired at issuance.
	token, err := ts.GenerateWithTTL("user-123", -time.Second)
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	assert.ErrorIs(t, err, autherror.ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestVerifyWrongSecret(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)
	other := NewTokenService("another-secret", time.Minute)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	claims, err := other.Verify(token)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerifyTamperedToken(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	// Flip a byte in the payload; the signature no longer matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	claims, err := ts.Verify(string(tampered))
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerifyRejectsNonHMACAlgorithm(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)

	claims := SessionClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	got, err := ts.Verify(unsigned)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
	assert.Nil(t, got)
}

func TestVerifyMalformedToken(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := ts.Verify(token)
		assert.ErrorIs(t, err, autherror.ErrInvalidToken)
		assert.Nil(t, claims)
	}
}
