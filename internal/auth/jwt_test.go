package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("service-key"))
	require.NoError(t, err)
	return token
}

func TestDecodeToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token := signed(t, jwt.MapClaims{"userId": "u1", "email": "ana@example.com", "exp": exp.Unix()})

	c, err := DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.True(t, exp.Equal(c.ExpiresAt))
}

func TestDecodeToken_SubjectFallback(t *testing.T) {
	c, err := DecodeToken(signed(t, jwt.MapClaims{"sub": "s-9"}))

	require.NoError(t, err)
	assert.Equal(t, "s-9", c.UserID)
	assert.True(t, c.ExpiresAt.IsZero())
}

func TestDecodeToken_Opaque(t *testing.T) {
	_, err := DecodeToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrNotJWT)
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"past exp", signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"exp equal to now", signed(t, jwt.MapClaims{"exp": now.Unix()}), true},
		{"future exp", signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), false},
		{"no exp", signed(t, jwt.MapClaims{"sub": "x"}), false},
		{"opaque", "opaque-token", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.token, now))
		})
	}
}
