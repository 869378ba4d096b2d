package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, tokenStr, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		assert.Equal(t, jwt.SigningMethodHS256, tok.Method)
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint
		email  string
	}{
		{"producer", 1, "produtor@fazenda.com.br"},
		{"plus address", 42, "coop+vendas@example.com"},
		{"large id", 999999, "x@test.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", time.Hour)
			tokenStr, err := gen.GenerateToken(tt.userID, tt.email)
			require.NoError(t, err)

			claims := parse(t, tokenStr, "test-secret")
			assert.Equal(t, float64(tt.userID), claims["sub"])
			assert.Equal(t, tt.email, claims["email"])
			assert.Contains(t, claims, "exp")
			assert.Contains(t, claims, "iat")
		})
	}
}

func TestGenerator_Expiration(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator("test-secret", 2*time.Hour)
	gen.now = func() time.Time { return issued }

	tokenStr, err := gen.GenerateToken(7, "a@b.com")
	require.NoError(t, err)

	// parse without time validation since the fixed clock is in the past
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)

	assert.Equal(t, float64(issued.Unix()), claims["iat"])
	assert.Equal(t, float64(issued.Add(2*time.Hour).Unix()), claims["exp"])
}

func TestGenerator_DifferentUsersGetDifferentTokens(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	a, err := gen.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	b, err := gen.GenerateToken(2, "b@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
