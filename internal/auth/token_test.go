package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   "buyer-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStaticTokenSource(t *testing.T) {
	src := NewStaticTokenSource("abc")
	token, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestStaticTokenSource_Empty(t *testing.T) {
	src := NewStaticTokenSource("")
	_, err := src.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestCachingTokenSource_ReusesFreshToken(t *testing.T) {
	fresh := signedToken(t, time.Now().Add(time.Hour))
	calls := 0
	src := NewCachingTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return fresh, nil
	}, time.Minute)

	for i := 0; i < 3; i++ {
		token, err := src.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
	}
	assert.Equal(t, 1, calls)
}

func TestCachingTokenSource_RefetchesExpiredToken(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Minute))
	fresh := signedToken(t, time.Now().Add(time.Hour))
	tokens := []string{expired, fresh}
	calls := 0
	src := NewCachingTokenSource(func(ctx context.Context) (string, error) {
		token := tokens[calls]
		calls++
		return token, nil
	}, time.Minute)

	token, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expired, token)

	// The cached token is already expired, so the next call fetches again.
	token, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, 2, calls)
}

func TestCachingTokenSource_OpaqueTokenReused(t *testing.T) {
	calls := 0
	src := NewCachingTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return "opaque-not-a-jwt", nil
	}, time.Minute)

	for i := 0; i < 2; i++ {
		token, err := src.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "opaque-not-a-jwt", token)
	}
	assert.Equal(t, 1, calls)
}
