package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := GenerateJWT("a@example.com", 42, secret)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims["email"])
	assert.Equal(t, float64(42), claims["userId"])

	_, err = ParseJWT(token, []byte("other-secret"))
	assert.Error(t, err)

	_, err = GenerateJWT("a@example.com", 42, nil)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestCalculateAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, CalculateAge(time.Date(1996, 10, 14, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 29, CalculateAge(time.Date(1996, 10, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, CalculateAge(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), now))
}
