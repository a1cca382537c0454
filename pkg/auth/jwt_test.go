package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateToken("user-1", "demo", "demo@spendpause.dev")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "demo", claims.Username)
	assert.Equal(t, "demo@spendpause.dev", claims.Email)
}

func TestValidateTokenRejections(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
		token, err := other.GenerateToken("user-1", "demo", "demo@spendpause.dev")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)
		token, err := shortLived.GenerateToken("user-1", "demo", "demo@spendpause.dev")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
