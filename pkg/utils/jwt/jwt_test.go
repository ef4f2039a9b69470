package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := signer.GenerateToken(10, 2, "Skyline Builders")
		require.NoError(t, err)

		claims, err := signer.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(10), claims.UserID)
		assert.Equal(t, uint(2), claims.UserType)
		assert.Equal(t, "Skyline Builders", claims.Name)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewSigner("other-secret", time.Hour).GenerateToken(10, 2, "")
		require.NoError(t, err)

		_, err = signer.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		// NewSigner replaces a non-positive ttl, so build the signer directly.
		expired := &Signer{secret: []byte("test-secret"), ttl: -time.Minute}
		token, err := expired.GenerateToken(10, 2, "")
		require.NoError(t, err)

		_, err = signer.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
