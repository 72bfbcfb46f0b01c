package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
)

func testConfig(secret string) config.Config {
	return config.Config{JWT: config.JWT{Secret: secret, ExpiredIn: 3600}}
}

func Test_JWTToken(t *testing.T) {
	userID := uuid.New()
	cfg := testConfig("test-secret")

	t.Run("happy path - round trip", func(t *testing.T) {
		token, err := GenerateJWTToken(userID, cfg)
		require.NoError(t, err)

		parsed, err := ParseJWTToken(token, cfg)
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("sad path - wrong secret", func(t *testing.T) {
		token, err := GenerateJWTToken(userID, cfg)
		require.NoError(t, err)

		_, err = ParseJWTToken(token, testConfig("other-secret"))
		assert.Equal(t, appErrors.ErrInvalidToken, err)
	})

	t.Run("sad path - expired token", func(t *testing.T) {
		expired := testConfig("test-secret")
		expired.JWT.ExpiredIn = -60

		token, err := GenerateJWTToken(userID, expired)
		require.NoError(t, err)

		_, err = ParseJWTToken(token, expired)
		assert.Equal(t, appErrors.ErrInvalidToken, err)
	})

	t.Run("sad path - garbage input", func(t *testing.T) {
		_, err := ParseJWTToken("not.a.token", cfg)
		assert.Equal(t, appErrors.ErrInvalidToken, err)
	})
}
