package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-platform/internal/models"
)

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewTokenService("secret", time.Hour)
	tokens.now = fixedClock(now)
	user := &models.User{ID: uuid.New(), FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Role: models.RoleAdmin}

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	actor, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, models.Actor{UserID: user.ID, Name: "Asha Rao", Email: "asha@example.com", Role: models.RoleAdmin}, actor)
}

func TestTokenService_Parse_Rejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &models.User{ID: uuid.New(), Role: models.RoleBasic}

	issuer := NewTokenService("secret", time.Hour)
	issuer.now = fixedClock(now)
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		parser := NewTokenService("secret", time.Hour)
		parser.now = fixedClock(now.Add(2 * time.Hour))

		_, err := parser.Parse(token)

		assert.EqualError(t, err, "Session expired, please login again")
		assert.Equal(t, models.KindUnauthenticated, models.KindOf(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		parser := NewTokenService("other", time.Hour)
		parser.now = fixedClock(now)

		_, err := parser.Parse(token)

		assert.EqualError(t, err, "Authentication invalid")
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{UserID: user.ID}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(unsigned)

		assert.EqualError(t, err, "Authentication invalid")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.EqualError(t, err, "Authentication invalid")
	})
}
