package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "polls-test"

func TestNewClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewClaims(jwtx.TokenTypeAccess, 42, "alice", "admin", 5*time.Minute, exampleIssuer, now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, int64(42), c.UserID)
	require.Equal(t, "alice", c.Username)
	require.Equal(t, "admin", c.UserType)
	require.Equal(t, jwtx.TokenTypeAccess, c.TokenType)
	require.Equal(t, exampleIssuer, c.Issuer)
	require.WithinDuration(t, now.Add(5*time.Minute), c.ExpiresAt.Time, time.Second)
	require.NotEmpty(t, c.ID)

	other := jwtx.NewClaims(jwtx.TokenTypeAccess, 42, "alice", "admin", 5*time.Minute, exampleIssuer, now)
	require.NotEqual(t, c.ID, other.ID, "jti must be unique per token")
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: exampleIssuer}}

	require.NoError(t, c.ValidateIssuer(exampleIssuer))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"polls", "admin"}}}

	require.NoError(t, c.ValidateAudience([]string{"polls"}))
	require.NoError(t, c.ValidateAudience([]string{"foo", "admin"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"chat"}), jwtx.ErrAudience)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{NotBefore: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway absorbs small skew", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second))}}
		require.NoError(t, c.ValidateExpiryWithLeeway(30*time.Second))
		require.ErrorIs(t, c.ValidateExpiryWithLeeway(time.Second), jwtx.ErrExpired)
	})
}

func TestValidateType(t *testing.T) {
	now := time.Now().UTC()
	access := jwtx.NewClaims(jwtx.TokenTypeAccess, 7, "bob", "user", time.Minute, exampleIssuer, now)
	refresh := jwtx.NewClaims(jwtx.TokenTypeRefresh, 7, "bob", "user", time.Minute, exampleIssuer, now)

	require.NoError(t, access.ValidateType(jwtx.TokenTypeAccess))
	require.ErrorIs(t, access.ValidateType(jwtx.TokenTypeRefresh), jwtx.ErrTokenType)
	require.NoError(t, refresh.ValidateType(jwtx.TokenTypeRefresh))
	require.ErrorIs(t, refresh.ValidateType(jwtx.TokenTypeAccess), jwtx.ErrTokenType)

	forged := access
	forged.Subject = "8"
	require.ErrorIs(t, forged.ValidateType(jwtx.TokenTypeAccess), jwtx.ErrInvalidClaim)
}
