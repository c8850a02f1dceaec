package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// TokenService mints and refreshes stateless JWT pairs. Nothing about issued
// tokens is persisted.
type TokenService struct {
	KeyManager    *jwtx.KeyManager
	Users         *UserService
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RotateRefresh bool // also return a new refresh token from Refresh
}

// Issue returns a fresh access and refresh token for u.
func (s *TokenService) Issue(u domain.User) (domain.TokenPair, error) {
	now := time.Now()

	access, err := s.sign(u, jwtx.TokenTypeAccess, s.accessTTL(), now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.sign(u, jwtx.TokenTypeRefresh, s.refreshTTL(), now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The user is
// reloaded so deleted accounts stop getting tokens and role changes apply.
// RefreshToken in the result is empty unless RotateRefresh is set.
func (s *TokenService) Refresh(ctx context.Context, raw string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.KeyManager.Verifier.Verify(raw)
	if err != nil {
		l.Info("refresh token rejected", slog.Any("error", err))
		return domain.TokenPair{}, ErrInvalidToken
	}
	if err := claims.ValidateType(jwtx.TokenTypeRefresh); err != nil {
		l.Info("refresh token rejected", slog.Any("error", err))
		return domain.TokenPair{}, ErrInvalidToken
	}

	u, err := s.Users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			l.Info("refresh token for unknown user", slog.Int64("user_id", claims.UserID))
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, err
	}

	now := time.Now()
	access, err := s.sign(u, jwtx.TokenTypeAccess, s.accessTTL(), now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair := domain.TokenPair{AccessToken: access, ExpiresIn: s.accessTTL()}
	if s.RotateRefresh {
		if pair.RefreshToken, err = s.sign(u, jwtx.TokenTypeRefresh, s.refreshTTL(), now); err != nil {
			return domain.TokenPair{}, err
		}
	}
	return pair, nil
}

func (s *TokenService) sign(u domain.User, tokenType string, ttl time.Duration, now time.Time) (string, error) {
	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return "", errors.New("no signing key loaded")
	}
	claims := jwtx.NewClaims(tokenType, u.ID, u.Username, string(u.Role), ttl, s.Issuer, now)
	return signer.Sign(claims)
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}
