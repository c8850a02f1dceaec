package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

var ErrBootstrapFailedToCreateAdmin = errors.New("failed to create admin user")

// BootstrapService seeds an admin account at startup.
type BootstrapService struct {
	Store store.Store
	Users *UserService
}

// EnsureAdmin creates the seed admin unless the username already exists. It
// reports whether a user was created. An empty seed is a no-op.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, seed domain.AdminSeed) (bool, error) {
	l := slogx.FromContext(ctx)

	if seed.Username == "" || seed.Password == "" {
		return false, nil
	}

	existing, err := s.Store.Users().GetUserByUsername(ctx, seed.Username)
	if err == nil {
		if !existing.IsAdmin() {
			l.Warn("seed admin username belongs to a regular user", slog.String("username", seed.Username))
		}
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	firstName, lastName := seed.FirstName, seed.LastName
	if firstName == "" {
		firstName = "Admin"
	}
	if lastName == "" {
		lastName = "User"
	}

	u, err := s.Users.create(ctx, domain.Registration{
		Username:  seed.Username,
		Password:  seed.Password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      domain.RoleAdmin,
	}, true)
	if err != nil {
		l.Error("failed to seed admin", slog.Any("error", err))
		return false, errors.Join(ErrBootstrapFailedToCreateAdmin, err)
	}

	l.Info("seeded admin user", slog.Int64("user_id", u.ID), slog.String("username", u.Username))
	return true, nil
}
