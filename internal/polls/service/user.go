package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 150
	MinPasswordLength = 6
	MaxNameLength     = 150
)

// Field messages returned by Register.
const (
	MsgFieldRequired    = "This field is required."
	MsgUsernameTaken    = "This username is already taken. Please choose another one."
	MsgUsernameTooShort = "Username must be at least 3 characters long."
	MsgPasswordTooShort = "Password must be at least 6 characters long."
	MsgFirstNameEmpty   = "First name cannot be empty."
	MsgLastNameEmpty    = "Last name cannot be empty."
	MsgMaxLength150     = "Ensure this field has no more than 150 characters."
)

// dummyHash is verified against when a login names an unknown user so both
// paths cost one argon2 computation.
var dummyHash = sync.OnceValues(func() (string, error) {
	return cryptox.HashPassword("polls-dummy-password")
})

type UserService struct {
	Store            store.Store
	AllowAdminSignup bool
}

// Register validates reg and creates a user with an argon2id password hash.
// Field problems are reported together as a *ValidationError.
func (s *UserService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	return s.create(ctx, reg, s.AllowAdminSignup)
}

func (s *UserService) create(ctx context.Context, reg domain.Registration, allowAdmin bool) (domain.User, error) {
	l := slogx.FromContext(ctx)

	reg.Username = strings.TrimSpace(reg.Username)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	if reg.Role == "" {
		reg.Role = domain.RoleUser
	}

	verr := &ValidationError{}
	switch n := utf8.RuneCountInString(reg.Username); {
	case n == 0:
		verr.add("username", MsgFieldRequired)
	case n > MaxUsernameLength:
		verr.add("username", MsgMaxLength150)
	default:
		_, err := s.Store.Users().GetUserByUsername(ctx, reg.Username)
		switch {
		case err == nil:
			verr.add("username", MsgUsernameTaken)
		case !errors.Is(err, store.ErrNotFound):
			return domain.User{}, err
		case n < MinUsernameLength:
			verr.add("username", MsgUsernameTooShort)
		}
	}

	// Length is judged without surrounding whitespace; the hash covers the
	// password exactly as sent.
	switch n := utf8.RuneCountInString(strings.TrimSpace(reg.Password)); {
	case n == 0:
		verr.add("password", MsgFieldRequired)
	case n < MinPasswordLength:
		verr.add("password", MsgPasswordTooShort)
	}

	validateName(verr, "first_name", reg.FirstName, MsgFirstNameEmpty)
	validateName(verr, "last_name", reg.LastName, MsgLastNameEmpty)

	if !reg.Role.Valid() || (reg.Role == domain.RoleAdmin && !allowAdmin) {
		verr.add("user_type", fmt.Sprintf("%q is not a valid choice.", string(reg.Role)))
	}

	if err := verr.orNil(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     reg.Username,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         reg.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent registration.
			return domain.User{}, &ValidationError{Fields: map[string]string{"username": MsgUsernameTaken}}
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.Int64("user_id", u.ID), slog.String("user_type", string(u.Role)))
	return u, nil
}

func validateName(verr *ValidationError, field, value, emptyMsg string) {
	switch n := utf8.RuneCountInString(value); {
	case n == 0:
		verr.add(field, emptyMsg)
	case n > MaxNameLength:
		verr.add(field, MsgMaxLength150)
	}
}

// Authenticate returns the user when password matches. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
		if h, herr := dummyHash(); herr == nil {
			_ = cryptox.VerifyPassword(password, h)
		}
		return domain.User{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.Int64("user_id", u.ID), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// ListUsers returns accounts matching f ordered by id.
func (s *UserService) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.Store.Users().ListUsers(ctx, f)
}
