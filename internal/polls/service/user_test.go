package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t), AllowAdminSignup: true}

	t.Run("creates user with hashed password", func(t *testing.T) {
		u, err := users.Register(ctx, domain.Registration{
			Username: "alice", Password: "secret1", FirstName: " Alice ", LastName: "A",
		})
		require.NoError(t, err)
		require.Positive(t, u.ID)
		require.Equal(t, domain.RoleUser, u.Role)
		require.Equal(t, "Alice", u.FirstName)
		require.NotEqual(t, "secret1", u.PasswordHash)
		require.NotContains(t, u.PasswordHash, "secret1")
		require.NoError(t, cryptox.VerifyPassword("secret1", u.PasswordHash))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Register(ctx, domain.Registration{
			Username: "alice", Password: "another1", FirstName: "Other", LastName: "Alice",
		})
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, MsgUsernameTaken, verr.Fields["username"])
	})

	t.Run("field errors are reported together", func(t *testing.T) {
		_, err := users.Register(ctx, domain.Registration{
			Username: "al", Password: "12345", FirstName: "   ", LastName: "", Role: "superuser",
		})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, map[string]string{
			"username":   MsgUsernameTooShort,
			"password":   MsgPasswordTooShort,
			"first_name": MsgFirstNameEmpty,
			"last_name":  MsgLastNameEmpty,
			"user_type":  `"superuser" is not a valid choice.`,
		}, verr.Fields)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := users.Register(ctx, domain.Registration{FirstName: "A", LastName: "B"})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, MsgFieldRequired, verr.Fields["username"])
		require.Equal(t, MsgFieldRequired, verr.Fields["password"])
	})

	t.Run("whitespace password", func(t *testing.T) {
		for pw, want := range map[string]string{
			"      ":    MsgFieldRequired,
			"  abc   ":  MsgPasswordTooShort,
			"\tab cd\n": MsgPasswordTooShort,
		} {
			_, err := users.Register(ctx, domain.Registration{
				Username: "spacey", Password: pw, FirstName: "S", LastName: "P",
			})

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "%q", pw)
			require.Equal(t, want, verr.Fields["password"], "%q", pw)
		}

		u, err := users.Register(ctx, domain.Registration{
			Username: "padded", Password: " secret1 ", FirstName: "P", LastName: "D",
		})
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword(" secret1 ", u.PasswordHash))
	})

	t.Run("username too long", func(t *testing.T) {
		_, err := users.Register(ctx, domain.Registration{
			Username: strings.Repeat("u", 151), Password: "secret1", FirstName: "A", LastName: "B",
		})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, MsgMaxLength150, verr.Fields["username"])
	})

	t.Run("admin signup", func(t *testing.T) {
		u, err := users.Register(ctx, domain.Registration{
			Username: "boss", Password: "secret1", FirstName: "B", LastName: "Oss", Role: domain.RoleAdmin,
		})
		require.NoError(t, err)
		require.True(t, u.IsAdmin())

		locked := &UserService{Store: users.Store, AllowAdminSignup: false}
		_, err = locked.Register(ctx, domain.Registration{
			Username: "boss2", Password: "secret1", FirstName: "B", LastName: "Oss", Role: domain.RoleAdmin,
		})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, `"admin" is not a valid choice.`, verr.Fields["user_type"])
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}

	_, err := users.Register(ctx, domain.Registration{
		Username: "alice", Password: "secret1", FirstName: "Alice", LastName: "A",
	})
	require.NoError(t, err)

	u, err := users.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = users.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "mallory", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetAndListUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}

	alice := mustRegister(t, users, "alice", domain.RoleUser)
	mustRegister(t, users, "admin", domain.RoleAdmin)

	got, err := users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = users.GetUserByID(ctx, 999)
	require.ErrorIs(t, err, ErrUserNotFound)

	admins, err := users.ListUsers(ctx, domain.UserFilter{Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	boot := &BootstrapService{Store: st, Users: &UserService{Store: st, AllowAdminSignup: false}}

	created, err := boot.EnsureAdmin(ctx, domain.AdminSeed{})
	require.NoError(t, err)
	require.False(t, created)

	seed := domain.AdminSeed{Username: "root", Password: "rootpass"}
	created, err = boot.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	require.True(t, created)

	u, err := st.Users().GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	require.True(t, u.IsAdmin())
	require.Equal(t, "Admin", u.FirstName)

	created, err = boot.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	require.False(t, created, "second run must not create another user")

	_, err = boot.EnsureAdmin(ctx, domain.AdminSeed{Username: "x", Password: "short"})
	require.ErrorIs(t, err, ErrBootstrapFailedToCreateAdmin)
}
