package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/store/drivers/sqlite"
	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "polls-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "polls.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func mustRegister(t *testing.T, users *UserService, username string, role domain.Role) domain.User {
	t.Helper()
	u, err := users.create(context.Background(), domain.Registration{
		Username:  username,
		Password:  "secret1",
		FirstName: "First",
		LastName:  "Last",
		Role:      role,
	}, true)
	require.NoError(t, err)
	return u
}
