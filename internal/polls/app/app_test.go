package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		DatabaseDriver:      DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "polls.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		Issuer:              "polls-test",
		Algorithm:           jwtx.AlgorithmEdDSA,
		NumKeys:             2,
		AccessTokenTTL:      time.Minute,
		RefreshTokenTTL:     time.Hour,
		AllowAdminSignup:    false,
		MaxPageSize:         50,
		Admin: domain.AdminSeed{
			Username: "root",
			Password: "rootpass",
		},
	}
}

func TestNewSeedsAdminAndServes(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.Equal(t, 2, app.keyManager.NumSigners())

	body, err := json.Marshal(pollsdk.LoginRequest{Username: "root", Password: "rootpass"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login pollsdk.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, "admin", login.UserType)

	// Admin signup is disabled in this config.
	body, err = json.Marshal(pollsdk.RegisterRequest{
		Username: "mallory", Password: "secret1", FirstName: "M", LastName: "M", UserType: "admin",
	})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "user_type")

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewIsIdempotentAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.db.Close() })

	users, err := second.userService.ListUsers(t.Context(), domain.UserFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestInitTokenKeys(t *testing.T) {
	t.Parallel()
	logger := testLogger()

	t.Run("hs256", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.Algorithm = jwtx.AlgorithmHS256
		cfg.JWTSecret = strings.Repeat("k", 32)
		km, err := InitTokenKeys(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, jwtx.AlgorithmHS256, km.Algorithm())
		require.True(t, km.IsReady())
	})

	t.Run("key file", func(t *testing.T) {
		t.Parallel()
		pemKey, err := cryptox.GenerateEd25519Key()
		require.NoError(t, err)
		file := filepath.Join(t.TempDir(), "key.pem")
		require.NoError(t, os.WriteFile(file, pemKey, 0o600))

		cfg := testConfig(t)
		cfg.KeyFile = file
		cfg.KeyID = "file-key"
		km, err := InitTokenKeys(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, 1, km.NumSigners())
		require.Equal(t, "file-key", km.GetSigner().KID())
	})

	t.Run("missing key file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.KeyFile = filepath.Join(t.TempDir(), "absent.pem")
		_, err := InitTokenKeys(cfg, logger)
		require.Error(t, err)
	})
}
