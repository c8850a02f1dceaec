package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/polls/pkg/idx"
	"github.com/aussiebroadwan/polls/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := slogx.WithContext(context.Background(), base)
	ctx = slogx.With(ctx, "user_id", int64(7))
	slogx.FromContext(ctx).Info("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.EqualValues(t, 7, rec["user_id"])
}

func TestHTTPMiddleware(t *testing.T) {
	t.Run("generates and echoes request id", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slogx.FromContext(r.Context()).Info("inside")
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))

		reqID := rec.Header().Get(slogx.RequestIDHeader)
		_, err := idx.Parse(reqID)
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var inner, access map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &inner))
		require.NoError(t, json.Unmarshal(lines[1], &access))

		require.Equal(t, reqID, inner["req_id"])
		require.Equal(t, "http_request", access["msg"])
		require.EqualValues(t, http.StatusTeapot, access["status"])
		require.Equal(t, "/questions", access["path"])
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		h := slogx.HTTPMiddleware(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(slogx.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get(slogx.RequestIDHeader))
	})
}

func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "polls",
		Version: "v1",
		Env:     "test",
		Level:   "warn",
		Format:  "json",
		Output:  &buf,
	})
	require.Same(t, logger, slog.Default())

	logger.Info("dropped")
	logger.Warn("kept")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "polls", rec["service"])
	require.Equal(t, "v1", rec["version"])
	require.Equal(t, "test", rec["env"])
	require.NotContains(t, rec, "source")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, slogx.ParseLevel(in), in)
	}
}
