package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const issuer = "polls-test"

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: issuer})
	require.NoError(t, err)
	return km
}

func mint(t *testing.T, km *jwtx.KeyManager, tokenType string, userID int64, role string) string {
	t.Helper()
	tok, err := km.GetSigner().Sign(jwtx.NewClaims(tokenType, userID, "someone", role, time.Minute, issuer, time.Now()))
	require.NoError(t, err)
	return tok
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["detail"]
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	km := newKeyManager(t)

	var seenID int64
	var seenRole string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = httpx.UserIDFromContext(r.Context())
		seenRole = httpx.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(km.Verifier))

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/voted-questions", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		rec := do("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.Equal(t, httpx.DetailNoCredentials, decodeDetail(t, rec))
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := do("Bearer nope")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, httpx.DetailInvalidToken, decodeDetail(t, rec))
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		rec := do("Bearer " + mint(t, km, jwtx.TokenTypeRefresh, 5, "user"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired access token", func(t *testing.T) {
		tok, err := km.GetSigner().Sign(jwtx.NewClaims(jwtx.TokenTypeAccess, 5, "someone", "user", time.Minute, issuer, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		rec := do("Bearer " + tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, httpx.DetailInvalidToken, decodeDetail(t, rec))
	})

	t.Run("token from another key", func(t *testing.T) {
		rec := do("Bearer " + mint(t, newKeyManager(t), jwtx.TokenTypeAccess, 5, "user"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token accepted", func(t *testing.T) {
		rec := do("Bearer " + mint(t, km, jwtx.TokenTypeAccess, 5, "admin"))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, int64(5), seenID)
		require.Equal(t, "admin", seenRole)
	})
}

func TestRequireRole(t *testing.T) {
	km := newKeyManager(t)

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.AuthnMiddleware(km.Verifier), httpx.RequireRole("admin"))

	for _, tc := range []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
		{"", http.StatusForbidden},
	} {
		t.Run("role="+tc.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/create-question", strings.NewReader("{}"))
			req.Header.Set("Authorization", "Bearer "+mint(t, km, jwtx.TokenTypeAccess, 1, tc.role))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusForbidden {
				require.Equal(t, httpx.DetailForbidden, decodeDetail(t, rec))
			}
		})
	}
}
