package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// Messages returned in the "detail" field of 401 responses.
const (
	DetailNoCredentials = "Authentication credentials were not provided."
	DetailInvalidToken  = "Given token not valid for any token type"
)

// AuthnMiddleware requires a valid access token in the Authorization header.
// Refresh tokens are rejected.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token", DetailNoCredentials)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed", DetailInvalidToken)
				return
			}

			if err := claims.ValidateType(jwtx.TokenTypeAccess); err != nil {
				log.Warn("jwt rejected", "err", err, "token_type", claims.TokenType)
				writeBearerError(w, "access token required", DetailInvalidToken)
				return
			}

			ctx = slogx.With(contextWithAuth(ctx, claims), "user_id", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": detail})
}
