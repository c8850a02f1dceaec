package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe reporting the database connection and the token signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	pollsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	pollsdk.HealthResponse	"one or more checks failed"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	km *jwtx.KeyManager,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &pollsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("database ping failed", "error", err)
			checks.Database = "error: unreachable"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if km == nil || !km.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, pollsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
