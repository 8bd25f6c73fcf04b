package handler

import (
	"log/slog"
	"net/http"

	"github.com/courtside/platform/internal/infra"
)

// HealthHandler reports database and cache reachability. The cache is
// optional, so a cache failure degrades the report without failing it.
// Failure details are logged, never returned.
func HealthHandler(db, cache infra.Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "healthy", "database": "ok", "cache": "ok"}
		status := http.StatusOK

		if cache != nil {
			if err := infra.HealthCheck(r.Context(), cache); err != nil {
				logger.Warn("health check failed", "tag", "HEALTH", "dependency", "cache", "error", err)
				body["status"] = "degraded"
				body["cache"] = "unavailable"
			}
		} else {
			body["cache"] = "disabled"
		}

		if err := infra.HealthCheck(r.Context(), db); err != nil {
			logger.Error("health check failed", "tag", "HEALTH", "dependency", "database", "error", err)
			body["status"] = "unhealthy"
			body["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		RespondJSON(w, status, body)
	}
}
