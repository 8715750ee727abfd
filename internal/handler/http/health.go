package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers the client's connectivity probe.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			response.ServiceUnavailable(w, "Database unavailable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
