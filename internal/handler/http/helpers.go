package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

// companyIDFrom returns the company of the authenticated caller or writes a 401.
func companyIDFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.CompanyID == "" {
		slog.Error("company_id not found in request context")
		response.HandleError(w, auth.ErrInvalidToken)
		return "", false
	}
	return claims.CompanyID, true
}
