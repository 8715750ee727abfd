package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
)

// RequireManager requires manager or owner role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, employee.ErrManagerAccessRequired)
			return
		}

		emp := employee.Employee{Role: claims.Role}
		if !emp.IsManager() {
			response.HandleError(w, employee.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
