package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/jwt"
)

type claimsKey struct{}

// AuthRequired rejects requests without a verified access token and stores its claims
// for ClaimsFromContext. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}
