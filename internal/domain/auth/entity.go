package auth

import (
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
)

// Session is the authenticated user persisted by the client between runs.
type Session struct {
	Employee    employee.EmployeeResponse `json:"employee"`
	AccessToken string                    `json:"access_token"`
	ExpiresAt   time.Time                 `json:"expires_at"`
}

// NewSession builds a session from a login response issued at now.
func NewSession(resp LoginResponse, now time.Time) Session {
	return Session{
		Employee:    resp.Employee,
		AccessToken: resp.AccessToken,
		ExpiresAt:   now.Add(time.Duration(resp.AccessTokenExpiresIn) * time.Second),
	}
}

// Expired reports whether the token has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
