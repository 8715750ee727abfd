package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrLateReasonRequired = errors.New("a late reason is required for a check-in after the grace period")
	ErrLocationRequired   = errors.New("location capture is required to clock in")
	ErrInvalidLocation    = errors.New("location must be one of: Office, Home, Client Site")

	// Store errors
	ErrRevisionConflict = errors.New("attendance collection was modified concurrently")
	ErrStoreUnavailable = errors.New("attendance store is unavailable")

	ErrUserRequired = errors.New("user id is required")
)

var ErrMultipleOpenSessions = errors.New("a user may have at most one open session")
