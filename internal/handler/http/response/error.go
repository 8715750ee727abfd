package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")

	// Company domain errors
	case errors.Is(err, company.ErrConfigNotFound):
		NotFound(w, "System config not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRevisionConflict):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrMultipleOpenSessions):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrLateReasonRequired):
		BadRequest(w, err.Error(), map[string]string{"late_reason": "late_reason is required"})
	case errors.Is(err, attendance.ErrInvalidLocation):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
