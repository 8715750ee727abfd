package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken          string                    `json:"access_token"`
	AccessTokenExpiresIn int64                     `json:"access_token_expires_in"`
	Employee             employee.EmployeeResponse `json:"employee"`
}

// BootstrapRequest creates the first company and its owner on an empty database.
type BootstrapRequest struct {
	CompanyName string
	FullName    string
	Email       string
	Password    string
}

func (r *BootstrapRequest) Validate() error {
	login := LoginRequest{Email: r.Email, Password: r.Password}
	if err := login.Validate(); err != nil {
		return err
	}
	r.Email = login.Email
	if len(r.Password) < 8 {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: "password must be at least 8 characters",
		}}
	}
	return nil
}
