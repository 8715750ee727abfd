package auth

import "context"

type AuthService interface {
	// Login verifies credentials server side and issues an access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// EnsureOwner creates a company and its owner unless the email is already registered.
	EnsureOwner(ctx context.Context, req BootstrapRequest) (created bool, err error)
}
