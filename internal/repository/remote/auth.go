package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
)

// Login exchanges credentials for a bearer token and starts using it.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	var resp auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			return auth.LoginResponse{}, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return auth.LoginResponse{}, err
	}

	c.SetToken(resp.AccessToken)
	return resp, nil
}
