package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

// Claims is what the API reads back from a verified access token.
type Claims struct {
	UserID    string
	CompanyID string
	Email     string
	Role      employee.Role
}

type Service interface {
	GenerateAccessToken(emp employee.Employee) (token string, expiresIn int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService signs HS256 tokens valid for accessTokenExpirationTime, a Go duration string.
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	if exp <= 0 {
		return nil, fmt.Errorf("access token expiration must be positive, got %s", exp)
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

// GenerateAccessToken returns a signed token and its lifetime in seconds.
func (j *JWTService) GenerateAccessToken(emp employee.Employee) (token string, expiresIn int64, err error) {
	expiresAt := j.now().Add(j.accessTokenExpiration)

	claims := map[string]interface{}{
		"user_id":    emp.ID,
		"company_id": emp.CompanyID,
		"email":      emp.Email,
		"role":       string(emp.Role),
		"type":       tokenTypeAccess,
		"exp":        expiresAt.Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, int64(j.accessTokenExpiration / time.Second), nil
}

var ErrMissingClaims = errors.New("token is missing required claims")

// ClaimsFromContext reads the claims of a token verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	if t, _ := raw["type"].(string); t != tokenTypeAccess {
		return Claims{}, ErrMissingClaims
	}

	var c Claims
	c.UserID, _ = raw["user_id"].(string)
	c.CompanyID, _ = raw["company_id"].(string)
	c.Email, _ = raw["email"].(string)
	role, _ := raw["role"].(string)
	c.Role = employee.Role(role)

	if c.UserID == "" || c.CompanyID == "" {
		return Claims{}, ErrMissingClaims
	}
	return c, nil
}
