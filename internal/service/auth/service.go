package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-sync/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	configRepo company.ConfigRepository
	jwt.Service
}

// NewAuthService wires the auth service. db may be nil, in which case bootstrap writes
// are not wrapped in a transaction.
func NewAuthService(db *database.DB, employeeRepository employee.EmployeeRepository, configRepository company.ConfigRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
		configRepo:         configRepository,
		Service:            jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, a.db, fn)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if emp.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresIn, err := a.Service.GenerateAccessToken(emp)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("Employee logged in", "user_id", emp.ID, "company_id", emp.CompanyID, "role", emp.Role)

	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresIn,
		Employee:             employee.ToResponse(emp),
	}, nil
}

// EnsureOwner implements auth.AuthService.
func (a *AuthServiceImpl) EnsureOwner(ctx context.Context, req auth.BootstrapRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	_, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, fmt.Errorf("failed to get employee by email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	companyID, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate company id: %w", err)
	}
	ownerID, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate employee id: %w", err)
	}

	err = a.inTransaction(ctx, func(ctx context.Context) error {
		cfg := company.DefaultSystemConfig()
		if req.CompanyName != "" {
			cfg.CompanyName = req.CompanyName
		}
		if err := a.configRepo.Upsert(ctx, companyID.String(), cfg); err != nil {
			return err
		}

		_, err := a.EmployeeRepository.Create(ctx, employee.Employee{
			ID:           ownerID.String(),
			CompanyID:    companyID.String(),
			FullName:     req.FullName,
			Email:        req.Email,
			Role:         employee.RoleOwner,
			PasswordHash: &hash,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to bootstrap owner: %w", err)
	}

	slog.Info("Bootstrapped company owner", "company_id", companyID.String(), "user_id", ownerID.String())
	return true, nil
}
