package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/config"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	appHTTP "github.com/cmlabs-hris/attendance-sync/internal/handler/http"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-sync/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-sync/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/attendance-sync/internal/service/company"
	employeeService "github.com/cmlabs-hris/attendance-sync/internal/service/employee"
	scheduleService "github.com/cmlabs-hris/attendance-sync/internal/service/schedule"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadAPI()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	configRepo := postgresql.NewConfigRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	authService := serviceAuth.NewAuthService(db, employeeRepo, configRepo, JWTService)
	collectionService := attendanceService.NewCollectionService(attendanceRepo)
	configService := serviceCompany.NewConfigService(configRepo)
	rosterService := scheduleService.NewRosterService(rosterRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	if cfg.Bootstrap.OwnerEmail != "" {
		created, err := authService.EnsureOwner(ctx, auth.BootstrapRequest{
			CompanyName: cfg.Bootstrap.CompanyName,
			FullName:    cfg.Bootstrap.OwnerName,
			Email:       cfg.Bootstrap.OwnerEmail,
			Password:    cfg.Bootstrap.OwnerPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to bootstrap owner: %w", err)
		}
		slog.Info("Owner bootstrap checked", "email", cfg.Bootstrap.OwnerEmail, "created", created)
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       config.ParseLogLevel(cfg.App.LogLevel),
		},
		JWTService,
		appHTTP.HealthHandler(db),
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(collectionService),
		appHTTP.NewConfigHandler(configService),
		appHTTP.NewReferenceHandler(rosterService, employeeSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("Shutting down server")
	return server.Shutdown(shutdownCtx)
}
