package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIConfig configures the attendance API server.
type APIConfig struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Bootstrap BootstrapConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// BootstrapConfig creates the first owner account when OwnerEmail is set.
type BootstrapConfig struct {
	CompanyName   string
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
}

// ClientConfig configures the attendance CLI.
type ClientConfig struct {
	APIURL          string
	Timezone        string
	ReloadInterval  time.Duration
	ProbeTimeout    time.Duration
	LocationTimeout time.Duration
	LogLevel        string
	Cache           CacheConfig
}

// CacheConfig selects where the client keeps its snapshot and session slots.
type CacheConfig struct {
	Backend string // file or redis
	Dir     string
	Redis   RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// loadDotEnv reads .env when present. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

func LoadAPI() (*APIConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &APIConfig{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Bootstrap = BootstrapConfig{
		CompanyName:   getEnv("BOOTSTRAP_COMPANY_NAME", "HRIS"),
		OwnerName:     getEnv("BOOTSTRAP_OWNER_NAME", "Owner"),
		OwnerEmail:    getEnv("BOOTSTRAP_OWNER_EMAIL", ""),
		OwnerPassword: getEnv("BOOTSTRAP_OWNER_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *APIConfig) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Bootstrap.OwnerEmail != "" && c.Bootstrap.OwnerPassword == "" {
		return fmt.Errorf("BOOTSTRAP_OWNER_PASSWORD is required when BOOTSTRAP_OWNER_EMAIL is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *APIConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func LoadClient() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &ClientConfig{
		APIURL:   strings.TrimRight(getEnv("ATTENDANCE_API_URL", "http://localhost:8080"), "/"),
		Timezone: getEnv("ATTENDANCE_TIMEZONE", "UTC+7"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if config.ReloadInterval, err = getEnvDuration("ATTENDANCE_RELOAD_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if config.ProbeTimeout, err = getEnvDuration("ATTENDANCE_PROBE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if config.LocationTimeout, err = getEnvDuration("ATTENDANCE_LOCATION_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisTTL, err := getEnvDuration("REDIS_TTL", 0)
	if err != nil {
		return nil, err
	}

	config.Cache = CacheConfig{
		Backend: getEnv("ATTENDANCE_CACHE_BACKEND", "file"),
		Dir:     getEnv("ATTENDANCE_CACHE_DIR", defaultCacheDir()),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      redisTTL,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *ClientConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("ATTENDANCE_API_URL is required")
	}
	if c.ReloadInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_RELOAD_INTERVAL must be positive")
	}
	switch c.Cache.Backend {
	case "file":
		if c.Cache.Dir == "" {
			return fmt.Errorf("ATTENDANCE_CACHE_DIR is required for the file cache")
		}
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis cache")
		}
	default:
		return fmt.Errorf("unsupported ATTENDANCE_CACHE_BACKEND %q", c.Cache.Backend)
	}
	return nil
}

// ParseLogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".attendance"
	}
	return dir + string(os.PathSeparator) + "attendance-sync"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
