package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the environment-driven application configuration.
type Config struct {
	Port        int
	DatabaseURL string

	JWTSecret       string
	TokenTTLMinutes int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	EmployeeCodePrefix string

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET are mandatory; everything else has development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               envInt("PORT", 8080),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTLMinutes:    envInt("TOKEN_TTL_MINUTES", 60),
		RedisAddr:          envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            envInt("REDIS_DB", 0),
		MinioEndpoint:      envDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     envDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:     envDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:        envDefault("MINIO_BUCKET", "staffsync-documents"),
		MinioUseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
		EmployeeCodePrefix: envDefault("EMPLOYEE_CODE_PREFIX", "EMP"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// JobsConfig tunes the background scheduler and dashboard caching.
type JobsConfig struct {
	// Cron expressions, standard five-field format.
	AccrualCron  string `toml:"accrual_cron"`
	ReminderCron string `toml:"reminder_cron"`

	DashboardTTLSeconds int `toml:"dashboard_ttl_seconds"`
}

// DefaultJobsConfig: accrue on the 1st at 03:00, remind at 09:00 daily.
func DefaultJobsConfig() *JobsConfig {
	return &JobsConfig{
		AccrualCron:         "0 3 1 * *",
		ReminderCron:        "0 9 * * *",
		DashboardTTLSeconds: 120,
	}
}

// LoadJobsConfig reads the optional TOML jobs file; a missing file yields
// the defaults.
func LoadJobsConfig(filename string) (*JobsConfig, error) {
	cfg := DefaultJobsConfig()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("failed to load jobs config file: %w", err)
	}
	return cfg, nil
}
