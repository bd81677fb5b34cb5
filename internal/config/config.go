package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Scheduler SchedulerConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	RunMigrations bool
}

// JWTConfig holds token verification configuration. Tokens are issued by
// the upstream identity service with the same shared secret.
type JWTConfig struct {
	Secret string
}

type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// SchedulerConfig controls the background payroll jobs.
type SchedulerConfig struct {
	Enabled bool
	// OpenRunDay is the day of month on which a draft payroll run is
	// opened for every company.
	OpenRunDay int
	// DraftReminderDay is the day of month on which runs still in draft
	// are logged as a reminder.
	DraftReminderDay int
}

func Load() (*Config, error) {
	// Missing .env is fine; production supplies real environment variables.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          dbPort,
		User:          getEnv("DB_USER", "postgres"),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", "payroll"),
		SSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RunMigrations: getEnvBool("DB_RUN_MIGRATIONS", true),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	openRunDay, err := strconv.Atoi(getEnv("PAYROLL_OPEN_RUN_DAY", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OPEN_RUN_DAY: %w", err)
	}
	draftReminderDay, err := strconv.Atoi(getEnv("PAYROLL_DRAFT_REMINDER_DAY", "27"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DRAFT_REMINDER_DAY: %w", err)
	}

	config.Scheduler = SchedulerConfig{
		Enabled:          getEnvBool("SCHEDULER_ENABLED", true),
		OpenRunDay:       openRunDay,
		DraftReminderDay: draftReminderDay,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	// Every month has at least 28 days, so the jobs can never silently skip
	// a month.
	if c.Scheduler.OpenRunDay < 1 || c.Scheduler.OpenRunDay > 28 {
		return fmt.Errorf("PAYROLL_OPEN_RUN_DAY must be between 1 and 28")
	}
	if c.Scheduler.DraftReminderDay < 1 || c.Scheduler.DraftReminderDay > 28 {
		return fmt.Errorf("PAYROLL_DRAFT_REMINDER_DAY must be between 1 and 28")
	}
	return nil
}

// DatabaseURL assembles the postgres DSN shared by the pool and goose.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
