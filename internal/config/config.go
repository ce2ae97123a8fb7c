package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Scheduler    SchedulerConfig
	Notification NotificationConfig
	Kafka        KafkaConfig
	Redis        RedisConfig
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	ManagerRoleID  string
	AllowedOrigins []string
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	RecalculationInterval time.Duration
}

type NotificationConfig struct {
	RelayInterval time.Duration
	BatchSize     int
}

// KafkaConfig is optional; an empty broker list disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig is optional; an empty address falls back to a process-local lock.
type RedisConfig struct {
	Addr    string
	LockTTL time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Driver:     getEnv("DB_DRIVER", DriverPostgres),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "vacation_planner"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "vacation.db"),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "vacation-planner"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ManagerRoleID:  getEnv("MANAGER_ROLE_ID", "manager"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour)
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Background jobs
	recalcInterval, err := getEnvDuration("RECALCULATION_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.Scheduler = SchedulerConfig{RecalculationInterval: recalcInterval}

	relayInterval, err := getEnvDuration("NOTIFICATION_RELAY_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	batchSize, err := getEnvInt("NOTIFICATION_BATCH_SIZE", 100)
	if err != nil {
		return nil, err
	}
	config.Notification = NotificationConfig{
		RelayInterval: relayInterval,
		BatchSize:     batchSize,
	}

	// Optional integrations
	config.Kafka = KafkaConfig{
		Brokers: getEnvSlice("KAFKA_BROKERS", nil),
		Topic:   getEnv("KAFKA_NOTIFICATION_TOPIC", "vacation.notifications"),
	}

	lockTTL, err := getEnvDuration("REDIS_LOCK_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		Addr:    getEnv("REDIS_ADDR", ""),
		LockTTL: lockTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.ManagerRoleID == "" {
		return fmt.Errorf("MANAGER_ROLE_ID is required")
	}
	if c.Scheduler.RecalculationInterval <= 0 {
		return fmt.Errorf("RECALCULATION_INTERVAL must be positive")
	}
	if c.Notification.RelayInterval <= 0 {
		return fmt.Errorf("NOTIFICATION_RELAY_INTERVAL must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_NOTIFICATION_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
