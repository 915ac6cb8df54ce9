package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// EnvDevelopment is the deployment mode that enables the localhost CORS allow-list.
const EnvDevelopment = "development"

// developmentOrigins are the browser origins allowed in development mode
var developmentOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Config holds all configuration for the application
type Config struct {
	// Deployment mode, "development" or anything else
	Environment string

	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// CORS configuration
	CORS CORSConfig

	// Redis cache configuration
	Cache CacheConfig

	// Password hashing configuration
	Security SecurityConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MaxLifetime    time.Duration
	ConnTimeout    time.Duration
	QueryTimeout   time.Duration
	SimpleProtocol bool
	AutoMigrate    bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// CacheConfig holds the optional Redis read-through cache configuration.
// The cache is disabled when RedisURL is empty.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// SecurityConfig holds password hashing configuration
type SecurityConfig struct {
	PasswordHashAlgorithm string
	BcryptCost            int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil {
			log.Warnf(".env file not found: %v", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment without
// touching .env files.
func FromEnv() (*Config, error) {
	env := getEnv("ENVIRONMENT", EnvDevelopment)

	config := &Config{
		Environment: env,
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("POSTGRES_HOST", "postgres"),
			Port:           getEnv("POSTGRES_PORT", "5432"),
			User:           getEnv("POSTGRES_USER", "postgres"),
			Password:       getEnv("POSTGRES_PASSWORD", "password"),
			Name:           getEnv("POSTGRES_DB", "todolist"),
			SSLMode:        getEnv("POSTGRES_SSLMODE", "disable"),
			MaxConns:       getInt32Env("DB_MAX_CONNS", 10),
			MinConns:       getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			ConnTimeout:    getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			QueryTimeout:   getDurationEnv("DB_QUERY_TIMEOUT", 30*time.Second),
			SimpleProtocol: getBoolEnv("DB_SIMPLE_PROTOCOL", false),
			AutoMigrate:    getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		CORS: CORSConfig{
			AllowedOrigins:   defaultOrigins(env),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getDurationEnv("CACHE_TTL", time.Minute),
		},
		Security: SecurityConfig{
			PasswordHashAlgorithm: strings.ToLower(getEnv("PASSWORD_HASH_ALGORITHM", "sha256")),
			BcryptCost:            int(getInt32Env("BCRYPT_COST", 10)),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// defaultOrigins picks the CORS allow-list for the deployment mode.
// CORS_ALLOWED_ORIGINS overrides it only outside development.
func defaultOrigins(env string) []string {
	if env == EnvDevelopment {
		return append([]string(nil), developmentOrigins...)
	}
	return getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be greater than zero")
	}
	switch c.Security.PasswordHashAlgorithm {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("PASSWORD_HASH_ALGORITHM must be sha256 or bcrypt, got %q", c.Security.PasswordHashAlgorithm)
	}

	if c.Security.PasswordHashAlgorithm == "sha256" {
		log.Warn("Passwords are stored as unsalted SHA-256 digests. Set PASSWORD_HASH_ALGORITHM=bcrypt for salted hashing.")
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		log.Infof("No CORS origins allowed in %s mode", c.Environment)
	}

	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsCacheConfigured checks if the Redis cache is enabled
func (c *Config) IsCacheConfigured() bool {
	return c.Cache.RedisURL != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
