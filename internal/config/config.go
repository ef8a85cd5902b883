// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const defaultJWTSecret = "change-me"

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Log         LogConfig
	Search      SearchConfig
	Listing     ListingConfig
	Auth        AuthConfig
	Cron        CronConfig
	Geocoder    GeocoderConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// URL returns the postgres connection string
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// RedisConfig holds redis configuration. An empty URL selects the in-memory cache.
type RedisConfig struct {
	URL string
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string
	Encoding string
}

// SearchConfig holds search paging limits
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	Timezone        string
}

// ListingConfig holds listing lifecycle configuration
type ListingConfig struct {
	ViewDedupTTL     time.Duration
	CategoryCacheTTL time.Duration
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	JWTSecret string
}

// CronConfig holds maintenance sweep configuration
type CronConfig struct {
	Secret        string
	SweepInterval time.Duration
}

// GeocoderConfig holds Google Geocoding API configuration
type GeocoderConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "yardsalefndr"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Search: SearchConfig{
			DefaultPageSize: getEnvAsInt("SEARCH_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getEnvAsInt("SEARCH_MAX_PAGE_SIZE", 100),
			Timezone:        getEnv("APP_TIMEZONE", "America/Vancouver"),
		},
		Listing: ListingConfig{
			ViewDedupTTL:     getEnvAsDuration("VIEW_DEDUP_TTL", 25*time.Hour),
			CategoryCacheTTL: getEnvAsDuration("CATEGORY_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		Cron: CronConfig{
			Secret:        getEnv("CRON_SECRET", ""),
			SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", 1*time.Hour),
		},
		Geocoder: GeocoderConfig{
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL: getEnv("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com"),
			Timeout: getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	return config, validate(config)
}

// Location returns the zone used to decide what "today" is
func (c SearchConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Auth.JWTSecret == defaultJWTSecret && config.Environment != "development" {
		return errors.New("JWT secret must be set in non-development environments")
	}
	if config.Search.DefaultPageSize <= 0 || config.Search.MaxPageSize <= 0 {
		return errors.New("search page sizes must be positive")
	}
	if config.Search.DefaultPageSize > config.Search.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds maximum %d",
			config.Search.DefaultPageSize, config.Search.MaxPageSize)
	}
	if _, err := config.Search.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.Search.Timezone, err)
	}
	if config.Cron.SweepInterval <= 0 {
		return errors.New("sweep interval must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
