// Package config loads application settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned when SECRET_KEY is empty outside development.
var ErrMissingSecret = errors.New("SECRET_KEY is required")

// devSecret signs sessions in development when SECRET_KEY is unset.
const devSecret = "dev-only-insecure-secret"

// Config holds all application configuration.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Password PasswordConfig
	Cache    CacheConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the database connection string and migration switch.
type DatabaseConfig struct {
	URL           string
	RunMigrations bool
	ConnectWait   time.Duration
}

// RedisConfig holds optional Redis settings. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// PasswordConfig holds password hashing settings.
type PasswordConfig struct {
	BcryptCost int
}

// CacheConfig holds post cache settings.
type CacheConfig struct {
	PostTTL time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CORSConfig lists allowed origins. Empty disables the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string
}

// IsDevelopment reports whether ENV is "development".
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then builds the configuration from the environment.
func Load() (*Config, error) {
	// .env is optional; system environment wins.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	env := getEnv("ENV", "production")
	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", "sqlite:///blog.db"),
			RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),
			ConnectWait:   getDurationEnv("DB_CONNECT_WAIT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Session: SessionConfig{
			Secret:       os.Getenv("SECRET_KEY"),
			TTL:          getDurationEnv("SESSION_TTL", 7*24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure: getBoolEnv("COOKIE_SECURE", false),
		},
		Password: PasswordConfig{
			BcryptCost: getIntEnv("BCRYPT_COST", 10),
		},
		Cache: CacheConfig{
			PostTTL: getDurationEnv("POST_CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: env == "development",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings. In development a missing SECRET_KEY is
// replaced with a fixed insecure value.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		if !c.IsDevelopment() {
			return ErrMissingSecret
		}
		c.Session.Secret = devSecret
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
