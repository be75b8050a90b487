package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	APIBaseURL     string
	RequestTimeout time.Duration

	SecretKey  string
	SessionTTL time.Duration
	RedisURL   string
	CORSOrigin string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

var (
	ErrMissingAPIBaseURL = errors.New("API_BASE_URL is not set")
	ErrMissingSecretKey  = errors.New("SECRET_KEY is not set")
	ErrMissingDBHost     = errors.New("DB_HOST is not set")
)

func read() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		AppEnv:         os.Getenv("APP_ENV"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SecretKey:      os.Getenv("SECRET_KEY"),
		SessionTTL:     getDuration("SESSION_TTL", 8*time.Hour),
		RedisURL:       os.Getenv("REDIS_URL"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getEnv("DB_PORT", "5432"),
	}
}

// Load reads the environment (and a .env file if present).
func Load() (*Config, error) {
	cfg := read()

	if cfg.APIBaseURL == "" {
		return nil, ErrMissingAPIBaseURL
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}

	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

// LoadDatabase only needs the DB_* variables; cmd/migrate uses it.
func LoadDatabase() (*Config, error) {
	cfg := read()
	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AuditEnabled reports whether a database is configured for the audit trail.
func (c *Config) AuditEnabled() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
