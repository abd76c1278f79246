package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is everything the server reads from the environment (.env included).
type Config struct {
	Port           string
	BaseURL        string
	AllowedOrigins []string
	AppEnv         string

	DBDriver   string // mysql, postgres or sqlite
	DBDSN      string
	DBLogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr string

	DefaultShirtCost   decimal.Decimal
	DefaultJewelryCost decimal.Decimal
	PickupLocation     string
	Currency           string
	CartIdleTTL        time.Duration

	GeminiAPIKey      string
	AllowRegistration bool
	UploadDir         string
}

const defaultPickupLocation = "De La Salle University, 2401 Taft Ave, Malate, Manila"

// LoadDotEnv reads .env into the process environment. A missing file is not an error
// for callers that only want a warning.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", ""),
		AllowedOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AppEnv:            getEnv("APP_ENV", "development"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:             os.Getenv("DB_DSN"),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		PickupLocation:    getEnv("PICKUP_LOCATION", defaultPickupLocation),
		Currency:          getEnv("CURRENCY", "PHP"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	if cfg.CartIdleTTL, err = time.ParseDuration(getEnv("CART_IDLE_TTL", "2h")); err != nil {
		return nil, fmt.Errorf("config: CART_IDLE_TTL: %w", err)
	}

	if cfg.DefaultShirtCost, err = getDecimal("DEFAULT_SHIRT_COST", "300"); err != nil {
		return nil, err
	}
	if cfg.DefaultJewelryCost, err = getDecimal("DEFAULT_JEWELRY_COST", "0"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return errors.New("config: DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("config: invalid PORT %q", c.Port)
	}
	return nil
}

// Production reports whether the server runs with production logging.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
