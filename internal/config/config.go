package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config holds all application configuration.
type Config struct {
	HTTP  HTTPConfig
	GRPC  GRPCConfig
	Store StoreConfig
	Log   LogConfig
}

// HTTPConfig contains HTTP API settings.
type HTTPConfig struct {
	Address   string `env:"HTTP_ADDRESS" validate:"required"` // listen address (e.g., ":8080")
	RateLimit int    `env:"HTTP_RATE_LIMIT" validate:"gte=0"` // requests per second, 0 disables limiting
}

// GRPCConfig contains gRPC health endpoint settings.
type GRPCConfig struct {
	Address string // empty disables the health endpoint
}

// StoreConfig selects and configures the user store.
type StoreConfig struct {
	Backend string `env:"STORE_BACKEND" validate:"oneof=memory sqlite"`
	DSN     string // SQLite DSN, used by the sqlite backend only
	Seed    bool   // load fixture users at startup
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string // zerolog level name
	Format string `env:"LOG_FORMAT" validate:"oneof=json console"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Load loads configuration from environment variables with defaults and
// validates it.
func Load() (*Config, error) {
	rate, err := getEnvInt("HTTP_RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvBool("STORE_SEED", true)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		HTTP: HTTPConfig{
			Address:   getEnv("HTTP_ADDRESS", ":8080"),
			RateLimit: rate,
		},
		GRPC: GRPCConfig{
			Address: getEnv("GRPC_ADDRESS", ":50051"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
			DSN:     getEnv("DB_PATH", "file:users?mode=memory&cache=shared"),
			Seed:    seed,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator reports failing fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		fe := ves[0]
		return fmt.Errorf("invalid %s %v (want %s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a one-line summary of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTP: %s, gRPC: %q, Store: %s seed=%t, Log: %s/%s}",
		c.HTTP.Address, c.GRPC.Address, c.Store.Backend, c.Store.Seed, c.Log.Level, c.Log.Format)
}
