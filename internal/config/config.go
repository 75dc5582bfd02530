package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL       = "https://www.themealdb.com/api/json/v1"
	DefaultAPIKey        = "1" // public test key
	DefaultConcurrency   = 4
	DefaultTimeout       = 20 * time.Second
	DefaultRatePerSecond = 10
	DefaultBurst         = 4
	DefaultRetryMax      = 1
	// DefaultBreakerTimeout is how long an open breaker rejects requests.
	DefaultBreakerTimeout = 30 * time.Second
	DefaultAddr           = ":8080"
)

type Config struct {
	MealDB   MealDBConfig `json:"mealdb"`
	Server   ServerConfig `json:"server"`
	Mocks    MockConfig   `json:"mocks"`
	LogLevel string       `json:"log_level"`
}

type MealDBConfig struct {
	BaseURL       string        `json:"base_url"`
	APIKey        string        `json:"api_key"`
	Concurrency   int           `json:"concurrency"` // letters fetched at once
	Timeout       time.Duration `json:"timeout"`
	RatePerSecond float64       `json:"rate_per_second"` // <= 0 disables throttling
	Burst         int           `json:"burst"`
	RetryMax      int           `json:"retry_max"`
	// BreakerTimeout <= 0 means DefaultBreakerTimeout.
	BreakerTimeout time.Duration `json:"breaker_timeout"`
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client `json:"-"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type MockConfig struct {
	Enable bool `json:"enable"`
}

// Default returns a configuration pointing at the public MealDB API.
func Default() *Config {
	return &Config{
		MealDB: MealDBConfig{
			BaseURL:        DefaultBaseURL,
			APIKey:         DefaultAPIKey,
			Concurrency:    DefaultConcurrency,
			Timeout:        DefaultTimeout,
			RatePerSecond:  DefaultRatePerSecond,
			Burst:          DefaultBurst,
			RetryMax:       DefaultRetryMax,
			BreakerTimeout: DefaultBreakerTimeout,
		},
		Server:   ServerConfig{Addr: DefaultAddr},
		LogLevel: "info",
	}
}

// Load reads configuration from the environment, after applying a .env file
// in the working directory if there is one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests don't have to touch the process env.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	var err error

	cfg.MealDB.BaseURL = strings.TrimRight(getOrDefault(getenv, "MEALDB_BASE_URL", cfg.MealDB.BaseURL), "/")
	cfg.MealDB.APIKey = getOrDefault(getenv, "MEALDB_API_KEY", cfg.MealDB.APIKey)
	cfg.Server.Addr = getOrDefault(getenv, "ADDR", cfg.Server.Addr)
	cfg.LogLevel = strings.ToLower(getOrDefault(getenv, "LOG_LEVEL", cfg.LogLevel))

	if cfg.MealDB.Concurrency, err = intFromEnv(getenv, "MEALDB_CONCURRENCY", cfg.MealDB.Concurrency); err != nil {
		return nil, err
	}
	if cfg.MealDB.Burst, err = intFromEnv(getenv, "MEALDB_BURST", cfg.MealDB.Burst); err != nil {
		return nil, err
	}
	if cfg.MealDB.RetryMax, err = intFromEnv(getenv, "MEALDB_RETRY_MAX", cfg.MealDB.RetryMax); err != nil {
		return nil, err
	}
	if v := getenv("MEALDB_RATE_PER_SECOND"); v != "" {
		if cfg.MealDB.RatePerSecond, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid MEALDB_RATE_PER_SECOND %q: %w", v, err)
		}
	}
	if v := getenv("MEALDB_TIMEOUT"); v != "" {
		if cfg.MealDB.Timeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid MEALDB_TIMEOUT %q: %w", v, err)
		}
	}
	if v := getenv("MEALDB_BREAKER_TIMEOUT"); v != "" {
		if cfg.MealDB.BreakerTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid MEALDB_BREAKER_TIMEOUT %q: %w", v, err)
		}
	}
	if v := getenv("MOCKS_ENABLE"); v != "" {
		if cfg.Mocks.Enable, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid MOCKS_ENABLE %q: %w", v, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MealDB.BaseURL == "" {
		return errors.New("mealdb base url is required")
	}
	if c.MealDB.Concurrency < 1 {
		return fmt.Errorf("mealdb concurrency must be at least 1, got %d", c.MealDB.Concurrency)
	}
	if c.MealDB.RetryMax < 0 {
		return fmt.Errorf("mealdb retry max must not be negative, got %d", c.MealDB.RetryMax)
	}
	if c.MealDB.Timeout < 0 {
		return fmt.Errorf("mealdb timeout must not be negative, got %s", c.MealDB.Timeout)
	}
	return nil
}

func getOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := strings.TrimSpace(getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func intFromEnv(getenv func(string) string, key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
