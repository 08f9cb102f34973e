package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/themizzi/shopcheck/internal/retry"
)

// SuiteConfig holds configuration for a browser run against a storefront
type SuiteConfig struct {
	BaseURL           string
	Headless          bool
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	// TypeDelay > 0 types text key by key.
	TypeDelay time.Duration
}

// LoadSuiteConfig loads browser suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:  strings.TrimRight(orDefault(getenv("BASE_URL"), "http://localhost:8080"), "/"),
		Headless: true,
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	var err error
	if config.ActionTimeout, err = millis(getenv, "ACTION_TIMEOUT_MS", 5*time.Second); err != nil {
		return nil, err
	}
	if config.NavigationTimeout, err = millis(getenv, "NAVIGATION_TIMEOUT_MS", 15*time.Second); err != nil {
		return nil, err
	}
	if config.TypeDelay, err = millis(getenv, "TYPE_DELAY_MS", 0); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadRetryConfig loads the default retry policy from environment variables
func LoadRetryConfig(getenv func(string) string) (retry.Config, error) {
	cfg := retry.DefaultConfig()

	if v := getenv("RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return retry.Config{}, fmt.Errorf("RETRY_MAX_ATTEMPTS must be an integer: %w", err)
		}
		cfg.MaxAttempts = n
	}

	var err error
	if cfg.InitialDelay, err = millis(getenv, "RETRY_INITIAL_DELAY_MS", cfg.InitialDelay); err != nil {
		return retry.Config{}, err
	}
	if cfg.MaxDelay, err = millis(getenv, "RETRY_MAX_DELAY_MS", cfg.MaxDelay); err != nil {
		return retry.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return retry.Config{}, err
	}
	return cfg, nil
}

// millis reads key as a non-negative number of milliseconds.
func millis(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of milliseconds: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return time.Duration(n) * time.Millisecond, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
