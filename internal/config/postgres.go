package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingSetting is returned when a required environment variable is empty.
var ErrMissingSetting = errors.New("missing required setting")

// PostgresConfig holds the connection settings of the results store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     int
	SSLMode  string
	// Schema, when set, becomes the connection's search_path.
	Schema string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     5432,
		SSLMode:  orDefault(getenv("POSTGRES_SSLMODE"), "disable"),
		Schema:   getenv("POSTGRES_SCHEMA"),
	}

	var missing []string
	for _, f := range []struct{ key, value string }{
		{"POSTGRES_USER", config.User},
		{"POSTGRES_PASSWORD", config.Password},
		{"POSTGRES_DB", config.Database},
		{"POSTGRES_HOSTNAME", config.Host},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	if v := getenv("POSTGRES_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("POSTGRES_PORT must be a port number, got %q", v)
		}
		config.Port = port
	}

	return config, nil
}

// ConnectionString returns a lib/pq key/value connection string
func (c *PostgresConfig) ConnectionString() string {
	s := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if c.Schema != "" {
		s += " search_path=" + c.Schema
	}
	return s
}

// WithSchema returns a copy of c that connects with schema as search_path.
func (c PostgresConfig) WithSchema(schema string) *PostgresConfig {
	c.Schema = schema
	return &c
}
