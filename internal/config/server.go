package config

import (
	"log"
	"time"
)

// ServerConfig holds configuration for the local storefront server
type ServerConfig struct {
	Port string
	// GlitchDelay slows inventory pages for the performance account.
	GlitchDelay  time.Duration
	TemplatesDir string
	StaticDir    string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	glitch, err := millis(getenv, "GLITCH_DELAY_MS", 3500*time.Millisecond)
	if err != nil {
		log.Printf("Warning: %v, using default glitch delay", err)
		glitch = 3500 * time.Millisecond
	}

	return ServerConfig{
		Port:         port,
		GlitchDelay:  glitch,
		TemplatesDir: orDefault(getenv("TEMPLATES_DIR"), "templates"),
		StaticDir:    orDefault(getenv("STATIC_DIR"), "static"),
	}
}
