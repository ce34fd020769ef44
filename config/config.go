// Package config loads server settings from the environment, with
// command-line flags taking precedence.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevJWTSecret is the signing secret used when JWT_SECRET is unset.
const DevJWTSecret = "dev-secret-change-me"

type Config struct {
	Port          int
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	LogLevel      slog.Level
	CORSOrigins   []string
	AdminLogin    string
	AdminPassword string
}

// Load reads the environment, then applies flags from args
// (os.Args[1:] in main).
//
//	PORT            -port   HTTP port (8080)
//	DB_PATH         -db     SQLite path, ":memory:" for in-memory (leave.db)
//	JWT_SECRET              token signing secret
//	TOKEN_TTL               token lifetime (12h)
//	LOG_LEVEL               debug, info, warn, error (info)
//	CORS_ORIGINS            comma-separated allowed origins
//	ADMIN_LOGIN             bootstrap admin login (admin)
//	ADMIN_PASSWORD          bootstrap admin password; no admin when empty
func Load(args []string) (*Config, error) {
	cfg := &Config{
		Port:          getEnvInt("PORT", 8080),
		DBPath:        getEnv("DB_PATH", "leave.db"),
		JWTSecret:     getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 12*time.Hour),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "")),
		AdminLogin:    getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must not be blank")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
