package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"employee-portal/internal/employee"
)

const (
	DefaultPort          = "3008"
	DefaultDatabaseName  = "employee-portal"
	DefaultLoginUsername = "testuser"
	DefaultLoginPassword = "Test123"
	defaultAPITimeout    = 15 * time.Second
	defaultSessionSecret = "employee-portal-dev-session-secret-change-me"
)

type Config struct {
	Port string
	// Remote table-data endpoint
	DataAPIBaseURL string
	DataAPITimeout time.Duration
	// Login gate
	Username      string
	Password      string
	SessionSecret []byte
	CookieSecure  bool
	// SQLite config
	SQLitePath   string
	DatabaseName string
}

// LoadConfig reads an optional .env file and then the process environment.
// Every key has a development default, so an empty environment is valid.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	timeout := defaultAPITimeout
	if raw := os.Getenv("DATA_API_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("DATA_API_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		timeout = time.Duration(seconds) * time.Second
	}

	cookieSecure := false
	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", raw)
		}
		cookieSecure = v
	}

	databaseName := envOrDefault("DATABASE_NAME", DefaultDatabaseName)

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		// Default to a data directory in the current directory
		sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		if cookieSecure {
			return nil, fmt.Errorf("SESSION_SECRET must be set when COOKIE_SECURE is true")
		}
		log.Printf("Warning: SESSION_SECRET not set, using the development secret; session cookies can be forged")
		sessionSecret = defaultSessionSecret
	}

	config := &Config{
		Port:           envOrDefault("PORT", DefaultPort),
		DataAPIBaseURL: envOrDefault("DATA_API_BASE_URL", employee.DefaultBaseURL),
		DataAPITimeout: timeout,
		Username:       envOrDefault("LOGIN_USERNAME", DefaultLoginUsername),
		Password:       envOrDefault("LOGIN_PASSWORD", DefaultLoginPassword),
		SessionSecret:  []byte(sessionSecret),
		CookieSecure:   cookieSecure,
		SQLitePath:     sqlitePath,
		DatabaseName:   databaseName,
	}

	if len(config.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}

	return config, nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
