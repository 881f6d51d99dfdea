package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"employee-portal/internal/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATA_API_BASE_URL", "DATA_API_TIMEOUT_SECONDS", "LOGIN_USERNAME", "LOGIN_PASSWORD",
	"SESSION_SECRET", "COOKIE_SECURE", "SQLITE_PATH", "DATABASE_NAME",
}

// isolate runs the test in an empty directory with every config key unset.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, employee.DefaultBaseURL, cfg.DataAPIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.DataAPITimeout)
	assert.Equal(t, "testuser", cfg.Username)
	assert.Equal(t, "Test123", cfg.Password)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, filepath.Join("data", "employee-portal.db"), cfg.SQLitePath)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_API_BASE_URL", "http://upstream.local/api")
	t.Setenv("DATA_API_TIMEOUT_SECONDS", "3")
	t.Setenv("LOGIN_USERNAME", "admin")
	t.Setenv("LOGIN_PASSWORD", "secret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DATABASE_NAME", "portal_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://upstream.local/api", cfg.DataAPIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.DataAPITimeout)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), cfg.SessionSecret)
	assert.Equal(t, filepath.Join("data", "portal_test.db"), cfg.SQLitePath)
}

func TestLoadConfig_SecureCookiesNeedSessionSecret(t *testing.T) {
	isolate(t)
	t.Setenv("COOKIE_SECURE", "true")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SESSION_SECRET must be set")

	t.Setenv("COOKIE_SECURE", "false")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte(defaultSessionSecret), cfg.SessionSecret)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("PORT=7070\nLOGIN_USERNAME=fromfile\n"), 0o600))
	t.Setenv("LOGIN_USERNAME", "fromenv")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	// real environment wins over .env
	assert.Equal(t, "fromenv", cfg.Username)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DATA_API_TIMEOUT_SECONDS", "soon"},
		{"DATA_API_TIMEOUT_SECONDS", "0"},
		{"COOKIE_SECURE", "maybe"},
		{"SESSION_SECRET", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
