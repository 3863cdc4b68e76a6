package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.AuthBaseURL)
	assert.Equal(t, "http://localhost:5001", cfg.RemindersURL)
	assert.Equal(t, "http://localhost:5002", cfg.CalendarURL)
	assert.Equal(t, "http://localhost:5003", cfg.NotesURL)
	assert.Equal(t, "http://localhost:5004", cfg.HabitsURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_BASE_URL", "https://auth.example.com")
	t.Setenv("REMINDERS_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://auth.example.com", cfg.AuthBaseURL)
	assert.Equal(t, "super-secret", cfg.RemindersSecret)
}

func TestLoadProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadProductionWithSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "a-real-32-byte-production-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}
