package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tasknote", cfg.AppName)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, 30, cfg.Session.TTLDays)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL())
	assert.NotEmpty(t, cfg.Database.URL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL_DAYS", "7")
	t.Setenv("SESSION_COOKIE_NAME", "token")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/tasknote?sslmode=disable")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.Equal(t, "postgres://u:p@db:5432/tasknote?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 2*time.Second, cfg.Context.RequestTimeout)
}

func TestSessionTTLGuardsNonPositive(t *testing.T) {
	cfg := &Config{Session: SessionConfig{TTLDays: 0}}
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL())
}
