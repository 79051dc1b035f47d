package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesAllowLists(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/idgw")
	t.Setenv("ADMIN_EMAILS", "a@x.com,b@x.com")
	t.Setenv("EDITOR_EMAILS", "e@x.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.AdminEmails)
	assert.Equal(t, []string{"e@x.com"}, cfg.EditorEmails)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/idgw")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.AdminEmails)
	assert.Empty(t, cfg.EditorEmails)
}

func TestLoad_RequiresDatabaseDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SessionTTLOverride(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/idgw")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
