package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/journal")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("ALLOW_ORIGIN", "")
	t.Setenv("VAPID_SUBJECT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "mailto:admin@example.com", cfg.VAPIDSubject)
	assert.False(t, cfg.VAPIDConfigured())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOriginList(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/journal")
	t.Setenv("ALLOW_ORIGIN", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestVAPIDConfigured(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/journal")
	t.Setenv("VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.VAPIDConfigured())
}
