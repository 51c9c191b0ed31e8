package config

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "DATABASE_URL", "DB_HOST", "DB_NAME", "TAX_CONFIG_PATH", "TAX_YEAR_PUBLISH_ENABLED", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.PublishEnabled)
	assert.Empty(t, cfg.TaxConfigPath)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigins)

	u, err := url.Parse(cfg.DatabaseURL)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/officebot", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/tax?sslmode=require")
	t.Setenv("TAX_CONFIG_PATH", "/etc/officebot/tax.yaml")
	t.Setenv("TAX_YEAR_PUBLISH_ENABLED", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "postgres://u:p@db:5432/tax?sslmode=require", cfg.DatabaseURL)
	assert.Equal(t, "/etc/officebot/tax.yaml", cfg.TaxConfigPath)
	assert.True(t, cfg.PublishEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}
