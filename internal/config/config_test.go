package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "24h", cfg.JWT.Expiry)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Anthropic.Model)
	assert.Equal(t, "https://api.anthropic.com", cfg.Anthropic.BaseURL)
	assert.Equal(t, 1000, cfg.Anthropic.MaxTokens)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, "/uploads", cfg.Upload.PublicPath)
	assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:5173")
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.JWT.Secret = "explicit"
	setDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "explicit", cfg.JWT.Secret)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/study?sslmode=disable")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "9000")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")

	cfg := &Config{}
	setDefaults(cfg)
	applyEnvOverrides(cfg)

	assert.Equal(t, "postgres://u:p@db:5432/study?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/tmp/uploads", cfg.Upload.Dir)
}
