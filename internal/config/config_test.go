package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "./public", cfg.MediaRoot)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 20, cfg.MaxUploadFiles)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.AdminAuthRequired)
	assert.Contains(t, cfg.CORSAllowedOrigins, "http://localhost:5174")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MEDIA_ROOT", "/srv/media")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tigermarine.com, https://admin.tigermarine.com ,")
	t.Setenv("ADMIN_AUTH_REQUIRED", "true")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/srv/media", cfg.MediaRoot)
	assert.Equal(t, []string{"https://tigermarine.com", "https://admin.tigermarine.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AdminAuthRequired)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_AUTH_REQUIRED")

	t.Setenv("ADMIN_AUTH_REQUIRED", "true")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
