package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("API_BASE_URL", "http://api.local/api/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)

	assert.Equal(t, "http://api.local/api", cfg.APIBaseURL)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Equal(t, int64(5), cfg.MaxResumeSizeMB)
	assert.False(t, cfg.AuditEnabled())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("admin123")))
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ProductionRequiresOrigins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOAST_TTL", "three seconds")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TOAST_TTL")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a , ,http://b "))
}
