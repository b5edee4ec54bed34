package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecretKey:        "jwt-secret",
		StateSecretKey:      "state-secret",
		StateTokenTTL:       10 * time.Minute,
		AccessTokenDuration: time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Корректная конфигурация", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Нет секрета JWT", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecretKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Слишком долгий state token", func(t *testing.T) {
		cfg := validConfig()
		cfg.StateTokenTTL = 24 * time.Hour
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STATE_TOKEN_TTL")
	})

	t.Run("Нулевой TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.StateTokenTTL = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("STATE_TOKEN_TTL", "5m")
	t.Setenv("FB_APP_ID", "fb-id")
	t.Setenv("FB_APP_SECRET", "fb-secret")
	t.Setenv("FB_REDIRECT_URI", "http://localhost:5000/api/auth/facebook/callback")
	t.Setenv("TWITTER_CLIENT_ID", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWTSecretKey)
	assert.Equal(t, "from-env", cfg.StateSecretKey, "state secret falls back to the JWT secret")
	assert.Equal(t, 5*time.Minute, cfg.StateTokenTTL)
	assert.Equal(t, 5000, cfg.ServerPort)

	require.Contains(t, cfg.Platforms, "facebook")
	assert.Equal(t, "fb-id", cfg.Platforms["facebook"].ClientID)
	assert.NotContains(t, cfg.Platforms, "twitter")
}
