package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	os.Setenv("DB_CONNECTION_STRING", "overrideConnectionString")
	os.Setenv("LISTEN_ADDR", ":9999")
	os.Setenv("RATE_LIMIT_PER_SECOND", "42")
	os.Setenv("RATE_LIMIT_BURST", "84")
	os.Setenv("NOTIFICATION_RETENTION_DAYS", "31")
	os.Setenv("JWT_SECRET", "overrideSecret")
	os.Setenv("TOKEN_TTL", "3h")
	os.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Get()

	assert.Equal(t, "overrideConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, float32(42), cfg.Server.RateLimitPerSecond)
	assert.Equal(t, 84, cfg.Server.RateLimitBurst)
	assert.Equal(t, 31, cfg.Server.NotificationRetentionInDays)
	assert.Equal(t, "overrideSecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}
