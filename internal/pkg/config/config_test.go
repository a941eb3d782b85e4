package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noEnvFile = "testdata/does-not-exist.env"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}), noEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 168*time.Hour, time.Duration(cfg.Auth.JWTExpires))
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "task_manager", cfg.Mongo.Database)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	env := map[string]string{
		"PORT":           "8080",
		"ENV":            "production",
		"JWT_EXPIRES_IN": "7d",
		"REDIS_ENABLED":  "true",
		"CACHE_TTL":      "5m",
		"CORS_ORIGINS":   "http://a.test,http://b.test",
	}
	cfg, err := load(context.Background(), envconfig.MapLookuper(env), noEnvFile)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 7*24*time.Hour, time.Duration(cfg.Auth.JWTExpires))
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_EXPIRES_IN": "xd"}), noEnvFile)
	require.Error(t, err)
}

func TestDuration_EnvDecode(t *testing.T) {
	var d Duration
	require.NoError(t, d.EnvDecode("2d"))
	assert.Equal(t, 48*time.Hour, time.Duration(d))

	require.NoError(t, d.EnvDecode("90m"))
	assert.Equal(t, 90*time.Minute, time.Duration(d))

	assert.Error(t, d.EnvDecode("0d"))
	assert.Error(t, d.EnvDecode("soon"))
}
