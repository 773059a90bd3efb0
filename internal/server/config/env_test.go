package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("HASHING_SECRET", "envSecret")
	t.Setenv("TOKEN_VALIDITY", "45m")
	t.Setenv("MAX_CHECKS", "9")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("S3_BUCKET", "env-bucket")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "envSecret", cfg.HashingSecret)
	assert.Equal(t, 45*time.Minute, cfg.TokenValidity)
	assert.Equal(t, 9, cfg.MaxChecks)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "env-bucket", cfg.S3Bucket)

	// untouched values stay at defaults
	assert.Equal(t, ":3001", cfg.HTTPSAddr)
	assert.Equal(t, ".data", cfg.DataDir)
}

func Test_parseEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "not-a-duration")
	t.Setenv("MAX_CHECKS", "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 1*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 5, cfg.MaxChecks)
}
