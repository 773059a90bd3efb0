package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":        ":8000",
		"https_addr":       ":8001",
		"store_backend":    "postgres",
		"database_dsn":     "postgres://u:p@localhost:5432/checks",
		"hashing_secret":   "my_secret_key",
		"token_validity":   "30m",
		"max_checks":       7,
		"rate_limit_rps":   10.0,
		"archive_interval": "1h",
		"s3_bucket":        "bucket",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":8000", cfg.HTTPAddr)
		assert.Equal(t, ":8001", cfg.HTTPSAddr)
		assert.Equal(t, "postgres", cfg.StoreBackend)
		assert.Equal(t, "postgres://u:p@localhost:5432/checks", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.HashingSecret)
		assert.Equal(t, 30*time.Minute, cfg.TokenValidity)
		assert.Equal(t, 7, cfg.MaxChecks)
		assert.Equal(t, 10.0, cfg.RateLimitRPS)
		assert.Equal(t, 1*time.Hour, cfg.ArchiveInterval)
		assert.Equal(t, "bucket", cfg.S3Bucket)
	})

	t.Run("unset fields keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"http_addr": ":9000",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":9000", cfg.HTTPAddr)
		assert.Equal(t, "file", cfg.StoreBackend)
		assert.Equal(t, 1*time.Hour, cfg.TokenValidity)
		assert.Equal(t, 5, cfg.MaxChecks)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			HTTPAddr:      "defaults:1234",
			StoreBackend:  "memory",
			HashingSecret: "key",
			TokenValidity: 2 * time.Minute,
			MaxChecks:     3,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "memory", cfg.StoreBackend)
		assert.Equal(t, "key", cfg.HashingSecret)
		assert.Equal(t, 2*time.Minute, cfg.TokenValidity)
		assert.Equal(t, 3, cfg.MaxChecks)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
