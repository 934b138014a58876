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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("loads every field", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr_http":             "127.0.0.1:9000",
			"storage":                        "memory",
			"database_dsn":                   "postgres://x",
			"mongo_uri":                      "mongodb://y",
			"mongo_database":                 "favs",
			"secret_key":                     "my_secret_key",
			"access_token_validity_duration": "90m",
			"favourites_limit":               10,
			"log_backend":                    "logrus",
			"log_level":                      "debug",
		})

		cfg := &Config{}
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "127.0.0.1:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "memory", cfg.Storage)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "mongodb://y", cfg.MongoURI)
		assert.Equal(t, "favs", cfg.MongoDatabase)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 10, cfg.FavouritesLimit)
		assert.Equal(t, "logrus", cfg.LogBackend)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"secret_key": "only-this"})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", path})

		assert.Equal(t, "only-this", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 50, cfg.FavouritesLimit)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseJson(cfg, []string{"-a", ":1"})

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
	})
}
