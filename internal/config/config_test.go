package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads yaml values", func(t *testing.T) {
		// Given: a config file with explicit values
		path := writeConfig(t, `
log-level: debug
http-port: "8081"
redis:
  host: redis
  port: "6380"
sqlite-storage-path: /tmp/users.db
reminder:
  interval: 15m
  sender: games@example.com
smtp:
  host: smtp.example.com
  port: 2525
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the values are taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "/tmp/users.db", conf.SQLiteStoragePath)
		assert.Equal(t, 15*time.Minute, conf.Reminder.Interval)
		assert.Equal(t, "games@example.com", conf.Reminder.Sender)
		assert.Equal(t, "smtp.example.com", conf.SMTP.Host)
		assert.Equal(t, 2525, conf.SMTP.Port)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Reminder.Interval)
		assert.Equal(t, "This is a reminder!", conf.Reminder.Subject)
		assert.False(t, conf.Reminder.Disabled)
		assert.Equal(t, 5, conf.RateLimit.Burst)
		assert.Empty(t, conf.SMTP.Host)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a config file and an environment variable for the same key
		path := writeConfig(t, "http-port: \"8081\"\n")
		t.Setenv("HTTP_PORT", "7070")

		// When: loading it
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
	})
}
