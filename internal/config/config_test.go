package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ModeDemo, cfg.Source.Mode)
	assert.Equal(t, time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, DefaultSQLitePath(), cfg.Database.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
source:
  base_url: http://localhost:8001/api
  timeout: 5s
refresh:
  interval: 2m
server:
  listen_addr: ":9000"
  frontend_url: http://dash.local
telegram:
  bot_token: file-token
  chat_id: "100"
  digest_cron: "0 8 * * 1-5"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("REFRESH_INTERVAL", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeAPI, cfg.Source.Mode, "base url implies api mode")
	assert.Equal(t, "http://localhost:8001/api", cfg.Source.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval, "env wins over file")
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "100", cfg.Telegram.ChatID)
	assert.Equal(t, []string{"http://localhost:3000", "http://dash.local"}, cfg.AllowedOrigins())
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_EndpointMode(t *testing.T) {
	t.Setenv("NEWS_ENDPOINT_URL", "http://feed.local/news.json")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ModeEndpoint, cfg.Source.Mode)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "source: [unclosed"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("REFRESH_INTERVAL", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "REFRESH_INTERVAL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown mode", func(c *Config) { c.Source.Mode = "mock" }, "source.mode"},
		{"api without base", func(c *Config) { c.Source.Mode = ModeAPI }, "base_url"},
		{"endpoint without url", func(c *Config) { c.Source.Mode = ModeEndpoint }, "endpoint_url"},
		{"interval too short", func(c *Config) { c.Refresh.Interval = 10 * time.Millisecond }, "refresh.interval"},
		{"token without chat", func(c *Config) { c.Telegram.BotToken = "x" }, "set together"},
		{"bad cron", func(c *Config) { c.Telegram.DigestCron = "every day" }, "digest_cron"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
