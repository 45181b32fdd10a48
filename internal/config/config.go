package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Source modes.
const (
	ModeAPI      = "api"
	ModeEndpoint = "endpoint"
	ModeDemo     = "demo"
)

const appName = "newsboard"

// Config holds all application configuration.
type Config struct {
	Source struct {
		Mode        string        `yaml:"mode"`
		BaseURL     string        `yaml:"base_url"`
		EndpointURL string        `yaml:"endpoint_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"source"`
	Refresh struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"refresh"`
	Server struct {
		ListenAddr  string `yaml:"listen_addr"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"server"`
	Telegram struct {
		BotToken   string `yaml:"bot_token"`
		ChatID     string `yaml:"chat_id"`
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultSQLitePath is where refresh history is kept by default.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, appName, "history.db")
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"NEWS_API_BASE_URL":  &c.Source.BaseURL,
		"NEWS_ENDPOINT_URL":  &c.Source.EndpointURL,
		"NEWS_SOURCE_MODE":   &c.Source.Mode,
		"LISTEN_ADDR":        &c.Server.ListenAddr,
		"FRONTEND_URL":       &c.Server.FrontendURL,
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"DIGEST_CRON":        &c.Telegram.DigestCron,
		"HTTPS_PROXY":        &c.Proxy,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"LOG_LEVEL":          &c.Log.Level,
		"LOG_FORMAT":         &c.Log.Format,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		c.Refresh.Interval = d
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		c.Source.Timeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source.Mode == "" {
		switch {
		case c.Source.BaseURL != "":
			c.Source.Mode = ModeAPI
		case c.Source.EndpointURL != "":
			c.Source.Mode = ModeEndpoint
		default:
			c.Source.Mode = ModeDemo
		}
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 30 * time.Second
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = time.Minute
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = DefaultSQLitePath()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Source.Mode {
	case ModeAPI:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required in %s mode", ModeAPI)
		}
	case ModeEndpoint:
		if c.Source.EndpointURL == "" {
			return fmt.Errorf("source.endpoint_url is required in %s mode", ModeEndpoint)
		}
	case ModeDemo:
	default:
		return fmt.Errorf("source.mode must be one of %s, %s, %s; got %q", ModeAPI, ModeEndpoint, ModeDemo, c.Source.Mode)
	}
	if c.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s")
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Telegram.DigestCron != "" {
		if _, err := cron.ParseStandard(c.Telegram.DigestCron); err != nil {
			return fmt.Errorf("telegram.digest_cron: %w", err)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console; got %q", c.Log.Format)
	}
	return nil
}

// TelegramEnabled reports whether chat notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// AllowedOrigins lists the CORS origins for the HTTP API.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if c.Server.FrontendURL != "" {
		origins = append(origins, c.Server.FrontendURL)
	}
	return origins
}
