package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"NewsNavigator/internal/collector"
	"NewsNavigator/internal/config"
	"NewsNavigator/internal/logging"
	"NewsNavigator/internal/recorder"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "newsboard",
	Short:         "AI-tagged market news dashboard",
	Long:          "newsboard serves tagged financial news and trading signals with search and sector, stock and sentiment filters.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default $CONFIG_PATH or "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, queryCmd, historyCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsboard %s (commit: %s)\n", version, commit)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}

// newFetcher picks the data source for the configured mode.
func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.Source.Mode {
	case config.ModeAPI:
		return collector.NewAPIFetcher(cfg.Source.BaseURL, cfg.Source.Timeout, cfg.Proxy)
	case config.ModeEndpoint:
		return collector.NewEndpointFetcher(cfg.Source.EndpointURL, cfg.Source.Timeout, cfg.Proxy)
	default:
		return collector.DemoFetcher{}
	}
}

func endpointFactory(cfg *config.Config) func(string) collector.Fetcher {
	return func(url string) collector.Fetcher {
		return collector.NewEndpointFetcher(url, cfg.Source.Timeout, cfg.Proxy)
	}
}

// openRecorder falls back to a no-op recorder when the database cannot be opened.
func openRecorder(cfg *config.Config, logger *zap.Logger) recorder.Recorder {
	path := cfg.Database.SQLitePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("create data dir failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(path, logger.Named("recorder"))
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return rec
}
