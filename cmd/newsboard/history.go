package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent refreshes recorded by serve",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "number of refreshes to show (0 = all)")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON instead of a table")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rec := openRecorder(cfg, logger)
	defer rec.Close()

	events, err := rec.History(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	renderHistory(cmd.OutOrStdout(), events)
	return nil
}
