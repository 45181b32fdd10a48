package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NewsNavigator/internal/dashboard"
	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
)

var (
	flagQuery     string
	flagSectors   []string
	flagStocks    []string
	flagSentiment string
	flagLimit     int
	flagJSON      bool
	flagEndpoint  string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Fetch once and print filtered articles",
	Example: `  newsboard query --sentiment positive
  newsboard query --sector Technology --stock AAPL --json
  newsboard query --endpoint https://example.com/news.json -q earnings`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "case-insensitive search in title and summary")
	queryCmd.Flags().StringSliceVar(&flagSectors, "sector", nil, "sector filter (repeatable, any match)")
	queryCmd.Flags().StringSliceVar(&flagStocks, "stock", nil, "stock ticker filter (repeatable, any match)")
	queryCmd.Flags().StringVar(&flagSentiment, "sentiment", "", "positive, negative or neutral")
	queryCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "maximum number of articles (0 = all)")
	queryCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON instead of formatted output")
	queryCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "read articles from a single URL returning a JSON array")
}

type queryOutput struct {
	Source   string              `json:"source"`
	Degraded bool                `json:"degraded"`
	Stats    filter.ArticleStats `json:"stats"`
	Articles []model.Article     `json:"articles"`
	Signals  []model.Signal      `json:"signals"`
	Notices  []dashboard.Notice  `json:"notices,omitempty"`
	Options  model.FilterOptions `json:"options"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	state := model.FilterState{
		SearchQuery: flagQuery,
		Sectors:     model.Selection(flagSectors),
		Stocks:      model.Selection(flagStocks),
		Sentiment:   model.Sentiment(flagSentiment),
	}
	switch state.Sentiment {
	case "", model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral:
	default:
		return fmt.Errorf("unknown sentiment %q", flagSentiment)
	}

	board := dashboard.New(dashboard.Options{
		Fetcher:     newFetcher(cfg),
		NewEndpoint: endpointFactory(cfg),
		Logger:      logger.Named("board"),
	})
	if err := board.UseEndpoint(flagEndpoint); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Source.Timeout+5*time.Second)
	defer cancel()
	res, err := board.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	snap := res.Snapshot

	articles := filter.Apply(snap.Articles, state)
	stats := filter.SummarizeArticles(articles)
	if flagLimit > 0 && len(articles) > flagLimit {
		articles = articles[:flagLimit]
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(queryOutput{
			Source:   snap.Source,
			Degraded: snap.Degraded(),
			Stats:    stats,
			Articles: articles,
			Signals:  snap.Signals,
			Notices:  board.Notices().List(),
			Options:  snap.Options,
		})
	}

	for _, n := range board.Notices().List() {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("! ")+n.Message)
	}
	renderStats(out, stats, filter.SummarizeSignals(snap.Signals))
	renderSignals(out, snap.Signals)
	renderArticles(out, articles, time.Now())
	return nil
}
