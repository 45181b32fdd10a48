package collector

import (
	"context"

	"NewsNavigator/internal/model"
)

// DemoFetcher serves the fixed demo dataset. It never fails.
type DemoFetcher struct{}

func (DemoFetcher) Name() string { return "demo" }

func (DemoFetcher) Key() string { return "demo" }

func (DemoFetcher) FetchNews(_ context.Context) ([]model.Article, error) {
	return DemoArticles(), nil
}

func (DemoFetcher) FetchSignals(_ context.Context) ([]model.Signal, error) {
	return DemoSignals(), nil
}

// DemoArticles returns a fresh copy of the demo articles.
func DemoArticles() []model.Article {
	return []model.Article{
		{
			ID:          "1",
			Title:       "Apple Reports Record Q4 Earnings Driven by iPhone Sales",
			Summary:     "Apple beat analyst expectations with strong iPhone 15 demand and growing services revenue.",
			Content:     "Apple Inc. reported fourth-quarter revenue above consensus, led by iPhone sales and a record quarter for services.",
			PublishedAt: "2024-01-15T10:30:00Z",
			Source:      "Financial Times",
			URL:         "https://example.com/apple-earnings",
			Tags: model.Tags{
				Sectors:   []string{"Technology"},
				Stocks:    []string{"AAPL"},
				Sentiment: model.SentimentPositive,
				Impact:    model.ImpactHigh,
			},
		},
		{
			ID:          "2",
			Title:       "Banking Sector Faces Pressure from Rising Interest Rates",
			Summary:     "Major banks see margins squeezed as deposit costs climb and loan demand softens.",
			Content:     "Large US lenders warned that higher funding costs would weigh on net interest income through the coming quarters.",
			PublishedAt: "2024-01-15T09:15:00Z",
			Source:      "Reuters",
			URL:         "https://example.com/banking-pressure",
			Tags: model.Tags{
				Sectors:   []string{"Banking"},
				Stocks:    []string{"JPM", "BAC", "WFC"},
				Sentiment: model.SentimentNegative,
				Impact:    model.ImpactMedium,
			},
		},
		{
			ID:          "3",
			Title:       "Tesla Expands Gigafactory Production Capacity",
			Summary:     "Tesla announces an expansion of its Berlin plant to meet rising European EV demand.",
			Content:     "Tesla plans to raise annual output at its Berlin Gigafactory as orders across Europe continue to grow.",
			PublishedAt: "2024-01-15T08:45:00Z",
			Source:      "Bloomberg",
			URL:         "https://example.com/tesla-expansion",
			Tags: model.Tags{
				Sectors:   []string{"Automotive"},
				Stocks:    []string{"TSLA"},
				Sentiment: model.SentimentPositive,
				Impact:    model.ImpactMedium,
			},
		},
	}
}

// DemoSignals returns a fresh copy of the demo signals.
func DemoSignals() []model.Signal {
	return []model.Signal{
		{
			ID:         "1",
			Type:       model.SignalBuy,
			Symbol:     "AAPL",
			Price:      185.92,
			Timestamp:  "2024-01-15T10:45:00Z",
			Confidence: model.ConfidenceHigh,
			Reason:     "Earnings beat with strong services growth",
		},
		{
			ID:         "2",
			Type:       model.SignalSell,
			Symbol:     "JPM",
			Price:      168.40,
			Timestamp:  "2024-01-15T09:30:00Z",
			Confidence: model.ConfidenceMedium,
			Reason:     "Margin pressure from rising deposit costs",
		},
		{
			ID:         "3",
			Type:       model.SignalEntry,
			Symbol:     "TSLA",
			Price:      219.16,
			Timestamp:  "2024-01-15T09:00:00Z",
			Confidence: model.ConfidenceLow,
			Reason:     "Capacity expansion supports volume outlook",
		},
	}
}
