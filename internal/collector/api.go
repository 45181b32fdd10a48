package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"NewsNavigator/internal/model"
)

const (
	signalsPath = "/signals/"
	newsPath    = "/analyzed-news/"
)

// APIFetcher implements Fetcher against the analysis REST API, whose list
// endpoints wrap their payload as {"results": [...]}.
type APIFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIFetcher creates a fetcher with optional proxy support.
func NewAPIFetcher(baseURL string, timeout time.Duration, proxyURL string) *APIFetcher {
	return &APIFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(timeout, proxyURL),
	}
}

func (f *APIFetcher) Name() string { return "api" }

func (f *APIFetcher) Key() string { return "api:" + f.BaseURL }

// resultsEnvelope keeps results raw so a non-array value can degrade to an
// empty list instead of a decode failure.
type resultsEnvelope struct {
	Results json.RawMessage `json:"results"`
}

func (f *APIFetcher) FetchNews(ctx context.Context) ([]model.Article, error) {
	endpoint := joinPath(f.BaseURL, newsPath)
	var env resultsEnvelope
	if err := getJSON(ctx, f.Client, f.Name(), endpoint, &env); err != nil {
		return nil, err
	}
	articles := []model.Article{}
	if err := decodeResults(env.Results, &articles); err != nil {
		return nil, &FetchError{Source: f.Name(), URL: endpoint, Err: fmt.Errorf("decode articles: %w", err)}
	}
	return articles, nil
}

func (f *APIFetcher) FetchSignals(ctx context.Context) ([]model.Signal, error) {
	endpoint := joinPath(f.BaseURL, signalsPath)
	var env resultsEnvelope
	if err := getJSON(ctx, f.Client, f.Name(), endpoint, &env); err != nil {
		return nil, err
	}
	signals := []model.Signal{}
	if err := decodeResults(env.Results, &signals); err != nil {
		return nil, &FetchError{Source: f.Name(), URL: endpoint, Err: fmt.Errorf("decode signals: %w", err)}
	}
	return signals, nil
}

// decodeResults leaves v untouched unless raw is a JSON array.
func decodeResults(raw json.RawMessage, v any) error {
	var probe []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &probe) != nil {
		return nil
	}
	return json.Unmarshal(raw, v)
}
