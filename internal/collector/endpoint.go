package collector

import (
	"context"
	"net/http"
	"time"

	"NewsNavigator/internal/model"
)

// EndpointFetcher reads articles from a single user-supplied URL that returns
// a bare JSON array. It has no signal feed.
type EndpointFetcher struct {
	URL    string
	Client *http.Client
}

// NewEndpointFetcher creates a fetcher with optional proxy support.
func NewEndpointFetcher(endpoint string, timeout time.Duration, proxyURL string) *EndpointFetcher {
	return &EndpointFetcher{
		URL:    endpoint,
		Client: newHTTPClient(timeout, proxyURL),
	}
}

func (f *EndpointFetcher) Name() string { return "endpoint" }

func (f *EndpointFetcher) Key() string { return "endpoint:" + f.URL }

func (f *EndpointFetcher) FetchNews(ctx context.Context) ([]model.Article, error) {
	articles := []model.Article{}
	if err := getJSON(ctx, f.Client, f.Name(), f.URL, &articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return articles, nil
}

func (f *EndpointFetcher) FetchSignals(_ context.Context) ([]model.Signal, error) {
	return []model.Signal{}, nil
}
