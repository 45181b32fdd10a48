package collector

import (
	"context"
	"fmt"

	"NewsNavigator/internal/model"
)

// Fetcher defines the interface for fetching dashboard data.
type Fetcher interface {
	FetchNews(ctx context.Context) ([]model.Article, error)
	FetchSignals(ctx context.Context) ([]model.Signal, error)
	// Name is a short label for logs and snapshot metadata.
	Name() string
	// Key identifies the request parameters; equal keys fetch the same data.
	Key() string
}

// FetchError is the single failure kind of the data-fetch boundary: the
// request could not be made, the server answered non-2xx, or the body was
// not the expected JSON.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s fetch %s: status %d: %v", e.Source, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s fetch %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
