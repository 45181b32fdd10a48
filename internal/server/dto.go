package server

import (
	"time"

	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
)

type ArticlesResponse struct {
	Articles []model.Article `json:"articles"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

type FiltersResponse struct {
	Sectors    []string          `json:"sectors"`
	Stocks     []string          `json:"stocks"`
	Sentiments []model.Sentiment `json:"sentiments"`
}

type SignalsResponse struct {
	Signals []model.Signal     `json:"signals"`
	Stats   filter.SignalStats `json:"stats"`
}

type SnapshotResponse struct {
	Source          string    `json:"source"`
	FetchedAt       time.Time `json:"fetchedAt"`
	Articles        int       `json:"articles"`
	Signals         int       `json:"signals"`
	NewsFallback    bool      `json:"newsFallback"`
	SignalsFallback bool      `json:"signalsFallback"`
	Applied         bool      `json:"applied"`
	Shared          bool      `json:"shared"`
}

type SourceRequest struct {
	Endpoint string `json:"endpoint"`
}

type SourceResponse struct {
	Source string           `json:"source"`
	Key    string           `json:"key"`
	Data   SnapshotResponse `json:"data"`
}

func snapshotResponse(s *model.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Source:          s.Source,
		FetchedAt:       s.FetchedAt,
		Articles:        len(s.Articles),
		Signals:         len(s.Signals),
		NewsFallback:    s.NewsFallback,
		SignalsFallback: s.SignalsFallback,
	}
}
