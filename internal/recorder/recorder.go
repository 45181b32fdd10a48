package recorder

import (
	"time"

	"github.com/google/uuid"
)

// RefreshEvent records the outcome of one dashboard refresh.
type RefreshEvent struct {
	ID              uuid.UUID     `json:"id"`
	StartedAt       time.Time     `json:"startedAt"`
	Duration        time.Duration `json:"duration"`
	Source          string        `json:"source"`
	Articles        int           `json:"articles"`
	Signals         int           `json:"signals"`
	NewsFallback    bool          `json:"newsFallback"`
	SignalsFallback bool          `json:"signalsFallback"`
	Superseded      bool          `json:"superseded"`
	Error           string        `json:"error,omitempty"`
}

// Recorder persists refresh history for later inspection.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	// History returns the most recent events, newest first. limit <= 0 means all.
	History(limit int) ([]RefreshEvent, error)
	Close() error
}
