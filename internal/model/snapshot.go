package model

import "time"

// Snapshot is one complete, immutable view of the dashboard data. A refresh
// builds a new Snapshot and swaps it in; nothing mutates a published one.
type Snapshot struct {
	Articles        []Article
	Signals         []Signal
	Options         FilterOptions
	Source          string
	FetchedAt       time.Time
	NewsFallback    bool
	SignalsFallback bool
}

// Degraded reports whether any part of the snapshot is demo data standing in
// for a failed fetch.
func (s *Snapshot) Degraded() bool {
	return s.NewsFallback || s.SignalsFallback
}
