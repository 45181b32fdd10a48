package model

import "strings"

// FilterState is the presenter-owned selection applied to the article list.
// Sectors and Stocks behave as sets: Toggle never introduces duplicates.
type FilterState struct {
	SearchQuery string    `json:"searchQuery"`
	Sectors     []string  `json:"selectedSectors"`
	Stocks      []string  `json:"selectedStocks"`
	Sentiment   Sentiment `json:"selectedSentiment"`
}

// FilterOptions are the selectable values present in the current articles.
type FilterOptions struct {
	Sectors []string `json:"sectors"`
	Stocks  []string `json:"stocks"`
}

// ToggleSector selects sector, or deselects it if already selected.
func (f *FilterState) ToggleSector(sector string) {
	f.Sectors = toggle(f.Sectors, sector)
}

// ToggleStock selects ticker, or deselects it if already selected.
func (f *FilterState) ToggleStock(ticker string) {
	f.Stocks = toggle(f.Stocks, ticker)
}

// SetSentiment selects a single sentiment; "" clears it.
func (f *FilterState) SetSentiment(s Sentiment) {
	f.Sentiment = s
}

// Clear drops every selection. The search query is left alone, matching the
// "Clear All" control which only resets the sidebar.
func (f *FilterState) Clear() {
	f.Sectors = nil
	f.Stocks = nil
	f.Sentiment = ""
}

// HasActive reports whether any sidebar selection is active.
func (f FilterState) HasActive() bool {
	return len(f.Sectors) > 0 || len(f.Stocks) > 0 || f.Sentiment != ""
}

func toggle(values []string, v string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, s := range values {
		if s == v {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

// Selection drops blank entries from raw selector values, so an unselected
// form control or an empty flag behaves like no selection at all.
func Selection(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
