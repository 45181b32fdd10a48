// Package filter derives filter options from an article collection and
// narrows it down by search text and tag selections. Everything here is pure:
// inputs are never modified and no call blocks.
package filter

import (
	"strings"

	"NewsNavigator/internal/model"
)

// Options returns the distinct sectors and tickers tagged across articles, in
// order of first appearance. Empty tag values are skipped.
func Options(articles []model.Article) model.FilterOptions {
	opts := model.FilterOptions{
		Sectors: []string{},
		Stocks:  []string{},
	}
	seenSectors := make(map[string]struct{})
	seenStocks := make(map[string]struct{})

	for _, a := range articles {
		opts.Sectors = appendNew(opts.Sectors, seenSectors, a.Tags.Sectors)
		opts.Stocks = appendNew(opts.Stocks, seenStocks, a.Tags.Stocks)
	}
	return opts
}

func appendNew(out []string, seen map[string]struct{}, values []string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Apply returns the articles matching state, keeping their input order.
// Categories combine with AND; values selected within a category combine with OR.
func Apply(articles []model.Article, state model.FilterState) []model.Article {
	m := newMatcher(state)
	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if m.match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Match reports whether a single article passes state.
func Match(a model.Article, state model.FilterState) bool {
	return newMatcher(state).match(a)
}

type matcher struct {
	query     string
	sectors   []string
	stocks    []string
	sentiment model.Sentiment
}

func newMatcher(state model.FilterState) matcher {
	return matcher{
		query:     strings.ToLower(state.SearchQuery),
		sectors:   state.Sectors,
		stocks:    state.Stocks,
		sentiment: state.Sentiment,
	}
}

func (m matcher) match(a model.Article) bool {
	return m.matchSearch(a) &&
		anySelected(m.sectors, a.HasSector) &&
		anySelected(m.stocks, a.HasStock) &&
		(m.sentiment == "" || a.Tags.Sentiment == m.sentiment)
}

func (m matcher) matchSearch(a model.Article) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), m.query) ||
		strings.Contains(strings.ToLower(a.Summary), m.query)
}

// anySelected is true when nothing is selected or any selection is present.
func anySelected(selected []string, has func(string) bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if has(s) {
			return true
		}
	}
	return false
}
