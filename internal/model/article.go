package model

import (
	"encoding/json"
	"strconv"
)

// Sentiment is the market tone assigned to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments lists the selectable sentiment values in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// Impact is the expected severity of an article's market effect.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Tags holds the AI-assigned classification of an article.
type Tags struct {
	Sectors   []string  `json:"sectors"`
	Stocks    []string  `json:"stocks"`
	Sentiment Sentiment `json:"sentiment"`
	Impact    Impact    `json:"impact"`
}

// Article is a tagged news item. Treat it as read-only once fetched.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Tags        Tags   `json:"tags"`
}

// HasSector reports whether the article is tagged with sector.
func (a Article) HasSector(sector string) bool {
	return contains(a.Tags.Sectors, sector)
}

// HasStock reports whether the article is tagged with ticker.
func (a Article) HasStock(ticker string) bool {
	return contains(a.Tags.Stocks, ticker)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts the loose shapes produced by the analysis backend:
// numeric ids, stock objects instead of tickers, and missing or malformed
// tag arrays (decoded as empty).
func (a *Article) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Title       json.RawMessage `json:"title"`
		Summary     json.RawMessage `json:"summary"`
		Content     json.RawMessage `json:"content"`
		PublishedAt json.RawMessage `json:"publishedAt"`
		Source      json.RawMessage `json:"source"`
		URL         json.RawMessage `json:"url"`
		Tags        json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Article{
		ID:          looseString(raw.ID),
		Title:       looseString(raw.Title),
		Summary:     looseString(raw.Summary),
		Content:     looseString(raw.Content),
		PublishedAt: looseString(raw.PublishedAt),
		Source:      looseString(raw.Source),
		URL:         looseString(raw.URL),
		Tags:        decodeTags(raw.Tags),
	}
	return nil
}

func decodeTags(data json.RawMessage) Tags {
	var raw struct {
		Sectors   json.RawMessage `json:"sectors"`
		Stocks    json.RawMessage `json:"stocks"`
		Sentiment json.RawMessage `json:"sentiment"`
		Impact    json.RawMessage `json:"impact"`
	}
	if len(data) == 0 || json.Unmarshal(data, &raw) != nil {
		return Tags{Sectors: []string{}, Stocks: []string{}}
	}
	return Tags{
		Sectors:   stringList(raw.Sectors, ""),
		Stocks:    stringList(raw.Stocks, "symbol"),
		Sentiment: Sentiment(looseString(raw.Sentiment)),
		Impact:    Impact(looseString(raw.Impact)),
	}
}

// stringList decodes a JSON array into its string members. When objectKey is
// set, object members contribute the string found under that key. Anything
// else is skipped.
func stringList(data json.RawMessage, objectKey string) []string {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		if objectKey == "" {
			continue
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(item, &obj) != nil {
			continue
		}
		if v := looseString(obj[objectKey]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// looseString renders JSON strings and numbers as Go strings; other values
// (null, objects, arrays) become "".
func looseString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(data, &n) == nil {
		return n.String()
	}
	return ""
}

func looseFloat(data json.RawMessage) float64 {
	if len(data) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(data, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}
