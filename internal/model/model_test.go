package model

import (
	"encoding/json"
	"testing"
)

func TestArticleUnmarshal_BackendShape(t *testing.T) {
	data := `{
		"id": 42,
		"title": "Reliance beats estimates",
		"summary": "Quarterly profit up",
		"publishedAt": "2025-06-01T09:30:00Z",
		"source": "Economic Times",
		"url": "https://example.com/ril",
		"tags": {
			"sectors": ["Energy", null, 7, ""],
			"stocks": [{"symbol": "RELIANCE", "price": 2890.5}, "ONGC", {"company_name": "no symbol"}],
			"sentiment": "positive",
			"impact": "high",
			"key_points": ["ignored"]
		}
	}`

	var a Article
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "42" {
		t.Errorf("expected id 42, got %q", a.ID)
	}
	if len(a.Tags.Sectors) != 1 || a.Tags.Sectors[0] != "Energy" {
		t.Errorf("unexpected sectors: %v", a.Tags.Sectors)
	}
	if len(a.Tags.Stocks) != 2 || a.Tags.Stocks[0] != "RELIANCE" || a.Tags.Stocks[1] != "ONGC" {
		t.Errorf("unexpected stocks: %v", a.Tags.Stocks)
	}
	if a.Tags.Sentiment != SentimentPositive || a.Tags.Impact != ImpactHigh {
		t.Errorf("unexpected sentiment/impact: %s/%s", a.Tags.Sentiment, a.Tags.Impact)
	}
	if a.Content != "" {
		t.Errorf("missing content should decode empty, got %q", a.Content)
	}
}

func TestArticleUnmarshal_MissingTags(t *testing.T) {
	for _, data := range []string{
		`{"id": "1", "title": "t"}`,
		`{"id": "1", "title": "t", "tags": null}`,
		`{"id": "1", "title": "t", "tags": "oops"}`,
		`{"id": "1", "title": "t", "tags": {"sectors": "Tech", "stocks": {"a": 1}}}`,
	} {
		var a Article
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if a.Tags.Sectors == nil || len(a.Tags.Sectors) != 0 {
			t.Errorf("%s: expected empty sectors, got %#v", data, a.Tags.Sectors)
		}
		if a.Tags.Stocks == nil || len(a.Tags.Stocks) != 0 {
			t.Errorf("%s: expected empty stocks, got %#v", data, a.Tags.Stocks)
		}
	}
}

func TestSignalUnmarshal_NumericConfidence(t *testing.T) {
	data := `[
		{"id": 7, "type": "buy", "symbol": "TCS", "price": null, "timestamp": "2025-06-01T10:00:00Z", "confidence": 0.82, "reason": "strong guidance"},
		{"id": "8", "type": "sell", "symbol": "INFY", "price": "1432.10", "confidence": 0.5},
		{"id": "9", "type": "entry", "symbol": "HDFC", "price": 1650, "confidence": "low"}
	]`

	var signals []Signal
	if err := json.Unmarshal([]byte(data), &signals); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(signals))
	}
	if signals[0].ID != "7" || signals[0].Price != 0 || signals[0].Confidence != ConfidenceHigh {
		t.Errorf("unexpected first signal: %+v", signals[0])
	}
	if signals[1].Price != 1432.10 || signals[1].Confidence != ConfidenceMedium {
		t.Errorf("unexpected second signal: %+v", signals[1])
	}
	if signals[2].Price != 1650 || signals[2].Confidence != ConfidenceLow {
		t.Errorf("unexpected third signal: %+v", signals[2])
	}
}

func TestFilterStateToggle(t *testing.T) {
	var f FilterState
	if f.HasActive() {
		t.Fatal("zero state should not be active")
	}

	f.ToggleSector("Technology")
	f.ToggleSector("Banking")
	f.ToggleStock("AAPL")
	f.SetSentiment(SentimentNegative)
	if !f.HasActive() {
		t.Fatal("expected active filters")
	}

	f.ToggleSector("Technology")
	if len(f.Sectors) != 1 || f.Sectors[0] != "Banking" {
		t.Errorf("toggle off failed: %v", f.Sectors)
	}

	f.SearchQuery = "rates"
	f.Clear()
	if f.HasActive() {
		t.Errorf("expected no active filters after Clear, got %+v", f)
	}
	if f.SearchQuery != "rates" {
		t.Errorf("Clear should keep the search query, got %q", f.SearchQuery)
	}
}

func TestSelection_DropsBlanks(t *testing.T) {
	if got := Selection([]string{"", " "}); got != nil {
		t.Errorf("blank values should yield no selection, got %q", got)
	}
	got := Selection([]string{"", "Technology", " Banking "})
	if len(got) != 2 || got[0] != "Technology" || got[1] != "Banking" {
		t.Errorf("Selection() = %q", got)
	}
}
