package filter

import "NewsNavigator/internal/model"

// ArticleStats are the headline counters shown above the article grid.
type ArticleStats struct {
	Total      int `json:"total"`
	Positive   int `json:"positive"`
	Negative   int `json:"negative"`
	Neutral    int `json:"neutral"`
	HighImpact int `json:"highImpact"`
}

// SignalStats counts signals per action.
type SignalStats struct {
	Total int `json:"total"`
	Buy   int `json:"buy"`
	Sell  int `json:"sell"`
	Entry int `json:"entry"`
}

// SummarizeArticles counts sentiment and impact across articles. Callers pass
// the filtered list so the counters follow the active filters.
func SummarizeArticles(articles []model.Article) ArticleStats {
	st := ArticleStats{Total: len(articles)}
	for _, a := range articles {
		switch a.Tags.Sentiment {
		case model.SentimentPositive:
			st.Positive++
		case model.SentimentNegative:
			st.Negative++
		case model.SentimentNeutral:
			st.Neutral++
		}
		if a.Tags.Impact == model.ImpactHigh {
			st.HighImpact++
		}
	}
	return st
}

// SummarizeSignals counts signals by type. Unknown types only count toward Total.
func SummarizeSignals(signals []model.Signal) SignalStats {
	st := SignalStats{Total: len(signals)}
	for _, s := range signals {
		switch s.Type {
		case model.SignalBuy:
			st.Buy++
		case model.SignalSell:
			st.Sell++
		case model.SignalEntry:
			st.Entry++
		}
	}
	return st
}
