package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
)

const maxDigestArticles = 5

// FormatFetchFailure reports that a source failed and demo data is shown instead.
func FormatFetchFailure(source, what string, err error) string {
	return fmt.Sprintf("⚠️ <b>Fetch failed</b>: %s from %s\n%s\n\nShowing demo data until the next refresh.",
		html.EscapeString(what), html.EscapeString(source), html.EscapeString(err.Error()))
}

// FormatDigest summarizes a snapshot for the scheduled chat digest.
func FormatDigest(snap *model.Snapshot, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📰 <b>News digest</b> | %s\n", now.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Source: %s, updated %s\n", html.EscapeString(snap.Source), humanize.RelTime(snap.FetchedAt, now, "ago", "from now")))
	if snap.Degraded() {
		b.WriteString("⚠️ partially showing demo data\n")
	}
	b.WriteString("\n")

	b.WriteString(FormatStats(filter.SummarizeArticles(snap.Articles), filter.SummarizeSignals(snap.Signals)))
	b.WriteString("\n")
	b.WriteString(FormatArticles(snap.Articles, maxDigestArticles))
	return b.String()
}

// FormatStats renders article and signal counters.
func FormatStats(a filter.ArticleStats, s filter.SignalStats) string {
	var b strings.Builder
	b.WriteString("📊 <b>Overview</b>\n")
	b.WriteString(fmt.Sprintf("Articles: %s (🟢 %d / 🔴 %d / ⚪ %d)\n",
		humanize.Comma(int64(a.Total)), a.Positive, a.Negative, a.Neutral))
	b.WriteString(fmt.Sprintf("High impact: %d\n", a.HighImpact))
	b.WriteString(fmt.Sprintf("Signals: %d (buy %d / sell %d / entry %d)\n", s.Total, s.Buy, s.Sell, s.Entry))
	return b.String()
}

// FormatArticles lists up to limit article headlines. limit <= 0 lists all.
func FormatArticles(articles []model.Article, limit int) string {
	if len(articles) == 0 {
		return "No articles found."
	}
	var b strings.Builder
	b.WriteString("🗞 <b>Latest</b>\n")
	for i, a := range articles {
		if limit > 0 && i >= limit {
			b.WriteString(fmt.Sprintf("…and %d more\n", len(articles)-limit))
			break
		}
		b.WriteString(fmt.Sprintf("%s %s", sentimentIcon(a.Tags.Sentiment), html.EscapeString(a.Title)))
		if len(a.Tags.Stocks) > 0 {
			b.WriteString(fmt.Sprintf(" [%s]", html.EscapeString(strings.Join(a.Tags.Stocks, ", "))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSignals lists trading signals, one per line.
func FormatSignals(signals []model.Signal) string {
	if len(signals) == 0 {
		return "No signals."
	}
	var b strings.Builder
	b.WriteString("📈 <b>Signals</b>\n")
	for _, s := range signals {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s @ %s (%s)",
			signalIcon(s.Type), html.EscapeString(strings.ToUpper(string(s.Type))), html.EscapeString(s.Symbol),
			humanize.CommafWithDigits(s.Price, 2), html.EscapeString(string(s.Confidence))))
		if s.Reason != "" {
			b.WriteString(" - " + html.EscapeString(s.Reason))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sentimentIcon(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "🟢"
	case model.SentimentNegative:
		return "🔴"
	default:
		return "⚪"
	}
}

func signalIcon(t model.SignalType) string {
	switch t {
	case model.SignalBuy:
		return "⬆️"
	case model.SignalSell:
		return "⬇️"
	default:
		return "➡️"
	}
}
