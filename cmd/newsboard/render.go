package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
	"NewsNavigator/internal/recorder"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorRed     = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F5F"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tagStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	warnStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func sentimentStyle(s model.Sentiment) lipgloss.Style {
	switch s {
	case model.SentimentPositive:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case model.SentimentNegative:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return dimStyle
	}
}

func renderStats(w io.Writer, a filter.ArticleStats, s filter.SignalStats) {
	fmt.Fprintln(w, headerStyle.Render("Overview"))
	fmt.Fprintf(w, "  articles %d  %s %d  %s %d  neutral %d  high impact %d\n",
		a.Total,
		sentimentStyle(model.SentimentPositive).Render("positive"), a.Positive,
		sentimentStyle(model.SentimentNegative).Render("negative"), a.Negative,
		a.Neutral, a.HighImpact)
	fmt.Fprintf(w, "  signals %d  buy %d  sell %d  entry %d\n\n", s.Total, s.Buy, s.Sell, s.Entry)
}

func renderArticles(w io.Writer, articles []model.Article, now time.Time) {
	if len(articles) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No articles found. Try adjusting your search or filter criteria."))
		return
	}
	for _, a := range articles {
		fmt.Fprintln(w, titleStyle.Render(a.Title))
		meta := []string{a.Source}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			meta = append(meta, humanize.RelTime(t, now, "ago", "from now"))
		}
		meta = append(meta, sentimentStyle(a.Tags.Sentiment).Render(string(a.Tags.Sentiment)))
		if a.Tags.Impact != "" {
			meta = append(meta, string(a.Tags.Impact)+" impact")
		}
		fmt.Fprintln(w, "  "+dimStyle.Render(strings.Join(nonEmpty(meta), " · ")))
		if a.Summary != "" {
			fmt.Fprintln(w, "  "+a.Summary)
		}
		tags := append(append([]string{}, a.Tags.Sectors...), a.Tags.Stocks...)
		if len(tags) > 0 {
			fmt.Fprintln(w, "  "+tagStyle.Render(strings.Join(tags, " ")))
		}
		fmt.Fprintln(w)
	}
}

func renderSignals(w io.Writer, signals []model.Signal) {
	if len(signals) == 0 {
		return
	}
	fmt.Fprintln(w, headerStyle.Render("Signals"))
	for _, s := range signals {
		fmt.Fprintf(w, "  %-5s %-6s %10s  %-6s %s\n",
			strings.ToUpper(string(s.Type)), s.Symbol, humanize.CommafWithDigits(s.Price, 2),
			s.Confidence, dimStyle.Render(s.Reason))
	}
	fmt.Fprintln(w)
}

func renderHistory(w io.Writer, events []recorder.RefreshEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No refreshes recorded yet."))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %-9s %8s %8s %9s  %s", "when", "source", "articles", "signals", "took", "status")))
	for _, e := range events {
		status := "ok"
		switch {
		case e.Superseded:
			status = dimStyle.Render("superseded")
		case e.NewsFallback || e.SignalsFallback:
			status = warnStyle.Render("fallback") + " " + e.Error
		}
		fmt.Fprintf(w, "%-16s %-9s %8d %8d %9s  %s\n",
			humanize.Time(e.StartedAt), e.Source, e.Articles, e.Signals,
			e.Duration.Round(time.Millisecond), status)
	}
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
