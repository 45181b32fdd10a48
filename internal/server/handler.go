package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"NewsNavigator/internal/collector"
	"NewsNavigator/internal/dashboard"
	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
	"NewsNavigator/internal/recorder"
)

// BoardStore is the dashboard state the handlers read and drive.
type BoardStore interface {
	Snapshot() *model.Snapshot
	Refresh(ctx context.Context) (dashboard.RefreshResult, error)
	UseEndpoint(url string) error
	Fetcher() collector.Fetcher
	Notices() *dashboard.NoticeList
}

// HistoryStore lists past refreshes.
type HistoryStore interface {
	History(limit int) ([]recorder.RefreshEvent, error)
}

type Handler struct {
	board   BoardStore
	history HistoryStore
	logger  *zap.Logger
}

func NewHandler(board BoardStore, history HistoryStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{board: board, history: history, logger: logger}
}

func (h *Handler) GetHealth(c *gin.Context) {
	snap := h.board.Snapshot()
	if snap.FetchedAt.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "starting",
			"source": snap.Source,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"source":    snap.Source,
		"fetchedAt": snap.FetchedAt,
		"age":       humanize.Time(snap.FetchedAt),
		"degraded":  snap.Degraded(),
	})
}

func (h *Handler) GetArticles(c *gin.Context) {
	snap := h.board.Snapshot()
	matched := filter.Apply(snap.Articles, filterState(c))

	total := len(matched)
	offset := getQueryOffset(c)
	limit := getQueryLimit(c, total)

	page := []model.Article{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = matched[offset:end]
	}

	c.JSON(http.StatusOK, ArticlesResponse{
		Articles: page,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	for _, a := range h.board.Snapshot().Articles {
		if a.ID == id {
			c.JSON(http.StatusOK, a)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
}

func (h *Handler) GetFilters(c *gin.Context) {
	opts := h.board.Snapshot().Options
	c.JSON(http.StatusOK, FiltersResponse{
		Sectors:    opts.Sectors,
		Stocks:     opts.Stocks,
		Sentiments: model.Sentiments,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	snap := h.board.Snapshot()
	c.JSON(http.StatusOK, filter.SummarizeArticles(filter.Apply(snap.Articles, filterState(c))))
}

func (h *Handler) GetSignals(c *gin.Context) {
	signals := h.board.Snapshot().Signals
	c.JSON(http.StatusOK, SignalsResponse{
		Signals: signals,
		Stats:   filter.SummarizeSignals(signals),
	})
}

func (h *Handler) PostRefresh(c *gin.Context) {
	res, err := h.board.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Warn("refresh request abandoned", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Refresh interrupted"})
		return
	}
	out := snapshotResponse(res.Snapshot)
	out.Applied = res.Applied
	out.Shared = res.Shared
	c.JSON(http.StatusOK, out)
}

func (h *Handler) PutSource(c *gin.Context) {
	var req SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Endpoint != "" && !validEndpoint(req.Endpoint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Endpoint must be an absolute http(s) URL"})
		return
	}
	if err := h.board.UseEndpoint(req.Endpoint); err != nil {
		h.logger.Error("switch source", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not switch source"})
		return
	}

	f := h.board.Fetcher()
	out := SourceResponse{Source: f.Name(), Key: f.Key()}
	res, err := h.board.Refresh(c.Request.Context())
	if err == nil {
		out.Data = snapshotResponse(res.Snapshot)
		out.Data.Applied = res.Applied
		out.Data.Shared = res.Shared
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetNotices(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Notices().List())
}

func (h *Handler) DeleteNotice(c *gin.Context) {
	if !h.board.Notices().Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetRefreshes(c *gin.Context) {
	const defaultLimit = 20
	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	events, err := h.history.History(limit)
	if err != nil {
		h.logger.Error("error fetching refresh history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func filterState(c *gin.Context) model.FilterState {
	return model.FilterState{
		SearchQuery: c.Query("q"),
		Sectors:     model.Selection(c.QueryArray("sector")),
		Stocks:      model.Selection(c.QueryArray("stock")),
		Sentiment:   model.Sentiment(c.Query("sentiment")),
	}
}

func validEndpoint(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

const maxLimit = 100

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)
	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getQueryLimit returns all items when no usable limit is given.
func getQueryLimit(c *gin.Context, total int) int {
	limit := getQueryInt("limit", 0, c)
	if limit < 1 {
		return total
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		return 0
	}
	return offset
}

// requestLogger logs each request through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
