package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"NewsNavigator/internal/dashboard"
	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
	"NewsNavigator/internal/notifier"
)

const commandArticleLimit = 10

// Scheduler manages the periodic refresh and digest tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Board    *dashboard.Board
	Notifier notifier.Notifier
	Logger   *zap.Logger
	Ctx      context.Context
	Now      func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, board *dashboard.Board, n notifier.Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		Cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		Board:    board,
		Notifier: n,
		Logger:   logger,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// RegisterAll registers the refresh task and, when digestCron is set, the
// chat digest.
func (s *Scheduler) RegisterAll(interval time.Duration, digestCron string) error {
	cl := cronLogger{s.Logger.Sugar()}
	refresh := cron.NewChain(cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(s.refreshTask))
	if _, err := s.Cron.AddJob(fmt.Sprintf("@every %s", interval), refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if digestCron != "" {
		if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	res, err := s.Board.Refresh(s.Ctx)
	if err != nil {
		s.Logger.Debug("refresh interrupted", zap.Error(err))
		return
	}
	s.Logger.Debug("refresh task done",
		zap.Bool("applied", res.Applied),
		zap.Bool("shared", res.Shared),
		zap.Int("articles", len(res.Snapshot.Articles)))
}

func (s *Scheduler) digestTask() {
	s.Logger.Info("sending digest")
	s.trySend(notifier.FormatDigest(s.Board.Snapshot(), s.Now()))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Group chats address commands as /cmd@botname.
	name, _, _ := strings.Cut(fields[0], "@")
	args := strings.Join(fields[1:], " ")

	snap := s.Board.Snapshot()
	switch name {
	case "/news":
		articles := filter.Apply(snap.Articles, model.FilterState{SearchQuery: args})
		return notifier.FormatArticles(articles, commandArticleLimit)
	case "/signals":
		return notifier.FormatSignals(snap.Signals)
	case "/stats":
		return notifier.FormatStats(filter.SummarizeArticles(snap.Articles), filter.SummarizeSignals(snap.Signals))
	case "/digest":
		return notifier.FormatDigest(snap, s.Now())
	case "/refresh":
		res, err := s.Board.Refresh(ctx)
		if err != nil {
			return fmt.Sprintf("Refresh interrupted: %v", err)
		}
		reply := fmt.Sprintf("🔄 Refreshed from %s: %d articles, %d signals",
			res.Snapshot.Source, len(res.Snapshot.Articles), len(res.Snapshot.Signals))
		if res.Snapshot.Degraded() {
			reply += "\n⚠️ partially showing demo data"
		}
		return reply
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /news [query] - latest articles\n" +
	"• /signals - trading signals\n" +
	"• /stats - overview counters\n" +
	"• /digest - full digest\n" +
	"• /refresh - fetch now"

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(s.Ctx, text); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
