// Package dashboard owns the published dashboard snapshot and the refresh
// cycle that replaces it.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"NewsNavigator/internal/collector"
	"NewsNavigator/internal/filter"
	"NewsNavigator/internal/model"
	"NewsNavigator/internal/notifier"
	"NewsNavigator/internal/recorder"
)

// Options configures a Board. Only Fetcher is required.
type Options struct {
	Fetcher  collector.Fetcher
	Fallback collector.Fetcher
	// NewEndpoint builds the fetcher used by UseEndpoint.
	NewEndpoint func(url string) collector.Fetcher
	Notifier    notifier.Notifier
	Recorder    recorder.Recorder
	Logger      *zap.Logger
	Now         func() time.Time
}

// RefreshResult describes what a Refresh call did.
type RefreshResult struct {
	// Snapshot is the published snapshot once the refresh finished. When the
	// fetch was superseded it is whatever newer data is current.
	Snapshot *model.Snapshot
	Applied  bool
	// Shared is set when the call joined a fetch already in flight.
	Shared bool
}

// Board keeps the latest snapshot. Readers load it without locking; each
// refresh builds a new snapshot and swaps it in.
type Board struct {
	base        collector.Fetcher
	fallback    collector.Fetcher
	newEndpoint func(string) collector.Fetcher
	notifier    notifier.Notifier
	recorder    recorder.Recorder
	logger      *zap.Logger
	now         func() time.Time

	group    singleflight.Group
	inflight sync.WaitGroup
	snap     atomic.Pointer[model.Snapshot]
	seq      atomic.Uint64
	notices  NoticeList

	mu      sync.Mutex
	fetcher collector.Fetcher
	applied uint64
}

// New creates a Board and publishes an empty snapshot for the configured source.
func New(opts Options) *Board {
	b := &Board{
		base:        opts.Fetcher,
		fetcher:     opts.Fetcher,
		fallback:    opts.Fallback,
		newEndpoint: opts.NewEndpoint,
		notifier:    opts.Notifier,
		recorder:    opts.Recorder,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if b.fallback == nil {
		b.fallback = collector.DemoFetcher{}
	}
	if b.base == nil {
		b.base = b.fallback
		b.fetcher = b.fallback
	}
	if b.notifier == nil {
		b.notifier = notifier.LogNotifier{Logger: opts.Logger}
	}
	if b.recorder == nil {
		b.recorder = recorder.NewNoopRecorder()
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.now == nil {
		b.now = time.Now
	}

	b.snap.Store(&model.Snapshot{
		Articles: []model.Article{},
		Signals:  []model.Signal{},
		Options:  model.FilterOptions{Sectors: []string{}, Stocks: []string{}},
		Source:   b.fetcher.Name(),
	})
	return b
}

// Snapshot returns the current published snapshot. Callers must not modify it.
func (b *Board) Snapshot() *model.Snapshot {
	return b.snap.Load()
}

// Notices returns the board's dismissible fetch-failure notices.
func (b *Board) Notices() *NoticeList {
	return &b.notices
}

// Fetcher returns the fetcher used by the next refresh.
func (b *Board) Fetcher() collector.Fetcher {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetcher
}

// SetFetcher switches the data source. Fetches still in flight against the
// previous source are discarded when they complete.
func (b *Board) SetFetcher(f collector.Fetcher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetcher = f
	b.logger.Info("data source changed", zap.String("source", f.Name()), zap.String("key", f.Key()))
}

// UseEndpoint switches to the single-endpoint source. An empty url reverts to
// the configured source.
func (b *Board) UseEndpoint(url string) error {
	if url == "" {
		b.SetFetcher(b.base)
		return nil
	}
	if b.newEndpoint == nil {
		return fmt.Errorf("endpoint mode not available")
	}
	b.SetFetcher(b.newEndpoint(url))
	return nil
}

// Refresh fetches news and signals from the current source and publishes the
// result. Fetch failures never surface here: the failed collection is replaced
// by demo data and reported through notices and the notifier. Overlapping calls
// for the same source share a single fetch. The returned error is only the
// caller's own context ending. A context that is already done starts no fetch.
func (b *Board) Refresh(ctx context.Context) (RefreshResult, error) {
	if err := ctx.Err(); err != nil {
		return RefreshResult{Snapshot: b.Snapshot()}, err
	}
	f := b.Fetcher()
	ch := b.group.DoChan(f.Key(), func() (any, error) {
		b.inflight.Add(1)
		defer b.inflight.Done()
		// The shared fetch must outlive any single caller.
		return b.fetch(context.WithoutCancel(ctx), f), nil
	})

	select {
	case <-ctx.Done():
		return RefreshResult{Snapshot: b.Snapshot()}, ctx.Err()
	case res := <-ch:
		applied := res.Val.(bool)
		return RefreshResult{Snapshot: b.Snapshot(), Applied: applied, Shared: res.Shared}, nil
	}
}

// Wait blocks until fetches already in flight have published and recorded
// their result. Callers stop issuing refreshes before calling it.
func (b *Board) Wait() {
	b.inflight.Wait()
}

func (b *Board) fetch(ctx context.Context, f collector.Fetcher) bool {
	seq := b.seq.Add(1)
	started := b.now()
	log := b.logger.With(zap.String("source", f.Name()), zap.Uint64("seq", seq))

	var (
		articles []model.Article
		signals  []model.Signal
		newsErr  error
		sigErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		articles, newsErr = f.FetchNews(gctx)
		return nil
	})
	g.Go(func() error {
		signals, sigErr = f.FetchSignals(gctx)
		return nil
	})
	_ = g.Wait()

	snap := &model.Snapshot{
		Articles:  articles,
		Signals:   signals,
		Source:    f.Name(),
		FetchedAt: b.now(),
	}
	if newsErr != nil {
		log.Warn("news fetch failed, using demo articles", zap.Error(newsErr))
		var err error
		if snap.Articles, err = b.fallback.FetchNews(ctx); err != nil {
			log.Error("fallback news fetch failed", zap.String("fallback", b.fallback.Name()), zap.Error(err))
		}
		snap.NewsFallback = true
	}
	if sigErr != nil {
		log.Warn("signals fetch failed, using demo signals", zap.Error(sigErr))
		var err error
		if snap.Signals, err = b.fallback.FetchSignals(ctx); err != nil {
			log.Error("fallback signals fetch failed", zap.String("fallback", b.fallback.Name()), zap.Error(err))
		}
		snap.SignalsFallback = true
	}
	if snap.Articles == nil {
		snap.Articles = []model.Article{}
	}
	if snap.Signals == nil {
		snap.Signals = []model.Signal{}
	}
	snap.Options = filter.Options(snap.Articles)

	applied := b.publish(seq, f, snap)
	if applied {
		b.report(ctx, f, "news", newsErr)
		b.report(ctx, f, "signals", sigErr)
		log.Info("snapshot published",
			zap.Int("articles", len(snap.Articles)),
			zap.Int("signals", len(snap.Signals)),
			zap.Bool("degraded", snap.Degraded()))
	} else {
		log.Info("stale fetch discarded")
	}

	evt := &recorder.RefreshEvent{
		ID:              uuid.New(),
		StartedAt:       started,
		Duration:        snap.FetchedAt.Sub(started),
		Source:          f.Name(),
		Articles:        len(snap.Articles),
		Signals:         len(snap.Signals),
		NewsFallback:    snap.NewsFallback,
		SignalsFallback: snap.SignalsFallback,
		Superseded:      !applied,
	}
	if err := multierr.Combine(newsErr, sigErr); err != nil {
		evt.Error = err.Error()
	}
	if err := b.recorder.RecordRefresh(evt); err != nil {
		log.Error("record refresh", zap.Error(err))
	}
	return applied
}

// publish swaps in snap unless a newer fetch was already applied or the
// source changed while this one was in flight.
func (b *Board) publish(seq uint64, f collector.Fetcher, snap *model.Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.applied || f.Key() != b.fetcher.Key() {
		return false
	}
	b.applied = seq
	b.snap.Store(snap)
	return true
}

func (b *Board) report(ctx context.Context, f collector.Fetcher, subject string, err error) {
	if err == nil {
		return
	}
	msg := fmt.Sprintf("Could not load %s from %s; showing demo data. %v", subject, f.Name(), err)
	b.notices.Add(f.Name(), subject, msg, b.now())
	if nerr := b.notifier.Notify(ctx, notifier.FormatFetchFailure(f.Name(), subject, err)); nerr != nil {
		b.logger.Warn("fetch failure notification not sent", zap.Error(nerr))
	}
}
