package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"NewsNavigator/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
	block chan struct{}
}

func (r *recordingNotifier) Notify(ctx context.Context, text string) error {
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingNotifier) received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	target := &recordingNotifier{}
	d := NewDispatcher(target, 4, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	require.NoError(t, d.Notify(ctx, "one"))
	require.NoError(t, d.Notify(ctx, "two"))

	require.Eventually(t, func() bool { return len(target.received()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"one", "two"}, target.received())

	cancel()
	<-done
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(&recordingNotifier{}, 1, nil)

	require.NoError(t, d.Notify(context.Background(), "queued"))
	err := d.Notify(context.Background(), "dropped")
	assert.True(t, errors.Is(err, ErrQueueFull))
	assert.EqualValues(t, 1, d.Dropped())
}

func TestDispatcher_NotifyNeverBlocksOnSlowTarget(t *testing.T) {
	target := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(target, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	start := time.Now()
	for i := 0; i < 10; i++ {
		_ = d.Notify(ctx, "x")
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Positive(t, d.Dropped())

	cancel()
	<-done
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42", "", zap.NewNop())
	tg.APIBase = srv.URL

	require.NoError(t, tg.Notify(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Equal(t, "<b>hi</b>", got["text"])
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chat not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42", "", nil)
	tg.APIBase = srv.URL

	err := tg.SendWithRetry(context.Background(), "hi", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestTelegramNotifier_Polling(t *testing.T) {
	var mu sync.Mutex
	var replies []string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":5,"message":{"text":" /stats "}},{"update_id":6}]}`))
				return
			}
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			_ = json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			replies = append(replies, p["text"])
			mu.Unlock()
		}
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42", "", nil)
	tg.APIBase = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tg.StartPolling(ctx, func(_ context.Context, cmd string) string {
			return "reply to " + cmd
		})
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(replies) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"reply to /stats"}, replies)
}

func TestFormatters(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	snap := &model.Snapshot{
		Articles: []model.Article{
			{Title: "Fed <holds> rates", Tags: model.Tags{Stocks: []string{"SPY"}, Sentiment: model.SentimentNeutral, Impact: model.ImpactHigh}},
		},
		Signals:      []model.Signal{{Type: model.SignalBuy, Symbol: "SPY", Price: 4780.5, Confidence: model.ConfidenceHigh, Reason: "dovish"}},
		Source:       "api",
		FetchedAt:    now.Add(-2 * time.Minute),
		NewsFallback: true,
	}

	digest := FormatDigest(snap, now)
	assert.Contains(t, digest, "Fed &lt;holds&gt; rates [SPY]")
	assert.Contains(t, digest, "2 minutes ago")
	assert.Contains(t, digest, "demo data")
	assert.Contains(t, digest, "High impact: 1")

	sig := FormatSignals(snap.Signals)
	assert.Contains(t, sig, "<b>BUY</b> SPY @ 4,780.5 (high) - dovish")
	assert.Equal(t, "No signals.", FormatSignals(nil))

	hostile := FormatSignals([]model.Signal{{Type: model.SignalSell, Symbol: "X&Y", Confidence: "<i>very</i>", Reason: "a<b"}})
	assert.Contains(t, hostile, "X&amp;Y")
	assert.Contains(t, hostile, "(&lt;i&gt;very&lt;/i&gt;)")
	assert.Contains(t, hostile, "a&lt;b")
	assert.NotContains(t, hostile, "<i>")

	list := FormatArticles(append(snap.Articles, snap.Articles...), 1)
	assert.Contains(t, list, "and 1 more")

	msg := FormatFetchFailure("api", "news", errors.New("status 500"))
	assert.Contains(t, msg, "news from api")
	assert.Contains(t, msg, "status 500")
}
