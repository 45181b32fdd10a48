package notifier

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Dispatcher.Notify when a message was dropped.
var ErrQueueFull = errors.New("notification queue full")

// Notifier delivers a text message to the user.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes notifications to the log. Used when no chat is configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, text string) error {
	if n.Logger != nil {
		n.Logger.Info("notification", zap.String("text", text))
	}
	return nil
}

// Dispatcher decouples callers from delivery: Notify only enqueues, and a
// single Run goroutine hands messages to the target in order.
type Dispatcher struct {
	target  Notifier
	queue   chan string
	logger  *zap.Logger
	dropped atomic.Int64
}

// NewDispatcher creates a dispatcher holding up to size pending messages.
func NewDispatcher(target Notifier, size int, logger *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		target: target,
		queue:  make(chan string, size),
		logger: logger,
	}
}

// Notify enqueues text without blocking. A full queue drops the message.
func (d *Dispatcher) Notify(_ context.Context, text string) error {
	select {
	case d.queue <- text:
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped reports how many messages were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

// Run delivers queued messages until ctx is cancelled. Messages still queued
// at that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-d.queue:
			if err := d.target.Notify(ctx, text); err != nil {
				d.logger.Warn("notification delivery failed", zap.Error(err))
			}
		}
	}
}
