package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"NewsNavigator/internal/dashboard"
	"NewsNavigator/internal/notifier"
	"NewsNavigator/internal/scheduler"
	"NewsNavigator/internal/server"
)

const notifyQueueSize = 32

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API with periodic refresh",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("newsboard starting", zap.String("version", version), zap.String("config", configPath()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := openRecorder(cfg, logger)
	defer rec.Close()

	var target notifier.Notifier = notifier.LogNotifier{Logger: logger.Named("notify")}
	var tg *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tg = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.Named("telegram"))
		target = tg
	}
	dispatcher := notifier.NewDispatcher(target, notifyQueueSize, logger.Named("notify"))
	go dispatcher.Run(ctx)

	fetcher := newFetcher(cfg)
	logger.Info("data source", zap.String("mode", cfg.Source.Mode), zap.String("key", fetcher.Key()))

	board := dashboard.New(dashboard.Options{
		Fetcher:     fetcher,
		NewEndpoint: endpointFactory(cfg),
		Notifier:    dispatcher,
		Recorder:    rec,
		Logger:      logger.Named("board"),
	})

	sched := scheduler.NewScheduler(ctx, board, dispatcher, logger.Named("scheduler"))
	if err := sched.RegisterAll(cfg.Refresh.Interval, cfg.Telegram.DigestCron); err != nil {
		return err
	}
	sched.Start()

	// Runs before rec.Close: every refresh that may still record must be done.
	var bg sync.WaitGroup
	defer func() {
		cancel()
		sched.Stop()
		bg.Wait()
		board.Wait()
	}()

	if tg != nil {
		bg.Add(1)
		go func() {
			defer bg.Done()
			tg.StartPolling(ctx, sched.HandleCommand)
		}()
		logger.Info("telegram polling started")
	}

	bg.Add(1)
	go func() {
		defer bg.Done()
		sched.RunRefreshNow()
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if !flagVerbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.NewHandler(board, rec, logger.Named("http")), cfg.AllowedOrigins(), logger.Named("http"))
	err = server.Serve(ctx, cfg.Server.ListenAddr, router, logger)
	cancel()
	logger.Info("newsboard stopped")
	return err
}
