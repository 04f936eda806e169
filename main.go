package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqio/go-nsq"

	"arty/backend/internal/app"
	"arty/backend/internal/config"
	"arty/backend/internal/logger"
)

func main() {
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		slog.Error("application exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.DB.Close()

	a, err := app.New(cfg, deps.DB, deps.NSQProducer, deps.Synthesizer, deps.Fetcher, log)
	if err != nil {
		return err
	}

	if cfg.EnableWorker {
		nsqCfg := nsq.NewConfig()
		consumer, err := nsq.NewConsumer(config.TopicGenerateTask, "backend", nsqCfg)
		if err != nil {
			return fmt.Errorf("nsq consumer error: %w", err)
		}
		consumer.AddHandler(nsq.HandlerFunc(a.GenerateConsumer.HandleMessage))
		if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
			slog.Error("failed to connect to NSQLookupd", "error", err)
		} else {
			slog.Info("NSQ generate consumer connected")
		}
		defer consumer.Stop()
	}

	if !cfg.EnableAPI {
		<-ctx.Done()
		return ctx.Err()
	}
	return a.Run(ctx)
}
