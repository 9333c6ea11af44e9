package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/terafetch/internal/config"
	"github.com/mamadbah2/terafetch/internal/render"
	"github.com/mamadbah2/terafetch/internal/server/handlers"
	"github.com/mamadbah2/terafetch/internal/server/router"
	relaysvc "github.com/mamadbah2/terafetch/internal/service/relay"
	"github.com/mamadbah2/terafetch/pkg/clients/resolver"
	"github.com/mamadbah2/terafetch/pkg/clients/telegram"
	"github.com/mamadbah2/terafetch/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	renderer, err := render.NewRenderer()
	if err != nil {
		baseLogger.Fatal("failed to init player renderer", zap.Error(err))
	}

	telegramClient := telegram.NewClient(cfg.Telegram, cfg.HTTP.Timeout)
	resolverClient := resolver.NewClient(cfg.Resolver, cfg.HTTP.Timeout)

	relay := relaysvc.NewService(telegramClient, resolverClient, relaysvc.Options{
		SiteURL:     cfg.Site.BaseURL,
		LinkMarker:  cfg.Resolver.LinkMarker,
		CallTimeout: cfg.HTTP.Timeout,
	}, logger.Named(baseLogger, "svc.relay"))

	webhookHandler := handlers.NewWebhookHandler(relay, renderer, logger.Named(baseLogger, "handlers.webhook"))
	engine := router.New(webhookHandler, logger.Named(baseLogger, "router"))

	if cfg.Telegram.WebhookURL != "" {
		registerWebhook(telegramClient, cfg, baseLogger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.HTTP.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// registerWebhook points Telegram at this deployment. A failure is logged and
// the server still starts, since the webhook may already be registered.
func registerWebhook(client telegram.Client, cfg *config.Config, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if err := client.SetWebhook(ctx, cfg.Telegram.WebhookURL); err != nil {
		log.Warn("failed to register telegram webhook", zap.Error(err))
		return
	}
	log.Info("telegram webhook registered", zap.String("url", cfg.Telegram.WebhookURL))
}
