package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingo/internal/config"
	"lingo/internal/handler"
	"lingo/internal/middleware"
	"lingo/internal/notify"
	"lingo/internal/scheduler"
	"lingo/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	staticDir     = "public"
	channelBuffer = 16
)

func runServe(cmd *cobra.Command, opts *options, logger *zap.Logger) error {
	logger.Info("Starting Lingo")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlag("provider", cmd.Flags().Lookup("provider")); err != nil {
		return fmt.Errorf("failed to bind provider flag: %w", err)
	}
	display, err := config.LoadDisplay(v, opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load display config: %w", err)
	}
	if opts.port != "" {
		cfg.HTTPPort = opts.port
	}

	logger.Info("Configuration loaded successfully",
		zap.String("provider", display.Provider),
		zap.String("reveal_mode", string(display.RevealMode)),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Initialize providers
	registry, closeStores, err := buildRegistry(ctx, cfg, display.Provider, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	logger.Info("Providers registered", zap.Strings("providers", registry.Names()))

	// Wire supplier and presenter through one channel per direction
	sched := scheduler.New()
	toSupplier := notify.NewChannel("presenter->supplier", channelBuffer, logger)
	toPresenter := notify.NewChannel("supplier->presenter", channelBuffer, logger)

	supplier := service.NewSupplier(registry, sched, toPresenter, logger)
	presenter := service.NewPresenter(display, sched, toSupplier, logger)

	go toSupplier.Run(ctx, supplier)
	go toPresenter.Run(ctx, presenter)

	// Initialize Telegram bot
	var bot *tele.Bot
	if cfg.TelegramEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}

		telegram := handler.NewTelegramDisplay(bot, cfg.Telegram.ChatID, presenter, logger)
		bot.Use(middleware.AllowedChat(cfg.Telegram.ChatID, logger))
		telegram.RegisterHandlers(bot)
		presenter.AddDisplay(telegram)

		go func() {
			logger.Info("Telegram bot started", zap.Int64("chat_id", cfg.Telegram.ChatID))
			bot.Start()
		}()
	}

	// Initialize HTTP surface
	app := handler.NewApp()
	handler.NewHTTPHandler(presenter, staticDir, logger).RegisterRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("HTTP server started", zap.String("port", cfg.HTTPPort))

	presenter.Start()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	// Graceful shutdown
	presenter.Stop()
	supplier.Stop()
	toSupplier.Close()
	toPresenter.Close()

	if bot != nil {
		bot.Stop()
	}
	if err := app.Shutdown(); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}
	cancel()

	logger.Info("Lingo stopped gracefully")
	return nil
}
