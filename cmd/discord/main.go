// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/keshon/agorabot/internal/catalog"
	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/internal/digest"
	"github.com/keshon/agorabot/internal/discord"
	"github.com/keshon/agorabot/internal/logging"
	"github.com/keshon/agorabot/internal/middleware"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/internal/storage"
	"github.com/keshon/agorabot/pkg/cmd"
	"github.com/keshon/agorabot/pkg/jobmgr"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs := jobmgr.NewManager(func(event string) {
		logger.Debug("job", zap.String("event", event))
	})

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}

	registry := cmd.NewRegistry()
	bot := discord.NewBot(session, registry, cfg.CommandPrefix, logger)
	strategy := discord.NewStrategy(session, jobs, command.Dependencies{
		command.ListenerRegistryTag: bot,
	}, logger)

	var sender digest.Sender
	if cfg.DigestSendEnabled {
		sender = discord.NewChannelSender(strategy)
	}

	err = catalog.Register(registry, catalog.Options{
		Strategy:      strategy,
		Prefix:        cfg.CommandPrefix,
		Logger:        logger,
		Limiter:       middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		DigestStore:   store,
		History:       discord.NewHistory(session),
		Sender:        sender,
		AddedReaction: cfg.DigestAddedReaction,
		Checker:       permission.NewChecker(store, cfg.IsAdmin),
		Jobs:          jobs,
	})
	if err != nil {
		return err
	}

	logger.Info("starting discord bot",
		zap.String("prefix", cfg.CommandPrefix),
		zap.Int("commands", len(registry.GetAll())))

	runErr := bot.Run(ctx)

	jobs.Close()
	waitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := jobs.Wait(waitCtx); err != nil {
		logger.Warn("jobs still running at shutdown", zap.Strings("jobs", jobs.List()), zap.Error(err))
	}

	logger.Info("discord bot exited")
	return runErr
}
