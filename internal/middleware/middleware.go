// Package middleware holds the cmd.Middleware applied to every chat command.
package middleware

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/pkg/cmd"
)

// ErrRejected is returned by middleware that stopped an invocation after
// telling the user why.
var ErrRejected = errors.New("invocation rejected")

// WithCommandLogger logs every invocation with its outcome.
func WithCommandLogger(logger *zap.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			src := command.SourceOf(inv)
			fields := []zap.Field{
				zap.String("command", c.Name()),
				zap.String("args", strings.Join(inv.Args, " ")),
				zap.String("guild_id", src.GuildID),
				zap.String("channel_id", src.ChannelID),
				zap.String("user_id", src.AuthorID),
				zap.Duration("took", time.Since(start)),
			}
			switch {
			case errors.Is(err, ErrRejected):
				logger.Info("command rejected", append(fields, zap.Error(err))...)
			case err != nil:
				logger.Warn("command failed", append(fields, zap.Error(err))...)
			default:
				logger.Debug("command dispatched", fields...)
			}
			return err
		})
	}
}

// WithGuildOnly rejects invocations from outside a guild.
func WithGuildOnly(out command.OutputStrategy) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			src := command.SourceOf(inv)
			if !src.InGuild() {
				_ = out.SendResponse(ctx, src, inv, "This command can only be used in a guild.")
				return ErrRejected
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithBotPermission requires the command's bot-scope permission, or its name
// when the command does not declare one.
func WithBotPermission(out command.OutputStrategy, checker *permission.Checker) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		perm := c.Name()
		if p, ok := cmd.Root(c).(command.PermissionProvider); ok {
			perm = p.Permission()
		}
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			src := command.SourceOf(inv)
			ok, err := checker.Allowed(src.AuthorID, perm)
			if err != nil {
				return err
			}
			if !ok {
				_ = out.SendResponse(ctx, src, inv, "You don't have permission to use this command.")
				return ErrRejected
			}
			return c.Run(ctx, inv)
		})
	}
}

// RateLimiter hands out one token bucket per key.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewRateLimiter allows perSecond invocations per key with bursts of burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    max(1, burst),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether key may act now.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	l, ok := r.limiters[key]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[key] = l
	}
	r.mu.Unlock()
	return l.Allow()
}

// WithRateLimit limits invocations per user across all wrapped commands.
func WithRateLimit(out command.OutputStrategy, limiter *RateLimiter) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			src := command.SourceOf(inv)
			if !limiter.Allow(src.AuthorID) {
				_ = out.SendResponse(ctx, src, inv, "Slow down, you're sending commands too fast.")
				return ErrRejected
			}
			return c.Run(ctx, inv)
		})
	}
}
