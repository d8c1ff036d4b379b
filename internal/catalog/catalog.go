// Package catalog assembles the bot's commands and their middleware.
package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/crystalball"
	digestcmd "github.com/keshon/agorabot/internal/command/digest"
	"github.com/keshon/agorabot/internal/command/duck"
	"github.com/keshon/agorabot/internal/command/help"
	"github.com/keshon/agorabot/internal/command/jobs"
	"github.com/keshon/agorabot/internal/command/permissions"
	"github.com/keshon/agorabot/internal/command/roll"
	"github.com/keshon/agorabot/internal/digest"
	"github.com/keshon/agorabot/internal/middleware"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Options are the collaborators of the command set. Commands whose
// collaborators are missing are left out: digest needs DigestStore and
// History, jobs needs Jobs, permissions and the permission guard need
// Checker.
type Options struct {
	Strategy command.Strategy
	Prefix   string
	Logger   *zap.Logger
	Limiter  *middleware.RateLimiter

	DigestStore   digest.Store
	History       digest.History
	Sender        digest.Sender
	AddedReaction string
	Checker       *permission.Checker
	Jobs          jobs.StatusReporter
}

type entry struct {
	c       cmd.Command
	mws     []cmd.Middleware
	aliases []string
}

// Register adds every available command to r.
func Register(r *cmd.Registry, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := opts.Strategy

	common := func(mws ...cmd.Middleware) []cmd.Middleware {
		if opts.Limiter != nil {
			mws = append(mws, middleware.WithRateLimit(s, opts.Limiter))
		}
		return append(mws, middleware.WithCommandLogger(opts.Logger))
	}

	duckCmd, _ := duck.New(s, nil)
	entries := []entry{
		{c: help.New(s, r, opts.Prefix), aliases: []string{"commands"}},
		{c: crystalball.New(s, nil), aliases: []string{"8ball"}},
		{c: roll.New(s, nil)},
		{c: roll.NewChoose(s, nil)},
		{c: duckCmd},
	}

	if opts.DigestStore != nil && opts.History != nil {
		guard := []cmd.Middleware{middleware.WithGuildOnly(s)}
		if opts.Checker != nil {
			guard = append(guard, middleware.WithBotPermission(s, opts.Checker))
		}
		entries = append(entries, entry{
			c: digestcmd.New(s, digestcmd.Deps{
				Store:         opts.DigestStore,
				History:       opts.History,
				Sender:        opts.Sender,
				AddedReaction: opts.AddedReaction,
			}),
			mws: guard,
		})
	}
	if opts.Jobs != nil {
		entries = append(entries, entry{c: jobs.New(s, opts.Jobs)})
	}
	if opts.Checker != nil {
		entries = append(entries, entry{c: permissions.New(s, opts.Checker)})
	}

	for _, e := range entries {
		if err := r.Register(cmd.Apply(e.c, common(e.mws...)...), e.aliases...); err != nil {
			return fmt.Errorf("register %s: %w", e.c.Name(), err)
		}
	}
	return nil
}
