package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/commandtest"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

type grants map[string][]string

func (g grants) Grants(userID string) ([]string, error) { return g[userID], nil }
func (g grants) Grant(string, string) error              { return nil }
func (g grants) Revoke(string, string) error             { return nil }

func ping(s *commandtest.Strategy, opts ...command.Option) *command.Base {
	return command.New("ping", "Pong", s, func(b *args.Block[*command.Receiver]) {
		args.NoArgs(b, func(r *command.Receiver) error { return r.Respond("pong") })
	}, opts...)
}

func run(c cmd.Command, src command.Source) error {
	return c.Run(context.Background(), &cmd.Invocation{Name: c.Name(), Data: src})
}

func TestWithGuildOnly(t *testing.T) {
	s := commandtest.New()
	c := cmd.Apply(ping(s), WithGuildOnly(s))

	assert.ErrorIs(t, run(c, command.Source{ChannelID: "dm"}), ErrRejected)
	assert.Equal(t, []string{"This command can only be used in a guild."}, s.Texts)

	require.NoError(t, run(c, command.Source{GuildID: "g"}))
	assert.Equal(t, "pong", s.LastText())
}

func TestWithBotPermission(t *testing.T) {
	s := commandtest.New()
	checker := permission.NewChecker(grants{"u1": {"ping"}, "u2": {"digest"}}, func(id string) bool { return id == "admin" })

	c := cmd.Apply(ping(s), WithBotPermission(s, checker))
	require.NoError(t, run(c, command.Source{AuthorID: "u1"}))
	require.NoError(t, run(c, command.Source{AuthorID: "admin"}))
	assert.ErrorIs(t, run(c, command.Source{AuthorID: "u2"}), ErrRejected)
	assert.Equal(t, []string{"pong", "pong", "You don't have permission to use this command."}, s.Texts)

	custom := cmd.Apply(ping(s, command.WithPermission("digest.ping")), WithBotPermission(s, checker))
	require.NoError(t, run(custom, command.Source{AuthorID: "u2"}))
	assert.ErrorIs(t, run(custom, command.Source{AuthorID: "u1"}), ErrRejected)
}

func TestWithRateLimit(t *testing.T) {
	s := commandtest.New()
	c := cmd.Apply(ping(s), WithRateLimit(s, NewRateLimiter(0.001, 2)))

	require.NoError(t, run(c, command.Source{AuthorID: "u1"}))
	require.NoError(t, run(c, command.Source{AuthorID: "u1"}))
	assert.ErrorIs(t, run(c, command.Source{AuthorID: "u1"}), ErrRejected)
	require.NoError(t, run(c, command.Source{AuthorID: "u2"}))

	assert.Equal(t, "pong", s.LastText())
	assert.Contains(t, s.Texts, "Slow down, you're sending commands too fast.")
}

func TestWithCommandLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := commandtest.New()
	c := cmd.Apply(ping(s), WithGuildOnly(s), WithCommandLogger(zap.New(core)))

	require.NoError(t, c.Run(context.Background(), &cmd.Invocation{
		Name: "ping",
		Args: nil,
		Data: command.Source{GuildID: "g", AuthorID: "u1"},
	}))
	assert.ErrorIs(t, run(c, command.Source{}), ErrRejected)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "command dispatched", entries[0].Message)
	assert.Equal(t, "ping", entries[0].ContextMap()["command"])
	assert.Equal(t, "g", entries[0].ContextMap()["guild_id"])
	assert.Equal(t, "command rejected", entries[1].Message)
}
