package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/commandtest"
	"github.com/keshon/agorabot/internal/command/roll"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

func setup(t *testing.T) (*commandtest.Strategy, *cmd.Registry) {
	t.Helper()
	s := commandtest.New()
	reg := cmd.NewRegistry()
	require.NoError(t, reg.Register(New(s, reg, "!")))
	require.NoError(t, reg.Register(roll.NewChoose(s, nil)))
	require.NoError(t, reg.Register(command.New("ping", "Pong", s, func(b *args.Block[*command.Receiver]) {
		args.NoArgs(b, func(r *command.Receiver) error { return r.Respond("pong") })
	}, command.WithCategory(config.CategoryInformation))))
	return s, reg
}

func TestHelpOverview(t *testing.T) {
	s, reg := setup(t)
	require.NoError(t, reg.Get("help").Run(t.Context(), &cmd.Invocation{Name: "help"}))

	want := "**" + config.CategoryInformation + "**\n" +
		"`!help _ | [command: String]` - Lists commands, or shows how to use one\n" +
		"`!ping` - Pong\n" +
		"\n" +
		"**" + config.CategoryGameplay + "**\n" +
		"`!choose [options: String...]` - Picks one of the given options"
	assert.Equal(t, want, s.LastText())
}

func TestHelpSingleCommand(t *testing.T) {
	s, reg := setup(t)
	h := reg.Get("help")

	require.NoError(t, commandtest.Invoke(h, command.Source{}, "choose"))
	assert.Equal(t, "`!choose [options: String...]`\nPicks one of the given options", s.LastText())

	require.NoError(t, commandtest.Invoke(h, command.Source{}, "!PING"))
	assert.Equal(t, "`!ping`\nPong", s.LastText())

	require.NoError(t, commandtest.Invoke(h, command.Source{}, "nope"))
	assert.Equal(t, `Unknown command "nope".`, s.LastText())
}

func TestOverviewUncategorized(t *testing.T) {
	s := commandtest.New()
	c := command.New("misc", "Misc", s, func(b *args.Block[*command.Receiver]) {
		args.NoArgs(b, func(r *command.Receiver) error { return nil })
	})
	assert.Equal(t, "**Other**\n`misc` - Misc", Overview([]cmd.Command{c}, ""))
}
