package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/crystalball"
	"github.com/keshon/agorabot/pkg/cmd"
)

func TestStrategyOutput(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	ctx := context.Background()
	inv := &cmd.Invocation{Name: "x"}

	require.NoError(t, s.SendResponse(ctx, command.Source{}, inv, "hello"))
	require.NoError(t, s.SendArgumentError(ctx, command.Source{}, inv, "No matching subcommand", "clear | upload"))
	require.NoError(t, s.SendResponseTextAndFile(ctx, command.Source{}, inv, "Here:", "digest.txt", "MESSAGE 1\n"))
	require.NoError(t, s.SendResponseMessage(ctx, command.Source{}, inv, &discordgo.MessageSend{
		Content: "top",
		Embeds:  []*discordgo.MessageEmbed{{Title: "T", Description: "D"}},
	}))

	assert.Equal(t, "hello\n"+
		"No matching subcommand. Usage: clear | upload\n"+
		"Here:\n--- digest.txt ---\nMESSAGE 1\n"+
		"top\nT\nD\n", buf.String())
}

func TestStrategyRunsCommands(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	ball := crystalball.New(s, func(int) int { return 0 })

	require.NoError(t, ball.Run(context.Background(), &cmd.Invocation{Name: "crystalball", Args: []string{"rain"}}))
	require.NoError(t, ball.Run(context.Background(), &cmd.Invocation{Name: "crystalball", Args: []string{"it", "rains"}}))
	assert.Equal(t, `"rain" judged TRUE.`+"\n"+
		"No match for command set. Usage: _ | [statement: String]\n", buf.String())
}
