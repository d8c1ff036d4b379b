package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command/duck"
	"github.com/keshon/agorabot/internal/command/roll"
	"github.com/keshon/agorabot/pkg/cmd"
)

func TestSessionDispatch(t *testing.T) {
	var out bytes.Buffer
	r := cmd.NewRegistry()
	s := NewSession(&out, r)
	require.NoError(t, r.Register(roll.NewChoose(s.Strategy(), func(int) int { return 1 })))

	input := strings.NewReader("choose tea coffee\n\nnot a command\nchoose\n")
	require.NoError(t, s.Run(context.Background(), input))

	assert.Equal(t, "I choose: coffee\nGive me something to choose from.\n", out.String())
}

func TestSessionListeners(t *testing.T) {
	var out bytes.Buffer
	r := cmd.NewRegistry()
	s := NewSession(&out, r)
	duckCmd, d := duck.New(s.Strategy(), func(int) int { return 0 })
	require.NoError(t, r.Register(duckCmd))

	ctx := context.Background()
	require.NoError(t, s.Handle(ctx, "duck start"))
	assert.True(t, d.Listening(Source.ChannelID, Source.AuthorID))

	require.NoError(t, s.Handle(ctx, "I fixed it"))
	assert.False(t, d.Listening(Source.ChannelID, Source.AuthorID))
	assert.Contains(t, out.String(), "Good for you! I'll be quiet now.")
}
