package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/commandtest"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

type greeterTag struct{}

func newEcho(s command.Strategy) *command.Base {
	return command.New("echo", "Repeats a statement", s, func(b *args.Block[*command.Receiver]) {
		b.MatchFirst(func(c *args.Choices[*command.Receiver]) {
			args.NoArgs(c, func(r *command.Receiver) error {
				greeting, ok := command.Dependency[string](r, greeterTag{})
				if !ok {
					greeting = "nothing to echo"
				}
				return r.Respond(greeting)
			})
			args.Args1(c, args.StringArg("statement"), func(r *command.Receiver, s string) error {
				return r.Respond(r.Source().AuthorName + ": " + s)
			})
		})
	}, command.WithCategory("test"))
}

func TestBaseRunsMatchingHandler(t *testing.T) {
	s := commandtest.New()
	echo := newEcho(s)

	require.NoError(t, commandtest.Invoke(echo, command.Source{AuthorName: "ann"}, "hello"))
	assert.Equal(t, "ann: hello", s.LastText())

	require.NoError(t, commandtest.Invoke(echo, command.Source{}))
	assert.Equal(t, "nothing to echo", s.LastText())

	s.Deps[greeterTag{}] = "hi there"
	require.NoError(t, commandtest.Invoke(echo, command.Source{}))
	assert.Equal(t, "hi there", s.LastText())
}

func TestBaseReportsArgumentErrors(t *testing.T) {
	s := commandtest.New()
	echo := newEcho(s)

	require.NoError(t, commandtest.Invoke(echo, command.Source{}, "a", "b"))
	require.Len(t, s.ArgumentErrors, 1)
	assert.Equal(t, commandtest.ArgumentError{
		Message: "No match for command set",
		Usage:   "_ | [statement: String]",
	}, s.ArgumentErrors[0])
	assert.Empty(t, s.Texts)
}

func TestBaseMetadata(t *testing.T) {
	echo := newEcho(commandtest.New())
	assert.Equal(t, "echo", echo.Name())
	assert.Equal(t, "Repeats a statement", echo.Description())
	assert.Equal(t, "test", echo.Category())
	assert.Equal(t, "echo", echo.Permission())
	assert.Equal(t, "_ | [statement: String]", echo.Usage())
	assert.Equal(t, "_ | [statement: String]", cmd.Usage(echo))
}

func TestNewPanicsOnInvalidDescription(t *testing.T) {
	assert.Panics(t, func() {
		command.New("broken", "", commandtest.New(), func(b *args.Block[*command.Receiver]) {})
	})
}

func TestHandlerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	c := command.New("fail", "", commandtest.New(), func(b *args.Block[*command.Receiver]) {
		args.NoArgs(b, func(r *command.Receiver) error { return boom })
	})
	assert.ErrorIs(t, commandtest.Invoke(c, command.Source{}), boom)
}

func TestCombine(t *testing.T) {
	rec := commandtest.New()
	var executed int
	exec := args.StrategyFunc(func(work func() error) error {
		executed++
		return work()
	})
	s := command.Combine(rec, rec, command.Dependencies{"k": 1}, exec)

	c := command.New("ping", "", s, func(b *args.Block[*command.Receiver]) {
		args.NoArgs(b, func(r *command.Receiver) error {
			v, _ := command.Dependency[int](r, "k")
			if v != 1 {
				return errors.New("dependency missing")
			}
			return r.Respond("pong")
		})
	})

	require.NoError(t, c.Run(context.Background(), &cmd.Invocation{Name: "ping"}))
	assert.Equal(t, 1, executed)
	assert.Equal(t, "pong", rec.LastText())

	_, ok := command.Combine(rec, rec, nil, nil).FindDependency("k")
	assert.False(t, ok)
}

func TestSourceOf(t *testing.T) {
	src := command.Source{GuildID: "g", ChannelID: "c"}
	assert.Equal(t, src, command.SourceOf(&cmd.Invocation{Data: src}))
	assert.Equal(t, src, command.SourceOf(&cmd.Invocation{Data: &src}))
	assert.Equal(t, command.Source{}, command.SourceOf(&cmd.Invocation{Data: 42}))
	assert.True(t, src.InGuild())
}

func TestFormatArgumentError(t *testing.T) {
	assert.Equal(t, "No matching subcommand. Usage: start",
		command.FormatArgumentError("No matching subcommand", "start"))
	assert.Equal(t, "Error while parsing argument 1: extraneous arg: x. Usage: _",
		command.FormatArgumentError("Error while parsing argument 1: extraneous arg: x", ""))
}
