package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

// ArgumentStrategy reports an invocation that matched none of a command's
// declared shapes. usage is the command's rendered usage line.
type ArgumentStrategy interface {
	SendArgumentError(ctx context.Context, src Source, inv *cmd.Invocation, message, usage string) error
}

// OutputStrategy delivers a handler's responses back to where the invocation
// came from.
type OutputStrategy interface {
	SendResponse(ctx context.Context, src Source, inv *cmd.Invocation, text string) error
	SendResponseMessage(ctx context.Context, src Source, inv *cmd.Invocation, msg *discordgo.MessageSend) error
	SendResponseAsFile(ctx context.Context, src Source, inv *cmd.Invocation, fileName, content string) error
	SendResponseTextAndFile(ctx context.Context, src Source, inv *cmd.Invocation, text, fileName, content string) error
}

// DependencyStrategy looks up services by tag.
type DependencyStrategy interface {
	FindDependency(tag any) (any, bool)
}

// Strategy is everything a Base command needs from its host. Execute runs
// matched handlers.
type Strategy interface {
	ArgumentStrategy
	OutputStrategy
	DependencyStrategy
	args.Strategy
}

type combined struct {
	ArgumentStrategy
	OutputStrategy
	DependencyStrategy
	args.Strategy
}

// Combine assembles a Strategy from its parts. A nil executor means
// args.Inline; nil dependencies find nothing.
func Combine(a ArgumentStrategy, o OutputStrategy, d DependencyStrategy, exec args.Strategy) Strategy {
	if exec == nil {
		exec = args.Inline
	}
	if d == nil {
		d = Dependencies(nil)
	}
	return combined{a, o, d, exec}
}

// Dependencies is a fixed tag to value map.
type Dependencies map[any]any

func (d Dependencies) FindDependency(tag any) (any, bool) {
	v, ok := d[tag]
	return v, ok
}
