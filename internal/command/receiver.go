package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/agorabot/pkg/cmd"
)

// Source identifies where an invocation came from. Transports store it in
// cmd.Invocation.Data.
type Source struct {
	GuildID    string
	ChannelID  string
	MessageID  string
	AuthorID   string
	AuthorName string
}

// InGuild reports whether the invocation came from a guild channel.
func (s Source) InGuild() bool { return s.GuildID != "" }

// SourceOf returns the Source stored in inv, or the zero Source.
func SourceOf(inv *cmd.Invocation) Source {
	switch v := inv.Data.(type) {
	case Source:
		return v
	case *Source:
		if v != nil {
			return *v
		}
	}
	return Source{}
}

// Receiver is the environment every handler of a Base command receives.
type Receiver struct {
	ctx      context.Context
	strategy Strategy
	source   Source
	inv      *cmd.Invocation
}

// NewReceiver binds strategy to one invocation.
func NewReceiver(ctx context.Context, strategy Strategy, inv *cmd.Invocation) *Receiver {
	return &Receiver{ctx: ctx, strategy: strategy, source: SourceOf(inv), inv: inv}
}

func (r *Receiver) Context() context.Context { return r.ctx }

func (r *Receiver) Source() Source { return r.source }

func (r *Receiver) Invocation() *cmd.Invocation { return r.inv }

// Respond sends a plain text response.
func (r *Receiver) Respond(text string) error {
	return r.strategy.SendResponse(r.ctx, r.source, r.inv, text)
}

// RespondMessage sends a rich message.
func (r *Receiver) RespondMessage(msg *discordgo.MessageSend) error {
	return r.strategy.SendResponseMessage(r.ctx, r.source, r.inv, msg)
}

// RespondWithFile sends content as an attached file.
func (r *Receiver) RespondWithFile(fileName, content string) error {
	return r.strategy.SendResponseAsFile(r.ctx, r.source, r.inv, fileName, content)
}

// RespondWithTextAndFile sends text with content attached as a file.
func (r *Receiver) RespondWithTextAndFile(text, fileName, content string) error {
	return r.strategy.SendResponseTextAndFile(r.ctx, r.source, r.inv, text, fileName, content)
}

// Find looks up a dependency by tag.
func (r *Receiver) Find(tag any) (any, bool) {
	return r.strategy.FindDependency(tag)
}

// Dependency looks up tag and asserts it to T.
func Dependency[T any](r *Receiver, tag any) (T, bool) {
	v, ok := r.Find(tag)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
