// Package digest is the command that collects chat messages into a per-guild
// digest and publishes it.
package digest

import (
	"fmt"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	dg "github.com/keshon/agorabot/internal/digest"
	"github.com/keshon/agorabot/pkg/args"
)

// Deps are the collaborators of the digest command. Sender may be nil, in
// which case the send subcommand is not offered. A nil Format means the
// default format.
type Deps struct {
	Store         dg.Store
	History       dg.History
	Sender        dg.Sender
	Format        dg.Format
	AddedReaction string
}

type digestCommand struct {
	Deps
}

// New returns the digest command.
func New(s command.Strategy, deps Deps) *command.Base {
	if deps.Format == nil {
		deps.Format = dg.DefaultFormat
	}
	d := &digestCommand{Deps: deps}

	return command.New("digest", "Collects messages into a digest", s, d.describe,
		command.WithCategory(config.CategoryUtilities))
}

func (d *digestCommand) describe(b *args.Block[*command.Receiver]) {
	b.Subcommands(func(s *args.SubcommandSet[*command.Receiver]) {
		s.Subcommand("clear", func(b *args.Block[*command.Receiver]) {
			args.NoArgs(b, d.clear)
		})
		s.Subcommand("upload", func(b *args.Block[*command.Receiver]) {
			args.NoArgs(b, d.upload)
		})
		if d.Sender != nil {
			s.Subcommand("send", func(b *args.Block[*command.Receiver]) {
				args.Args1(b, args.StringArg("destination"), d.send)
			})
		}
		s.Subcommand("add", func(b *args.Block[*command.Receiver]) {
			b.MatchFirst(func(c *args.Choices[*command.Receiver]) {
				args.Args1(c, args.StringArg("message_id"), d.addOne)
				args.Args2(c, args.StringArg("range_begin"), args.StringArg("range_end"), d.addRange)
			})
		})
	})
}

func (d *digestCommand) guild(r *command.Receiver) (string, bool) {
	src := r.Source()
	if !src.InGuild() {
		_ = r.Respond("This command can only be used in a guild.")
		return "", false
	}
	return src.GuildID, true
}

func (d *digestCommand) clear(r *command.Receiver) error {
	guildID, ok := d.guild(r)
	if !ok {
		return nil
	}
	if err := d.Store.ClearDigest(guildID); err != nil {
		return fmt.Errorf("clear digest: %w", err)
	}
	return r.Respond("Successfully cleared digest.")
}

func (d *digestCommand) upload(r *command.Receiver) error {
	guildID, ok := d.guild(r)
	if !ok {
		return nil
	}
	msgs, err := d.Store.DigestMessages(guildID)
	if err != nil {
		return fmt.Errorf("load digest: %w", err)
	}
	return r.RespondWithFile("digest.txt", d.Format.Format(msgs))
}

func (d *digestCommand) send(r *command.Receiver, destination string) error {
	guildID, ok := d.guild(r)
	if !ok {
		return nil
	}
	msgs, err := d.Store.DigestMessages(guildID)
	if err != nil {
		return fmt.Errorf("load digest: %w", err)
	}
	if err := d.Sender.SendDigest(r.Context(), destination, d.Format.Format(msgs)); err != nil {
		return r.Respond(fmt.Sprintf("Unable to send digest to %s.", destination))
	}
	return r.Respond(fmt.Sprintf("Sent digest to %s.", destination))
}

func (d *digestCommand) message(r *command.Receiver, id string) (dg.Message, bool) {
	msg, err := d.History.Message(r.Context(), r.Source().ChannelID, id)
	if err != nil {
		_ = r.Respond(fmt.Sprintf("Unable to find message %s in *this* channel.", id))
		return dg.Message{}, false
	}
	return msg, true
}

func (d *digestCommand) addOne(r *command.Receiver, id string) error {
	guildID, ok := d.guild(r)
	if !ok {
		return nil
	}
	msg, ok := d.message(r, id)
	if !ok {
		return nil
	}
	if err := d.Store.AddToDigest(guildID, msg); err != nil {
		return fmt.Errorf("add to digest: %w", err)
	}
	if err := r.Respond("Added one message to digest."); err != nil {
		return err
	}
	d.react(r, msg)
	return nil
}

func (d *digestCommand) addRange(r *command.Receiver, beginID, endID string) error {
	guildID, ok := d.guild(r)
	if !ok {
		return nil
	}
	begin, ok := d.message(r, beginID)
	if !ok {
		return nil
	}
	end, ok := d.message(r, endID)
	if !ok {
		return nil
	}
	if begin.Date.After(end.Date) {
		return r.Respond("Range start cannot be before range end.")
	}

	msgs, err := d.History.Between(r.Context(), r.Source().ChannelID, begin, end)
	if err != nil {
		return fmt.Errorf("retrieve messages: %w", err)
	}
	if err := d.Store.AddToDigest(guildID, msgs...); err != nil {
		return fmt.Errorf("add to digest: %w", err)
	}
	if err := r.Respond(fmt.Sprintf("Added %d messages to digest.", len(msgs))); err != nil {
		return err
	}
	for _, m := range msgs {
		d.react(r, m)
	}
	return nil
}

// react marks an added message. Failures are ignored: the message may have
// been deleted or the bot may lack the permission.
func (d *digestCommand) react(r *command.Receiver, m dg.Message) {
	if d.AddedReaction == "" {
		return
	}
	_ = d.History.React(r.Context(), r.Source().ChannelID, m.ID, d.AddedReaction)
}
