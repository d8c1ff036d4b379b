// Package duck is a rubber duck: it listens to a user until they say they
// fixed it.
package duck

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
)

// EndSession ends a duck session when sent by the listened-to user.
const EndSession = "I fixed it"

var responses = []string{
	"Tell me more.",
	"Okay.",
	"How so?",
	"Really?",
	"Is that correct?",
	"Okay...",
	"I guess.",
	"Alright.",
}

type session struct {
	channelID string
	userID    string
}

// Duck holds the active sessions and listens for their messages.
type Duck struct {
	mu        sync.RWMutex
	listening map[session]struct{}
	pick      func(n int) int
}

// New returns the duck command and its listener. pick returns an index in
// [0, n); nil means math/rand.
func New(s command.Strategy, pick func(n int) int) (*command.Base, *Duck) {
	if pick == nil {
		pick = rand.IntN
	}
	d := &Duck{listening: make(map[session]struct{}), pick: pick}

	c := command.New("duck", "Listens to you explain your problem", s,
		func(b *args.Block[*command.Receiver]) {
			b.Subcommands(func(s *args.SubcommandSet[*command.Receiver]) {
				s.Subcommand("start", func(b *args.Block[*command.Receiver]) {
					args.NoArgs(b, d.start)
				})
			})
		},
		command.WithCategory(config.CategoryUtilities))
	return c, d
}

func (d *Duck) start(r *command.Receiver) error {
	reg, ok := command.Dependency[command.ListenerRegistry](r, command.ListenerRegistryTag)
	if !ok {
		return r.Respond("I can't listen here.")
	}
	reg.AddListener("duck", d)

	src := r.Source()
	d.mu.Lock()
	d.listening[session{channelID: src.ChannelID, userID: src.AuthorID}] = struct{}{}
	d.mu.Unlock()

	return r.Respond(`Alright, I'm listening. Type "I fixed it" to stop.`)
}

// Listening reports whether a session is active for the user in the channel.
func (d *Duck) Listening(channelID, userID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.listening[session{channelID: channelID, userID: userID}]
	return ok
}

// OnMessage answers messages of users with an active session.
func (d *Duck) OnMessage(_ context.Context, msg command.IncomingMessage, reply func(string) error) {
	if !msg.Source.InGuild() {
		return
	}
	key := session{channelID: msg.Source.ChannelID, userID: msg.Source.AuthorID}
	if !d.Listening(key.channelID, key.userID) {
		return
	}

	if strings.EqualFold(strings.TrimSpace(msg.Content), EndSession) {
		d.mu.Lock()
		delete(d.listening, key)
		d.mu.Unlock()
		_ = reply("Good for you! I'll be quiet now.")
		return
	}
	_ = reply(responses[d.pick(len(responses))])
}
