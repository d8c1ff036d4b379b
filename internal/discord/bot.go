// Package discord hosts the command registry on a Discord gateway session.
package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Bot routes prefixed chat messages to registered commands and every other
// message to the registered listeners.
type Bot struct {
	session  *discordgo.Session
	registry *cmd.Registry
	prefix   string
	logger   *zap.Logger

	mu        sync.RWMutex
	ctx       context.Context
	listeners map[string]command.Listener
	order     []string
}

var _ command.ListenerRegistry = (*Bot)(nil)

// NewSession builds an unopened bot session for token with the intents the
// commands need.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	return s, nil
}

// NewBot returns a Bot dispatching to registry. session may be nil in tests.
func NewBot(session *discordgo.Session, registry *cmd.Registry, prefix string, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		session:   session,
		registry:  registry,
		prefix:    prefix,
		logger:    logger,
		ctx:       context.Background(),
		listeners: make(map[string]command.Listener),
	}
}

// Run opens the gateway connection and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.session.Close()

	<-ctx.Done()
	b.logger.Info("shutdown signal received")
	return nil
}

// AddListener registers l under name. A second registration under the same
// name is ignored.
func (b *Bot) AddListener(name string, l command.Listener) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.listeners[name]; ok {
		return false
	}
	b.listeners[name] = l
	b.order = append(b.order, name)
	b.logger.Debug("listener added", zap.String("listener", name))
	return true
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("discord bot is running",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	b.mu.RLock()
	ctx := b.ctx
	b.mu.RUnlock()

	reply := func(text string) error {
		_, err := s.ChannelMessageSend(m.ChannelID, text)
		return err
	}
	b.handle(ctx, IncomingFrom(m.Message), reply)
}

// handle runs msg as a command when it names a registered one, and passes it
// to the listeners otherwise.
func (b *Bot) handle(ctx context.Context, msg command.IncomingMessage, reply func(text string) error) {
	if name, tokens, ok := ParseCommand(b.prefix, msg.Content); ok {
		if c := b.registry.Get(name); c != nil {
			inv := &cmd.Invocation{Name: name, Args: tokens, Data: msg.Source}
			if err := c.Run(ctx, inv); err != nil {
				b.logger.Debug("command returned error",
					zap.String("command", name),
					zap.String("channel_id", msg.Source.ChannelID),
					zap.Error(err))
			}
			return
		}
	}

	b.mu.RLock()
	listeners := make([]command.Listener, 0, len(b.order))
	for _, name := range b.order {
		listeners = append(listeners, b.listeners[name])
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l.OnMessage(ctx, msg, reply)
	}
}

// ParseCommand splits a prefixed message into a command name and its
// whitespace-separated arguments. The name is lowercased.
func ParseCommand(prefix, content string) (name string, tokens []string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// IncomingFrom converts a gateway message into an IncomingMessage.
func IncomingFrom(m *discordgo.Message) command.IncomingMessage {
	src := command.Source{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
	}
	if m.Author != nil {
		src.AuthorID = m.Author.ID
		src.AuthorName = m.Author.Username
	}
	return command.IncomingMessage{Source: src, Content: m.Content}
}
