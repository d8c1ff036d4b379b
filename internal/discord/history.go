package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/agorabot/internal/digest"
	"github.com/keshon/agorabot/pkg/util"
)

// pageSize is the largest page Discord returns from the messages endpoint.
const pageSize = 100

// nicknameWorkers bounds concurrent member lookups.
const nicknameWorkers = 4

// History reads channel history through a session.
type History struct {
	session *discordgo.Session
}

var _ digest.History = (*History)(nil)

func NewHistory(session *discordgo.Session) *History {
	return &History{session: session}
}

func (h *History) Message(ctx context.Context, channelID, messageID string) (digest.Message, error) {
	m, err := h.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return digest.Message{}, fmt.Errorf("fetch message %s: %w", messageID, err)
	}
	msgs := []digest.Message{h.convert(m)}
	if err := h.resolveNicknames(ctx, h.guildOf(m), []*discordgo.Message{m}, msgs); err != nil {
		return digest.Message{}, err
	}
	return msgs[0], nil
}

// Between pages forward from begin until end's timestamp is passed.
func (h *History) Between(ctx context.Context, channelID string, begin, end digest.Message) ([]digest.Message, error) {
	raw := []*discordgo.Message{}
	first, err := h.session.ChannelMessage(channelID, begin.ID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch message %s: %w", begin.ID, err)
	}
	raw = append(raw, first)

	after := begin.ID
	for done := begin.ID == end.ID; !done; {
		page, err := h.session.ChannelMessages(channelID, pageSize, "", after, "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch messages after %s: %w", after, err)
		}
		if len(page) == 0 {
			break
		}
		page = oldestFirst(page)
		for _, m := range page {
			if m.Timestamp.After(end.Date) {
				done = true
				break
			}
			raw = append(raw, m)
			if m.ID == end.ID {
				done = true
				break
			}
		}
		after = page[len(page)-1].ID
	}

	msgs := make([]digest.Message, len(raw))
	for i, m := range raw {
		msgs[i] = h.convert(m)
	}
	if err := h.resolveNicknames(ctx, h.guildOf(first), raw, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (h *History) React(ctx context.Context, channelID, messageID, emoji string) error {
	return h.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

// guildOf fills in the guild ID, which REST responses leave out, from the
// state cache.
func (h *History) guildOf(m *discordgo.Message) string {
	if m.GuildID != "" {
		return m.GuildID
	}
	if ch, err := h.session.State.Channel(m.ChannelID); err == nil {
		return ch.GuildID
	}
	return ""
}

func (h *History) convert(m *discordgo.Message) digest.Message {
	msg := Convert(m)
	if ch, err := h.session.State.Channel(m.ChannelID); err == nil {
		msg.ChannelName = ch.Name
	}
	return msg
}

// resolveNicknames fills SenderNickname for guild messages, fetching each
// author's member record once.
func (h *History) resolveNicknames(ctx context.Context, guildID string, raw []*discordgo.Message, msgs []digest.Message) error {
	if guildID == "" {
		return nil
	}

	var authors []string
	seen := map[string]bool{}
	for _, m := range raw {
		if m.Author != nil && !seen[m.Author.ID] {
			seen[m.Author.ID] = true
			authors = append(authors, m.Author.ID)
		}
	}

	var mu sync.Mutex
	nicks := make(map[string]string, len(authors))
	err := util.Parallel(ctx, authors, nicknameWorkers, func(ctx context.Context, userID string) error {
		member, err := h.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			// departed members keep their username only
			return nil
		}
		mu.Lock()
		nicks[userID] = member.Nick
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	for i, m := range raw {
		if m.Author != nil {
			msgs[i].SenderNickname = nicks[m.Author.ID]
		}
	}
	return nil
}

// Convert maps a gateway message to a digest message without nickname or
// channel name.
func Convert(m *discordgo.Message) digest.Message {
	msg := digest.Message{
		ID:      m.ID,
		Content: m.Content,
		Date:    m.Timestamp,
	}
	if m.Author != nil {
		msg.SenderUsername = m.Author.Username
	}
	for _, a := range m.Attachments {
		msg.AttachmentURLs = append(msg.AttachmentURLs, a.URL)
	}
	return msg
}

// oldestFirst returns page ordered by ascending snowflake. The endpoint
// answers newest first.
func oldestFirst(page []*discordgo.Message) []*discordgo.Message {
	out := make([]*discordgo.Message, len(page))
	for i, m := range page {
		out[len(page)-1-i] = m
	}
	return out
}
