// Package digest models the collected message digests of a guild.
package digest

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/keshon/agorabot/pkg/util"
)

// Message is one collected chat message.
type Message struct {
	ID             string    `json:"id"`
	ChannelName    string    `json:"channel_name"`
	SenderUsername string    `json:"sender_username"`
	SenderNickname string    `json:"sender_nickname,omitempty"`
	Content        string    `json:"content"`
	Date           time.Time `json:"date"`
	AttachmentURLs []string  `json:"attachment_urls,omitempty"`
}

// Store keeps one digest per guild. Adding a message whose ID is already
// present replaces it.
type Store interface {
	DigestMessages(guildID string) ([]Message, error)
	AddToDigest(guildID string, msgs ...Message) error
	ClearDigest(guildID string) error
}

// History reads messages from a chat channel.
type History interface {
	// Message returns a message of channelID with the sender's current
	// nickname resolved.
	Message(ctx context.Context, channelID, messageID string) (Message, error)
	// Between returns the messages from begin to end inclusive, oldest first.
	Between(ctx context.Context, channelID string, begin, end Message) ([]Message, error)
	// React adds emoji to a message.
	React(ctx context.Context, channelID, messageID, emoji string) error
}

// Sender delivers a formatted digest to a destination such as a channel ID.
type Sender interface {
	SendDigest(ctx context.Context, destination, text string) error
}

// Format renders a digest as text.
type Format interface {
	Format(msgs []Message) string
}

// FormatFunc adapts a function to Format.
type FormatFunc func(msgs []Message) string

func (f FormatFunc) Format(msgs []Message) string { return f(msgs) }

// DefaultFormat renders messages oldest first, separated by blank lines:
//
//	MESSAGE 1234
//	FROM ann (Annie) ON 2021-03-04 AT 05:06:07:
//	content
var DefaultFormat Format = FormatFunc(formatDefault)

func formatDefault(msgs []Message) string {
	sorted := slices.Clone(msgs)
	slices.SortStableFunc(sorted, func(a, b Message) int {
		return a.Date.Compare(b.Date)
	})

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		var b strings.Builder
		b.WriteString("MESSAGE " + m.ID + "\n")
		b.WriteString("FROM " + m.SenderUsername)
		if m.SenderNickname != "" && m.SenderNickname != m.SenderUsername {
			b.WriteString(" (" + m.SenderNickname + ")")
		}
		date := m.Date.UTC()
		b.WriteString(" ON " + util.FormatDateTpl(date, "YYYY-MM-DD"))
		b.WriteString(" AT " + util.FormatDateTpl(date, "hh:mm:ss") + ":\n")
		b.WriteString(m.Content)
		for _, url := range m.AttachmentURLs {
			b.WriteString("\n" + url)
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n\n")
}
