package discord

import (
	"context"
	"strings"

	"github.com/keshon/agorabot/internal/digest"
)

// ChannelSender posts digests as a file to a channel, named by ID or mention.
type ChannelSender struct {
	strategy *Strategy
}

var _ digest.Sender = (*ChannelSender)(nil)

func NewChannelSender(s *Strategy) *ChannelSender {
	return &ChannelSender{strategy: s}
}

func (c *ChannelSender) SendDigest(ctx context.Context, destination, text string) error {
	channelID := ChannelID(destination)
	return c.strategy.send(ctx, func() error {
		_, err := c.strategy.messenger.ChannelMessageSendComplex(channelID, fileMessage("", "digest.txt", text))
		return err
	})
}

// ChannelID strips channel mention syntax: "<#123>" becomes "123".
func ChannelID(destination string) string {
	destination = strings.TrimSpace(destination)
	if strings.HasPrefix(destination, "<#") && strings.HasSuffix(destination, ">") {
		return destination[2 : len(destination)-1]
	}
	return destination
}
