package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
	"github.com/keshon/agorabot/pkg/retrylimit"
)

// maxMessageLength is Discord's limit on message content.
const maxMessageLength = 2000

// Messenger is the part of *discordgo.Session used to answer commands.
type Messenger interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Strategy answers commands in the channel they were invoked from.
type Strategy struct {
	messenger Messenger
	limiter   *retrylimit.AdaptiveLimiter
	retry     retrylimit.RetryConfig
	exec      args.Strategy
	deps      command.Dependencies
}

var _ command.Strategy = (*Strategy)(nil)

// NewStrategy returns a Strategy sending through m. exec runs matched
// handlers; nil means inline.
func NewStrategy(m Messenger, exec args.Strategy, deps command.Dependencies, logger *zap.Logger) *Strategy {
	if exec == nil {
		exec = args.Inline
	}
	if deps == nil {
		deps = command.Dependencies{}
	}
	retry := retrylimit.DefaultRetryConfig()
	retry.MaxAttempts = 5
	retry.Logger = logger
	return &Strategy{
		messenger: m,
		limiter:   retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		retry:     retry,
		exec:      exec,
		deps:      deps,
	}
}

func (s *Strategy) send(ctx context.Context, fn func() error) error {
	return retrylimit.WithRetryConfig(ctx, func() error {
		return classify(fn())
	}, s.limiter, s.retry)
}

func (s *Strategy) SendArgumentError(ctx context.Context, src command.Source, inv *cmd.Invocation, message, usage string) error {
	return s.SendResponse(ctx, src, inv, command.FormatArgumentError(message, usage))
}

// SendResponse sends text, or attaches it as response.txt when it does not
// fit in one message.
func (s *Strategy) SendResponse(ctx context.Context, src command.Source, inv *cmd.Invocation, text string) error {
	if len(text) > maxMessageLength {
		return s.SendResponseAsFile(ctx, src, inv, "response.txt", text)
	}
	return s.send(ctx, func() error {
		_, err := s.messenger.ChannelMessageSend(src.ChannelID, text)
		return err
	})
}

func (s *Strategy) SendResponseMessage(ctx context.Context, src command.Source, _ *cmd.Invocation, msg *discordgo.MessageSend) error {
	return s.send(ctx, func() error {
		_, err := s.messenger.ChannelMessageSendComplex(src.ChannelID, msg)
		return err
	})
}

func (s *Strategy) SendResponseAsFile(ctx context.Context, src command.Source, inv *cmd.Invocation, fileName, content string) error {
	return s.SendResponseTextAndFile(ctx, src, inv, "", fileName, content)
}

func (s *Strategy) SendResponseTextAndFile(ctx context.Context, src command.Source, _ *cmd.Invocation, text, fileName, content string) error {
	return s.send(ctx, func() error {
		_, err := s.messenger.ChannelMessageSendComplex(src.ChannelID, fileMessage(text, fileName, content))
		return err
	})
}

func (s *Strategy) FindDependency(tag any) (any, bool) {
	return s.deps.FindDependency(tag)
}

func (s *Strategy) Execute(work func() error) error {
	return s.exec.Execute(work)
}

// fileMessage builds a fresh message per attempt, since the reader is
// consumed by each send.
func fileMessage(text, fileName, content string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: text,
		Files: []*discordgo.File{{
			Name:        fileName,
			ContentType: "text/plain",
			Reader:      strings.NewReader(content),
		}},
	}
}

type restError struct {
	err  *discordgo.RESTError
	code int
}

func (e *restError) Error() string   { return e.err.Error() }
func (e *restError) Unwrap() error   { return e.err }
func (e *restError) StatusCode() int { return e.code }

// classify exposes the HTTP status of REST errors to retrylimit and stops
// retries on client errors other than 429.
func classify(err error) error {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Response == nil {
		return err
	}
	code := rest.Response.StatusCode
	wrapped := &restError{err: rest, code: code}
	if code >= 400 && code < 500 && code != 429 {
		return retrylimit.Fatal(fmt.Errorf("discord: %w", wrapped))
	}
	return wrapped
}
