// Package console answers commands on a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Strategy writes every response to an io.Writer and runs handlers inline.
type Strategy struct {
	mu   sync.Mutex
	out  io.Writer
	deps command.Dependencies
}

var _ command.Strategy = (*Strategy)(nil)

func New(out io.Writer, deps command.Dependencies) *Strategy {
	if deps == nil {
		deps = command.Dependencies{}
	}
	return &Strategy{out: out, deps: deps}
}

func (s *Strategy) write(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(s.out, text)
	return err
}

func (s *Strategy) SendArgumentError(_ context.Context, _ command.Source, _ *cmd.Invocation, message, usage string) error {
	return s.write(command.FormatArgumentError(message, usage))
}

func (s *Strategy) SendResponse(_ context.Context, _ command.Source, _ *cmd.Invocation, text string) error {
	return s.write(text)
}

// SendResponseMessage prints the content followed by each embed's title and
// description.
func (s *Strategy) SendResponseMessage(_ context.Context, _ command.Source, _ *cmd.Invocation, msg *discordgo.MessageSend) error {
	var b strings.Builder
	if msg.Content != "" {
		b.WriteString(msg.Content + "\n")
	}
	for _, e := range msg.Embeds {
		if e.Title != "" {
			b.WriteString(e.Title + "\n")
		}
		if e.Description != "" {
			b.WriteString(e.Description + "\n")
		}
	}
	return s.write(b.String())
}

func (s *Strategy) SendResponseAsFile(ctx context.Context, src command.Source, inv *cmd.Invocation, fileName, content string) error {
	return s.SendResponseTextAndFile(ctx, src, inv, "", fileName, content)
}

func (s *Strategy) SendResponseTextAndFile(_ context.Context, _ command.Source, _ *cmd.Invocation, text, fileName, content string) error {
	var b strings.Builder
	if text != "" {
		b.WriteString(text + "\n")
	}
	fmt.Fprintf(&b, "--- %s ---\n%s", fileName, content)
	return s.write(b.String())
}

func (s *Strategy) FindDependency(tag any) (any, bool) {
	return s.deps.FindDependency(tag)
}

func (s *Strategy) Execute(work func() error) error {
	return args.Inline.Execute(work)
}
