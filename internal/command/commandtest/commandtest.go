// Package commandtest provides a recording command.Strategy for tests.
package commandtest

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

// File is a response sent as an attachment.
type File struct {
	Text    string
	Name    string
	Content string
}

// ArgumentError is a reported argument mismatch.
type ArgumentError struct {
	Message string
	Usage   string
}

// Strategy records every response. Handlers run inline.
type Strategy struct {
	mu sync.Mutex

	Texts          []string
	Messages       []*discordgo.MessageSend
	Files          []File
	ArgumentErrors []ArgumentError

	Deps command.Dependencies
}

var _ command.Strategy = (*Strategy)(nil)

func New() *Strategy {
	return &Strategy{Deps: command.Dependencies{}}
}

func (s *Strategy) SendArgumentError(_ context.Context, _ command.Source, _ *cmd.Invocation, message, usage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ArgumentErrors = append(s.ArgumentErrors, ArgumentError{Message: message, Usage: usage})
	return nil
}

func (s *Strategy) SendResponse(_ context.Context, _ command.Source, _ *cmd.Invocation, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Texts = append(s.Texts, text)
	return nil
}

func (s *Strategy) SendResponseMessage(_ context.Context, _ command.Source, _ *cmd.Invocation, msg *discordgo.MessageSend) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

func (s *Strategy) SendResponseAsFile(_ context.Context, _ command.Source, _ *cmd.Invocation, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files = append(s.Files, File{Name: name, Content: content})
	return nil
}

func (s *Strategy) SendResponseTextAndFile(_ context.Context, _ command.Source, _ *cmd.Invocation, text, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files = append(s.Files, File{Text: text, Name: name, Content: content})
	return nil
}

func (s *Strategy) FindDependency(tag any) (any, bool) {
	return s.Deps.FindDependency(tag)
}

func (s *Strategy) Execute(work func() error) error {
	return args.Inline.Execute(work)
}

// LastText returns the most recent text response, or "".
func (s *Strategy) LastText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Texts) == 0 {
		return ""
	}
	return s.Texts[len(s.Texts)-1]
}

// Invoke runs c with tokens as arguments from src.
func Invoke(c cmd.Command, src command.Source, tokens ...string) error {
	return c.Run(context.Background(), &cmd.Invocation{Name: c.Name(), Args: tokens, Data: src})
}
