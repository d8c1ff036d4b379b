package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/pkg/cmd"
)

// User is the author ID of everything typed on the console.
const User = "console"

// Source is the invocation source of console input. The console counts as
// a guild of its own.
var Source = command.Source{GuildID: User, ChannelID: User, AuthorID: User, AuthorName: User}

// Session reads lines and runs those that start with a registered command
// name. Other lines go to the listeners commands registered.
type Session struct {
	strategy *Strategy
	registry *cmd.Registry

	mu        sync.Mutex
	listeners map[string]command.Listener
	order     []string
}

var _ command.ListenerRegistry = (*Session)(nil)

// NewSession returns a Session whose strategy exposes it as the
// ListenerRegistry dependency.
func NewSession(out io.Writer, registry *cmd.Registry) *Session {
	s := &Session{registry: registry, listeners: make(map[string]command.Listener)}
	s.strategy = New(out, command.Dependencies{command.ListenerRegistryTag: s})
	return s
}

// Strategy is the strategy commands of this session must be built with.
func (s *Session) Strategy() *Strategy { return s.strategy }

func (s *Session) AddListener(name string, l command.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listeners[name]; ok {
		return false
	}
	s.listeners[name] = l
	s.order = append(s.order, name)
	return true
}

// Handle processes one line of input.
func (s *Session) Handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if c := s.registry.Get(fields[0]); c != nil {
		return c.Run(ctx, &cmd.Invocation{Name: c.Name(), Args: fields[1:], Data: Source})
	}

	s.mu.Lock()
	listeners := make([]command.Listener, 0, len(s.order))
	for _, name := range s.order {
		listeners = append(listeners, s.listeners[name])
	}
	s.mu.Unlock()

	msg := command.IncomingMessage{Source: Source, Content: line}
	for _, l := range listeners {
		l.OnMessage(ctx, msg, s.strategy.write)
	}
	return nil
}

// Run handles lines from in until it is exhausted or ctx is done. Command
// errors are written out and do not stop the session.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Handle(ctx, scanner.Text()); err != nil {
			_ = s.strategy.write("error: " + err.Error())
		}
	}
	return scanner.Err()
}
