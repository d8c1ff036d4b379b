package command

import "context"

// IncomingMessage is a chat message that was not a command invocation.
type IncomingMessage struct {
	Source  Source
	Content string
}

// Listener observes incoming messages. reply answers in the message's channel.
type Listener interface {
	OnMessage(ctx context.Context, msg IncomingMessage, reply func(text string) error)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, msg IncomingMessage, reply func(text string) error)

func (f ListenerFunc) OnMessage(ctx context.Context, msg IncomingMessage, reply func(text string) error) {
	f(ctx, msg, reply)
}

// ListenerRegistry is provided by transports that can deliver chat messages
// to commands. AddListener is idempotent per name and reports whether l was
// added.
type ListenerRegistry interface {
	AddListener(name string, l Listener) bool
}

type listenerRegistryTag struct{}

// ListenerRegistryTag is the dependency tag of the transport's
// ListenerRegistry.
var ListenerRegistryTag any = listenerRegistryTag{}
