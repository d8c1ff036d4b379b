// Package cmd is the transport-agnostic command core: a command has a name,
// a description and a Run(ctx, invocation). Adapters (Discord, CLI) build the
// invocation from their own input and look commands up in a Registry.
package cmd

import "context"

// Invocation is one already-tokenized command call. Data is the adapter's
// opaque payload (the Discord message, the CLI writer, ...).
type Invocation struct {
	Name string
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// UsageProvider is implemented by commands that can describe the arguments
// they accept.
type UsageProvider interface {
	Usage() string
}

// Usage returns the usage line of c, looking through wrappers, or "".
func Usage(c Command) string {
	if u, ok := Root(c).(UsageProvider); ok {
		return u.Usage()
	}
	return ""
}
