// Package command hosts declarative commands: a Base pairs a name with an
// argument description and runs it against invocations through a Strategy.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Describer builds a command's argument description.
type Describer func(b *args.Block[*Receiver])

// Base is a cmd.Command whose input is described with package args.
type Base struct {
	name        string
	description string
	category    string
	permission  string
	strategy    Strategy
	shape       args.Shape[*Receiver]
	usage       string
}

// Option configures a Base.
type Option func(*Base)

// WithCategory sets the help category.
func WithCategory(category string) Option {
	return func(b *Base) { b.category = category }
}

// WithPermission overrides the bot-scope permission, which defaults to the
// command name.
func WithPermission(permission string) Option {
	return func(b *Base) { b.permission = permission }
}

// New builds the description once. A structurally invalid description
// panics here.
func New(name, description string, strategy Strategy, describe Describer, opts ...Option) *Base {
	b := &Base{
		name:        name,
		description: description,
		permission:  name,
		strategy:    strategy,
		shape:       args.Describe[*Receiver](describe),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.usage = args.Render[*Receiver](b.shape)
	return b
}

func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.description }
func (b *Base) Category() string    { return b.category }
func (b *Base) Permission() string  { return b.permission }
func (b *Base) Usage() string       { return b.usage }

// Run matches inv against the description. A mismatch is reported through
// the strategy's SendArgumentError and is not an error of Run.
func (b *Base) Run(ctx context.Context, inv *cmd.Invocation) error {
	r := NewReceiver(ctx, b.strategy, inv)
	err := args.Execute[*Receiver](b.shape, args.NewCursor(inv.Args), r, b.strategy)

	var nm *args.NoMatchError
	if errors.As(err, &nm) {
		return b.strategy.SendArgumentError(ctx, r.Source(), inv, nm.Message, b.usage)
	}
	return err
}

// FormatArgumentError is the chat rendering of an argument error.
func FormatArgumentError(message, usage string) string {
	if usage == "" {
		usage = args.NoArguments
	}
	return fmt.Sprintf("%s. Usage: %s", message, usage)
}

// CategoryProvider is implemented by commands that belong to a help category.
type CategoryProvider interface {
	Category() string
}

// PermissionProvider is implemented by commands guarded by a bot-scope
// permission.
type PermissionProvider interface {
	Permission() string
}
