// Package help lists commands and their usage.
package help

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/args"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Lister is the set of commands help describes. *cmd.Registry implements it.
type Lister interface {
	Get(name string) cmd.Command
	GetAll() []cmd.Command
}

// New returns the help command. prefix is prepended to command names.
func New(s command.Strategy, commands Lister, prefix string) *command.Base {
	return command.New("help", "Lists commands, or shows how to use one", s,
		func(b *args.Block[*command.Receiver]) {
			b.MatchFirst(func(c *args.Choices[*command.Receiver]) {
				args.NoArgs(c, func(r *command.Receiver) error {
					return r.Respond(Overview(commands.GetAll(), prefix))
				})
				args.Args1(c, args.StringArg("command"), func(r *command.Receiver, name string) error {
					target := commands.Get(strings.TrimPrefix(name, prefix))
					if target == nil {
						return r.Respond(fmt.Sprintf("Unknown command %q.", name))
					}
					return r.Respond(fmt.Sprintf("%s\n%s", Line(target, prefix), target.Description()))
				})
			})
		},
		command.WithCategory(config.CategoryInformation))
}

// Line renders a command as "`!name usage`".
func Line(c cmd.Command, prefix string) string {
	usage := cmd.Usage(c)
	if usage == "" {
		return fmt.Sprintf("`%s%s`", prefix, c.Name())
	}
	return fmt.Sprintf("`%s%s %s`", prefix, c.Name(), usage)
}

// Category returns the help category of c, looking through wrappers.
func Category(c cmd.Command) string {
	if p, ok := cmd.Root(c).(command.CategoryProvider); ok {
		return p.Category()
	}
	return ""
}

// Overview renders every command grouped by category.
func Overview(commands []cmd.Command, prefix string) string {
	var b strings.Builder
	current := "\x00"
	for _, c := range Sorted(commands) {
		if cat := Category(c); cat != current {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			current = cat
			if cat == "" {
				cat = "Other"
			}
			fmt.Fprintf(&b, "**%s**\n", cat)
		}
		fmt.Fprintf(&b, "%s - %s\n", Line(c, prefix), c.Description())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Sorted orders commands by category weight, then category, then name.
func Sorted(commands []cmd.Command) []cmd.Command {
	sorted := slices.Clone(commands)
	slices.SortStableFunc(sorted, func(a, b cmd.Command) int {
		return cmp.Or(
			cmp.Compare(config.CategoryWeight(Category(a)), config.CategoryWeight(Category(b))),
			strings.Compare(Category(a), Category(b)),
			strings.Compare(a.Name(), b.Name()),
		)
	})
	return sorted
}
