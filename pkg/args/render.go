package args

import (
	"fmt"
	"strings"
)

// NoArguments stands for the no-argument form inside a list of alternatives.
const NoArguments = "_"

// Render returns the usage line of a description, e.g.
// "_ | [statement: String]" or "add [message_id: String] | clear".
// It reads the same tree Execute walks, so a description that cannot be
// executed cannot be rendered either.
func Render[E any](shape Shape[E]) string {
	if _, ok := shape.(*Empty[E]); ok {
		panic(ErrNoShape)
	}
	return formatSelection(options[E](shape))
}

// options returns the alternatives a shape offers, one rendered string each.
func options[E any](shape Shape[E]) []string {
	switch s := shape.(type) {
	case *Empty[E]:
		return nil
	case *Leaf[E]:
		return []string{formatUsages(s.Usages())}
	case *Alternatives[E]:
		var out []string
		for _, branch := range s.Branches {
			out = append(out, options[E](branch)...)
		}
		return out
	case *Subcommands[E]:
		out := make([]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			nested := options[E](e.Body)
			switch {
			case len(nested) == 0 || len(nested) == 1 && nested[0] == "":
				out = append(out, e.Name)
			case len(nested) == 1:
				out = append(out, e.Name+" "+nested[0])
			default:
				out = append(out, e.Name+" ["+formatSelection(nested)+"]")
			}
		}
		return out
	}
	panic(fmt.Sprintf("args: unknown shape %T", shape))
}

func formatSelection(opts []string) string {
	if len(opts) == 1 {
		return opts[0]
	}
	shown := make([]string, len(opts))
	for i, o := range opts {
		if o == "" {
			o = NoArguments
		}
		shown[i] = o
	}
	return strings.Join(shown, " | ")
}

func formatUsages(usages []Usage) string {
	parts := make([]string, len(usages))
	for i, u := range usages {
		parts[i] = "[" + u.String() + "]"
	}
	return strings.Join(parts, " ")
}
