// Package args is a declarative argument matcher for chat commands.
//
// A command describes the shapes of input it accepts once, as a tree built by
// Describe:
//
//	shape := args.Describe(func(b *args.Block[*Env]) {
//	    b.MatchFirst(func(c *args.Choices[*Env]) {
//	        args.NoArgs(c, func(e *Env) error { ... })
//	        args.Args1(c, args.StringArg("statement"), func(e *Env, s string) error { ... })
//	    })
//	})
//
// The same tree is walked by two evaluators: Execute matches it against the
// invocation tokens and hands the single matching handler to a Strategy, and
// Render produces the usage line shown to users. Both read the tree; neither
// mutates it, so the documented syntax is always the accepted syntax.
package args

import "strings"

// Count is how many tokens an argument may consume.
type Count int

const (
	CountOnce Count = iota
	CountOptional
	CountRepeating
)

func (c Count) symbol() string {
	switch c {
	case CountOptional:
		return "?"
	case CountRepeating:
		return "..."
	default:
		return ""
	}
}

func (c Count) String() string {
	switch c {
	case CountOnce:
		return "once"
	case CountOptional:
		return "optional"
	case CountRepeating:
		return "repeating"
	default:
		return "unknown"
	}
}

// Usage describes one argument for help output. An empty Name or Type is
// treated as absent.
type Usage struct {
	Name  string
	Type  string
	Count Count
}

// String renders the argument fragment without brackets, e.g. "count: Int?".
func (u Usage) String() string {
	var b strings.Builder
	if u.Name == "" {
		b.WriteString("_")
	} else {
		b.WriteString(u.Name)
	}
	if u.Type != "" {
		b.WriteString(": ")
		b.WriteString(u.Type)
	}
	b.WriteString(u.Count.symbol())
	return b.String()
}
