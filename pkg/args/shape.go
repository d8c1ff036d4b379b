package args

// Shape is one node of a command description. The set of shapes is closed:
// *Empty, *Leaf, *Alternatives and *Subcommands. E is the environment type
// handed to handlers.
type Shape[E any] interface {
	isShape()
}

// Empty is a block that declared nothing. It never matches and renders as "".
type Empty[E any] struct{}

// Leaf is a fixed list of argument parsers with the handler that receives
// their values. A leaf without parsers is the no-argument form.
type Leaf[E any] struct {
	parsers []erased
	invoke  func(env E, values []any) error
}

// Usages returns the usage descriptor of each parser in order.
func (l *Leaf[E]) Usages() []Usage {
	out := make([]Usage, len(l.parsers))
	for i, p := range l.parsers {
		out[i] = p.usage()
	}
	return out
}

// Arity returns the number of declared parsers.
func (l *Leaf[E]) Arity() int { return len(l.parsers) }

// Alternatives is an ordered set of branches; the first full match wins.
type Alternatives[E any] struct {
	Branches []Shape[E]
}

// Subcommand is a named entry of a Subcommands shape.
type Subcommand[E any] struct {
	Name string
	Body Shape[E]
}

// Subcommands dispatches on the first token, compared case-insensitively
// against the entry names in declaration order.
type Subcommands[E any] struct {
	Entries []Subcommand[E]
}

func (*Empty[E]) isShape()        {}
func (*Leaf[E]) isShape()         {}
func (*Alternatives[E]) isShape() {}
func (*Subcommands[E]) isShape()  {}
