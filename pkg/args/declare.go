package args

// Declarer is a place a leaf can be declared: a *Block or a *Choices.
type Declarer[E any] interface {
	declare(s Shape[E])
}

// Block collects the declarations of one description level. It accepts a
// single leaf, a single MatchFirst set, or any number of uniquely named
// subcommands.
type Block[E any] struct {
	check   checker
	shape   Shape[E]
	entries []Subcommand[E]
	sealed  bool
}

func (b *Block[E]) ensureOpen() {
	if b.sealed {
		panic(ErrBlockSealed)
	}
}

func (b *Block[E]) declare(s Shape[E]) {
	b.ensureOpen()
	b.check.implementation()
	b.shape = s
}

// MatchFirst declares an ordered set of alternatives.
func (b *Block[E]) MatchFirst(fn func(c *Choices[E])) {
	b.ensureOpen()
	b.check.implementation()
	b.shape = buildChoices(fn)
}

// Subcommands declares named subcommands. Calling it again in the same block
// adds to the same set.
func (b *Block[E]) Subcommands(fn func(s *SubcommandSet[E])) {
	b.ensureOpen()
	b.check.subcommands()

	set := &SubcommandSet[E]{block: b}
	fn(set)
	set.sealed = true
}

func (b *Block[E]) seal() Shape[E] {
	b.sealed = true
	switch b.check.state {
	case stateImplementation:
		return b.shape
	case stateSubcommands:
		return &Subcommands[E]{Entries: b.entries}
	default:
		return &Empty[E]{}
	}
}

// SubcommandSet declares the entries of a Subcommands shape.
type SubcommandSet[E any] struct {
	block  *Block[E]
	sealed bool
}

// Subcommand declares name with the body built by fn. The body may declare
// any shape, including further subcommands.
func (s *SubcommandSet[E]) Subcommand(name string, fn func(b *Block[E])) {
	if s.sealed {
		panic(ErrBlockSealed)
	}
	s.block.ensureOpen()
	s.block.check.subcommand(name)
	s.block.entries = append(s.block.entries, Subcommand[E]{Name: name, Body: build(fn)})
}

// Choices collects the branches of a MatchFirst set, in order.
type Choices[E any] struct {
	branches []Shape[E]
	sealed   bool
}

func (c *Choices[E]) declare(s Shape[E]) {
	if c.sealed {
		panic(ErrBlockSealed)
	}
	c.branches = append(c.branches, s)
}

// MatchFirst nests another alternative set as a single branch.
func (c *Choices[E]) MatchFirst(fn func(c *Choices[E])) {
	c.declare(buildChoices(fn))
}

func buildChoices[E any](fn func(c *Choices[E])) *Alternatives[E] {
	c := &Choices[E]{}
	fn(c)
	c.sealed = true
	return &Alternatives[E]{Branches: c.branches}
}

func build[E any](fn func(b *Block[E])) Shape[E] {
	b := &Block[E]{}
	fn(b)
	return b.seal()
}

// Describe runs fn once against a fresh block and returns the resulting tree.
// Structural mistakes in fn panic here, before anything is executed.
func Describe[E any](fn func(b *Block[E])) Shape[E] {
	s := build(fn)
	if _, ok := s.(*Empty[E]); ok {
		panic(ErrNoShape)
	}
	return s
}

// NoArgs declares a handler that accepts no arguments.
func NoArgs[E any](d Declarer[E], h func(env E) error) {
	d.declare(&Leaf[E]{
		invoke: func(env E, _ []any) error { return h(env) },
	})
}

// Args1 declares a handler with one positional argument.
func Args1[E, A any](d Declarer[E], pa Parser[A], h func(env E, a A) error) {
	d.declare(&Leaf[E]{
		parsers: []erased{erase(pa)},
		invoke: func(env E, v []any) error {
			return h(env, as[A](v[0]))
		},
	})
}

// Args2 declares a handler with two positional arguments.
func Args2[E, A, B any](d Declarer[E], pa Parser[A], pb Parser[B], h func(env E, a A, b B) error) {
	d.declare(&Leaf[E]{
		parsers: []erased{erase(pa), erase(pb)},
		invoke: func(env E, v []any) error {
			return h(env, as[A](v[0]), as[B](v[1]))
		},
	})
}

// Args3 declares a handler with three positional arguments.
func Args3[E, A, B, C any](d Declarer[E], pa Parser[A], pb Parser[B], pc Parser[C], h func(env E, a A, b B, c C) error) {
	d.declare(&Leaf[E]{
		parsers: []erased{erase(pa), erase(pb), erase(pc)},
		invoke: func(env E, v []any) error {
			return h(env, as[A](v[0]), as[B](v[1]), as[C](v[2]))
		},
	})
}

// Args4 declares a handler with four positional arguments.
func Args4[E, A, B, C, D any](d Declarer[E], pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], h func(env E, a A, b B, c C, d D) error) {
	d.declare(&Leaf[E]{
		parsers: []erased{erase(pa), erase(pb), erase(pc), erase(pd)},
		invoke: func(env E, v []any) error {
			return h(env, as[A](v[0]), as[B](v[1]), as[C](v[2]), as[D](v[3]))
		},
	})
}

// as converts a parsed value back to its static type. A nil interface value
// becomes the zero T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
