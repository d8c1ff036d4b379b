package args

import (
	"errors"
	"slices"
)

// ErrEmptyCursor is the panic value of First and Tail on an exhausted cursor.
var ErrEmptyCursor = errors.New("args: cursor has no tokens")

// Cursor is an immutable view over the tokens not yet consumed. Advancing it
// returns a new Cursor, so one value can be shared between branches.
type Cursor struct {
	tokens []string
}

// NewCursor returns a cursor over a copy of tokens.
func NewCursor(tokens []string) Cursor {
	return Cursor{tokens: slices.Clone(tokens)}
}

// Args returns the remaining tokens.
func (c Cursor) Args() []string {
	return slices.Clone(c.tokens)
}

// Len returns the number of remaining tokens.
func (c Cursor) Len() int { return len(c.tokens) }

// Empty reports whether every token has been consumed.
func (c Cursor) Empty() bool { return len(c.tokens) == 0 }

// First returns the next token. Callers must check Empty first.
func (c Cursor) First() string {
	if c.Empty() {
		panic(ErrEmptyCursor)
	}
	return c.tokens[0]
}

// Tail returns the cursor advanced past the next token. Callers must check
// Empty first.
func (c Cursor) Tail() Cursor {
	if c.Empty() {
		panic(ErrEmptyCursor)
	}
	return Cursor{tokens: c.tokens[1:]}
}
