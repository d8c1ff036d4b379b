package args

import (
	"errors"
	"fmt"
	"strings"
)

// Messages reported when a whole description fails to match.
const (
	MsgNoAlternative = "No match for command set"
	MsgNoSubcommand  = "No matching subcommand"
)

// NoMatchError is a user-input error: the tokens fit no declared shape.
// Index is the 1-based argument position the message refers to, or 0.
type NoMatchError struct {
	Message string
	Index   int
	Err     error
}

func (e *NoMatchError) Error() string { return e.Message }

func (e *NoMatchError) Unwrap() error { return e.Err }

// Execute matches c against shape and hands the matching handler, bound to
// env, to s. It returns a *NoMatchError when nothing matches; otherwise it
// returns whatever s returns.
func Execute[E any](shape Shape[E], c Cursor, env E, s Strategy) error {
	p, err := Match[E](shape, c)
	if err != nil {
		return err
	}
	return p.Run(env, s)
}

// Match resolves the unique leaf that accepts c without running it.
//
// A top-level leaf reports parse failures and extraneous tokens with their
// position. Inside alternatives and subcommands only full matches count, and
// a miss anywhere below is reported by the top-level shape.
func Match[E any](shape Shape[E], c Cursor) (*Pending[E], error) {
	switch s := shape.(type) {
	case *Leaf[E]:
		switch o := parseSequence(s.parsers, c).(type) {
		case Success:
			if o.FullMatch() {
				return newPending(s, o.Values), nil
			}
			return nil, argumentError(len(o.Values)+1, Readable("extraneous arg: %s", o.Remaining.First()))
		case Failure:
			return nil, argumentError(o.Index, o.Err)
		}
	case *Alternatives[E]:
		if p := matchNested[E](s, c); p != nil {
			return p, nil
		}
		return nil, &NoMatchError{Message: MsgNoAlternative}
	case *Subcommands[E]:
		if p := matchNested[E](s, c); p != nil {
			return p, nil
		}
		return nil, &NoMatchError{Message: MsgNoSubcommand}
	case *Empty[E]:
		panic(ErrNoShape)
	}
	panic(fmt.Sprintf("args: unknown shape %T", shape))
}

func matchNested[E any](shape Shape[E], c Cursor) *Pending[E] {
	switch s := shape.(type) {
	case *Leaf[E]:
		if o, ok := parseSequence(s.parsers, c).(Success); ok && o.FullMatch() {
			return newPending(s, o.Values)
		}
	case *Alternatives[E]:
		for _, branch := range s.Branches {
			if p := matchNested[E](branch, c); p != nil {
				return p
			}
		}
	case *Subcommands[E]:
		if body, rest, ok := selectSubcommand[E](s, c); ok {
			return matchNested[E](body, rest)
		}
	}
	return nil
}

func selectSubcommand[E any](s *Subcommands[E], c Cursor) (Shape[E], Cursor, bool) {
	if c.Empty() {
		return nil, c, false
	}
	first := c.First()
	for _, e := range s.Entries {
		if strings.EqualFold(e.Name, first) {
			return e.Body, c.Tail(), true
		}
	}
	return nil, c, false
}

func argumentError(index int, err error) *NoMatchError {
	msg := fmt.Sprintf("Error while parsing argument %d", index)

	var readable *ReadableError
	if errors.As(err, &readable) {
		msg += ": " + readable.Message
	}
	return &NoMatchError{Message: msg, Index: index, Err: err}
}
